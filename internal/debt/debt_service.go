package debt

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/somprasongd/hr-payroll-sub000/internal/accumulation"
	debterrors "github.com/somprasongd/hr-payroll-sub000/internal/debt/errors"
	"github.com/somprasongd/hr-payroll-sub000/internal/events"
	"github.com/somprasongd/hr-payroll-sub000/internal/messaging/kafka"
	"github.com/somprasongd/hr-payroll-sub000/internal/shared/contextutil"
	"github.com/somprasongd/hr-payroll-sub000/internal/shared/counter"
)

//go:generate mockgen -source=debt_service.go -destination=mock/debt_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, branchID, actorID string, req CreateDebtRequest) (DebtResponse, error)
	GetAll(ctx context.Context, branchID string) ([]DebtResponse, error)
	GetByID(ctx context.Context, branchID, id string) (DebtResponse, error)
	Approve(ctx context.Context, branchID, actorID, id string) (DebtResponse, error)
	Delete(ctx context.Context, branchID, id string) error
	Repay(ctx context.Context, branchID, actorID string, req RepayRequest) (RepayResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	accumRepo   accumulation.Repository
	counterRepo counter.Repository
	outboxRepo  kafka.OutboxRepository
}

func NewService(
	db *sql.DB,
	repo Repository,
	accumRepo accumulation.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
) Service {
	return &service{
		db:          db,
		repo:        repo,
		accumRepo:   accumRepo,
		counterRepo: counterRepo,
		outboxRepo:  outboxRepo,
	}
}

func (s *service) Create(
	ctx context.Context,
	branchID, actorID string,
	req CreateDebtRequest,
) (DebtResponse, error) {
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return DebtResponse{}, debterrors.ErrInvalidBranchID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return DebtResponse{}, debterrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return DebtResponse{}, debterrors.ErrInvalidEmployeeID
	}

	if req.DebtType != TypeLoan && req.DebtType != TypeOtherDebt {
		return DebtResponse{}, debterrors.ErrInvalidDebtType
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return DebtResponse{}, debterrors.ErrInvalidAmount
	}

	plans, err := buildPlans(req, amount)
	if err != nil {
		return DebtResponse{}, err
	}

	if err := ValidateSchedule(amount, plans); err != nil {
		return DebtResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DebtResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// The counter draws on the pool, outside the transaction; a rollback
	// leaves a gap in doc numbers, never a duplicate.
	docSeq, err := s.counterRepo.GetNextValue(ctx, branchID, counter.TypeDebt)
	if err != nil {
		return DebtResponse{}, err
	}

	txn := &DebtTxn{
		ID:         uuid.New(),
		BranchID:   branchUUID,
		EmployeeID: employeeUUID,
		DocNo:      fmt.Sprintf("DBT-%06d", docSeq),
		DebtType:   req.DebtType,
		Amount:     amount,
		Reason:     req.Reason,
		Status:     StatusPending,
		CreatedBy:  actorUUID,
	}

	for i, p := range plans {
		txn.Installments = append(txn.Installments, Installment{
			ID:          uuid.New(),
			DebtID:      txn.ID,
			Seq:         i + 1,
			Amount:      p.Amount,
			TargetYear:  p.Year,
			TargetMonth: p.Month,
		})
	}

	if err := qtx.Create(ctx, txn); err != nil {
		return DebtResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DebtResponse{}, err
	}

	return mapToResponse(*txn), nil
}

func (s *service) GetAll(ctx context.Context, branchID string) ([]DebtResponse, error) {
	txns, err := s.repo.FindAllByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	resp := make([]DebtResponse, len(txns))
	for i, txn := range txns {
		resp[i] = mapToResponse(txn)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, branchID, id string) (DebtResponse, error) {
	txn, err := s.repo.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DebtResponse{}, debterrors.ErrDebtNotFound
		}
		return DebtResponse{}, err
	}

	return mapToResponse(*txn), nil
}

// Approve locks the schedule and, for loan-type debts, posts the principal
// to the employee's outstanding-loan total. There is no path back to
// PENDING.
func (s *service) Approve(ctx context.Context, branchID, actorID, id string) (DebtResponse, error) {
	approverUUID, err := uuid.Parse(actorID)
	if err != nil {
		return DebtResponse{}, debterrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DebtResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	txn, err := qtx.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DebtResponse{}, debterrors.ErrDebtNotFound
		}
		return DebtResponse{}, err
	}

	if txn.Status != StatusPending {
		return DebtResponse{}, debterrors.ErrApproveOnlyPending
	}

	now := time.Now().UTC()
	txn.Status = StatusApproved
	txn.ApprovedBy = &approverUUID
	txn.ApprovedAt = &now

	if err := qtx.Update(ctx, txn); err != nil {
		return DebtResponse{}, err
	}

	accumTx := s.accumRepo.WithTx(tx)
	if _, err := accumulation.ApplyDelta(
		ctx, accumTx, txn.EmployeeID, accumulation.TypeLoanOutstanding, nil, txn.Amount,
	); err != nil {
		return DebtResponse{}, err
	}

	if err := s.enqueueApprovedEvent(ctx, tx, txn, actorID); err != nil {
		return DebtResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DebtResponse{}, err
	}

	return mapToResponse(*txn), nil
}

func (s *service) Delete(ctx context.Context, branchID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	txn, err := qtx.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return debterrors.ErrDebtNotFound
		}
		return err
	}

	if txn.Status != StatusPending {
		return debterrors.ErrDeleteOnlyPending
	}

	if err := qtx.Delete(ctx, branchID, id); err != nil {
		return err
	}

	return tx.Commit()
}

// Repay records a repayment transaction and reduces the outstanding-loan
// total. The original schedule is never touched; over-repayment is
// rejected by the ledger with the remaining balance.
func (s *service) Repay(
	ctx context.Context,
	branchID, actorID string,
	req RepayRequest,
) (RepayResponse, error) {
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return RepayResponse{}, debterrors.ErrInvalidBranchID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RepayResponse{}, debterrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RepayResponse{}, debterrors.ErrInvalidEmployeeID
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return RepayResponse{}, debterrors.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RepayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	accumTx := s.accumRepo.WithTx(tx)
	newBalance, err := accumulation.ApplyDelta(
		ctx, accumTx, employeeUUID, accumulation.TypeLoanOutstanding, nil, amount.Neg(),
	)
	if err != nil {
		return RepayResponse{}, err
	}

	// The counter draws on the pool, outside the transaction; a rollback
	// leaves a gap in doc numbers, never a duplicate.
	docSeq, err := s.counterRepo.GetNextValue(ctx, branchID, counter.TypeDebt)
	if err != nil {
		return RepayResponse{}, err
	}

	now := time.Now().UTC()
	txn := &DebtTxn{
		ID:         uuid.New(),
		BranchID:   branchUUID,
		EmployeeID: employeeUUID,
		DocNo:      fmt.Sprintf("DBT-%06d", docSeq),
		DebtType:   TypeRepayment,
		Amount:     amount,
		Reason:     req.Reason,
		Status:     StatusApproved,
		CreatedBy:  actorUUID,
		ApprovedBy: &actorUUID,
		ApprovedAt: &now,
	}

	if err := qtx.Create(ctx, txn); err != nil {
		return RepayResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RepayResponse{}, err
	}

	return RepayResponse{
		Debt:               mapToResponse(*txn),
		OutstandingBalance: newBalance.StringFixed(2),
	}, nil
}

func (s *service) enqueueApprovedEvent(ctx context.Context, tx *sql.Tx, txn *DebtTxn, actorID string) error {
	payload, err := json.Marshal(events.DebtApprovedEvent{
		EventType:        "debt.approved",
		DebtID:           txn.ID.String(),
		BranchID:         txn.BranchID.String(),
		EmployeeID:       txn.EmployeeID.String(),
		DebtType:         txn.DebtType,
		Amount:           txn.Amount.StringFixed(2),
		InstallmentCount: len(txn.Installments),
		ApprovedBy:       actorID,
		OccurredAt:       time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "debt",
		AggregateID:   txn.ID.String(),
		EventType:     "debt.approved",
		Topic:         events.DebtApprovedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func buildPlans(req CreateDebtRequest, amount decimal.Decimal) ([]InstallmentPlan, error) {
	if req.MonthCount < 0 {
		return nil, debterrors.ErrInvalidMonthCount
	}

	if len(req.Installments) > 0 {
		plans := make([]InstallmentPlan, len(req.Installments))
		for i, in := range req.Installments {
			a, err := decimal.NewFromString(in.Amount)
			if err != nil {
				return nil, debterrors.ErrInvalidAmount
			}
			year, month, err := parseMonth(in.TargetMonth)
			if err != nil {
				return nil, err
			}
			plans[i] = InstallmentPlan{Amount: a, Year: year, Month: month}
		}
		return plans, nil
	}

	if req.MonthCount == 0 {
		return nil, nil
	}

	year, month, err := parseMonth(req.StartMonth)
	if err != nil {
		return nil, err
	}

	return GenerateSchedule(amount, year, month, req.MonthCount), nil
}

func parseMonth(v string) (int, int, error) {
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return 0, 0, debterrors.ErrInvalidMonthFormat
	}
	return t.Year(), int(t.Month()), nil
}

func mapToResponse(txn DebtTxn) DebtResponse {
	resp := DebtResponse{
		ID:         txn.ID.String(),
		BranchID:   txn.BranchID.String(),
		EmployeeID: txn.EmployeeID.String(),
		DocNo:      txn.DocNo,
		DebtType:   txn.DebtType,
		Amount:     txn.Amount.StringFixed(2),
		Reason:     txn.Reason,
		Status:     txn.Status,
		CreatedBy:  txn.CreatedBy.String(),
		CreatedAt:  txn.CreatedAt.Format(time.RFC3339),
	}

	for _, in := range txn.Installments {
		resp.Installments = append(resp.Installments, InstallmentResponse{
			Seq:         in.Seq,
			Amount:      in.Amount.StringFixed(2),
			TargetMonth: fmt.Sprintf("%04d-%02d", in.TargetYear, in.TargetMonth),
		})
	}

	if txn.ApprovedBy != nil {
		v := txn.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if txn.ApprovedAt != nil {
		v := txn.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}

	return resp
}
