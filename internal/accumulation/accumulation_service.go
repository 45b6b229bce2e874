package accumulation

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	accumulationerrors "github.com/somprasongd/hr-payroll-sub000/internal/accumulation/errors"
	"github.com/somprasongd/hr-payroll-sub000/internal/bootstrap"
)

//go:generate mockgen -source=accumulation_service.go -destination=mock/accumulation_service_mock.go -package=mock
type Service interface {
	GetByEmployee(ctx context.Context, employeeID string) ([]AccumulationResponse, error)
	CurrentTotal(ctx context.Context, employeeID, accumType string, year *int) (AccumulationResponse, error)
	Apply(ctx context.Context, employeeID, accumType string, year *int, delta decimal.Decimal) (AccumulationResponse, error)
	Adjust(ctx context.Context, actorID string, req AdjustRequest) (AccumulationResponse, error)
}

type service struct {
	db    *sql.DB
	repo  Repository
	audit bootstrap.AuditLogger
}

func NewService(db *sql.DB, repo Repository, audit bootstrap.AuditLogger) Service {
	return &service{db: db, repo: repo, audit: audit}
}

// ApplyDelta adds delta to the keyed running total against the given
// (possibly transaction-scoped) repository. A missing record starts at
// zero: first use is initialization, not an error. The loan_outstanding
// total may never go below zero; the excess is rejected, never absorbed.
func ApplyDelta(
	ctx context.Context,
	repo Repository,
	employeeID uuid.UUID,
	accumType string,
	year *int,
	delta decimal.Decimal,
) (decimal.Decimal, error) {
	if err := validateKey(accumType, year); err != nil {
		return decimal.Zero, err
	}

	record, err := lockOrInit(ctx, repo, employeeID, accumType, year)
	if err != nil {
		return decimal.Zero, err
	}

	newTotal := record.Amount.Add(delta)
	if accumType == TypeLoanOutstanding && newTotal.IsNegative() {
		return decimal.Zero, accumulationerrors.ErrRepaymentExceedsBalance.WithDetails(map[string]string{
			"outstanding_balance": record.Amount.StringFixed(2),
			"attempted_delta":     delta.StringFixed(2),
		})
	}

	record.Amount = newTotal
	if err := repo.UpdateAmount(ctx, record); err != nil {
		return decimal.Zero, err
	}

	return newTotal, nil
}

// lockOrInit returns the keyed record under a row lock, inserting the zero
// row on first use. The insert is an upsert that yields to a concurrent
// winner, so the second lookup always locks the one surviving row; updating
// anything else would fork the running total.
func lockOrInit(
	ctx context.Context,
	repo Repository,
	employeeID uuid.UUID,
	accumType string,
	year *int,
) (*AccumulationRecord, error) {
	record, err := repo.FindForUpdate(ctx, employeeID.String(), accumType, year)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seed := &AccumulationRecord{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		AccumType:  accumType,
		AccumYear:  yearKey(year),
		Amount:     decimal.Zero,
	}
	if err := repo.Create(ctx, seed); err != nil {
		return nil, err
	}

	return repo.FindForUpdate(ctx, employeeID.String(), accumType, year)
}

// CurrentTotal reads the running total for a key against the given
// repository, defaulting to zero when no record exists yet.
func CurrentTotal(
	ctx context.Context,
	repo Repository,
	employeeID uuid.UUID,
	accumType string,
	year *int,
) (decimal.Decimal, error) {
	if err := validateKey(accumType, year); err != nil {
		return decimal.Zero, err
	}

	record, err := repo.Find(ctx, employeeID.String(), accumType, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	return record.Amount, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]AccumulationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, accumulationerrors.ErrInvalidEmployeeID
	}

	records, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]AccumulationResponse, len(records))
	for i, record := range records {
		resp[i] = mapToResponse(record)
	}
	return resp, nil
}

func (s *service) CurrentTotal(ctx context.Context, employeeID, accumType string, year *int) (AccumulationResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AccumulationResponse{}, accumulationerrors.ErrInvalidEmployeeID
	}

	amount, err := CurrentTotal(ctx, s.repo, employeeUUID, accumType, year)
	if err != nil {
		return AccumulationResponse{}, err
	}

	return AccumulationResponse{
		EmployeeID: employeeID,
		AccumType:  accumType,
		AccumYear:  year,
		Amount:     amount.StringFixed(2),
	}, nil
}

func (s *service) Apply(ctx context.Context, employeeID, accumType string, year *int, delta decimal.Decimal) (AccumulationResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AccumulationResponse{}, accumulationerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AccumulationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	newTotal, err := ApplyDelta(ctx, qtx, employeeUUID, accumType, year, delta)
	if err != nil {
		return AccumulationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AccumulationResponse{}, err
	}

	return AccumulationResponse{
		EmployeeID: employeeID,
		AccumType:  accumType,
		AccumYear:  year,
		Amount:     newTotal.StringFixed(2),
	}, nil
}

// Adjust force-sets a running total. It bypasses the additive chain, so it
// records who did it and why, and emits an audit event. Route middleware
// restricts it to the accumulation:adjust permission.
func (s *service) Adjust(ctx context.Context, actorID string, req AdjustRequest) (AccumulationResponse, error) {
	adjustedBy, err := uuid.Parse(actorID)
	if err != nil {
		return AccumulationResponse{}, accumulationerrors.ErrInvalidActorID
	}

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AccumulationResponse{}, accumulationerrors.ErrInvalidEmployeeID
	}

	if err := validateKey(req.AccumType, req.AccumYear); err != nil {
		return AccumulationResponse{}, err
	}

	if req.Reason == "" {
		return AccumulationResponse{}, accumulationerrors.ErrReasonRequired
	}

	newAmount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return AccumulationResponse{}, accumulationerrors.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AccumulationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := lockOrInit(ctx, qtx, employeeUUID, req.AccumType, req.AccumYear)
	if err != nil {
		return AccumulationResponse{}, err
	}

	previous := record.Amount
	record.Amount = newAmount
	if err := qtx.UpdateAmount(ctx, record); err != nil {
		return AccumulationResponse{}, err
	}

	adjustment := &AccumulationAdjustment{
		ID:             uuid.New(),
		EmployeeID:     employeeUUID,
		AccumType:      req.AccumType,
		AccumYear:      yearKey(req.AccumYear),
		PreviousAmount: previous,
		NewAmount:      newAmount,
		Reason:         req.Reason,
		AdjustedBy:     adjustedBy,
	}
	if err := qtx.CreateAdjustment(ctx, adjustment); err != nil {
		return AccumulationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AccumulationResponse{}, err
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "ACCUMULATION_ADJUSTED",
		Message: "Accumulation total force-set outside the additive chain",
		Meta: map[string]any{
			"employee_id":     req.EmployeeID,
			"accum_type":      req.AccumType,
			"accum_year":      req.AccumYear,
			"previous_amount": previous.StringFixed(2),
			"new_amount":      newAmount.StringFixed(2),
			"adjusted_by":     actorID,
			"reason":          req.Reason,
		},
	})

	return mapToResponse(*record), nil
}

func validateKey(accumType string, year *int) error {
	if !IsValidType(accumType) {
		return accumulationerrors.ErrInvalidAccumType
	}
	if IsYearScoped(accumType) && year == nil {
		return accumulationerrors.ErrYearRequired
	}
	if !IsYearScoped(accumType) && year != nil {
		return accumulationerrors.ErrYearNotAllowed
	}
	return nil
}

func mapToResponse(record AccumulationRecord) AccumulationResponse {
	var year *int
	if IsYearScoped(record.AccumType) {
		y := record.AccumYear
		year = &y
	}
	return AccumulationResponse{
		EmployeeID: record.EmployeeID.String(),
		AccumType:  record.AccumType,
		AccumYear:  year,
		Amount:     record.Amount.StringFixed(2),
	}
}
