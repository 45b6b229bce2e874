package debt_test

import (
	"context"
	"database/sql"
	"strconv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/somprasongd/hr-payroll-sub000/internal/accumulation"
	accumulationerrors "github.com/somprasongd/hr-payroll-sub000/internal/accumulation/errors"
	"github.com/somprasongd/hr-payroll-sub000/internal/debt"
	debterrors "github.com/somprasongd/hr-payroll-sub000/internal/debt/errors"
	"github.com/somprasongd/hr-payroll-sub000/internal/messaging/kafka"
)

type fakeDebtRepository struct {
	created             []*debt.DebtTxn
	findByIDAndBranchFn func(ctx context.Context, branchID string, id string) (*debt.DebtTxn, error)
	updated             []*debt.DebtTxn
}

func (f *fakeDebtRepository) WithTx(tx *sql.Tx) debt.Repository { return f }

func (f *fakeDebtRepository) Create(ctx context.Context, txn *debt.DebtTxn) error {
	f.created = append(f.created, txn)
	return nil
}

func (f *fakeDebtRepository) FindAllByBranch(ctx context.Context, branchID string) ([]debt.DebtTxn, error) {
	return nil, nil
}

func (f *fakeDebtRepository) FindByIDAndBranch(ctx context.Context, branchID string, id string) (*debt.DebtTxn, error) {
	if f.findByIDAndBranchFn != nil {
		return f.findByIDAndBranchFn(ctx, branchID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDebtRepository) Update(ctx context.Context, txn *debt.DebtTxn) error {
	f.updated = append(f.updated, txn)
	return nil
}

func (f *fakeDebtRepository) Delete(ctx context.Context, branchID string, id string) error {
	return nil
}

func (f *fakeDebtRepository) InstallmentsDue(ctx context.Context, employeeID string, year, month int) ([]debt.Installment, error) {
	return nil, nil
}

// fakeLedger keeps running totals in memory keyed the way the ledger
// table is keyed.
type fakeLedger struct {
	records map[string]*accumulation.AccumulationRecord
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{records: make(map[string]*accumulation.AccumulationRecord)}
}

// ledgerKey mirrors the accumulation table's unique key; lifetime types
// store year 0.
func ledgerKey(employeeID string, accumType string, year *int) string {
	yr := 0
	if year != nil {
		yr = *year
	}
	return employeeID + "/" + accumType + "/" + strconv.Itoa(yr)
}

func recordKey(record *accumulation.AccumulationRecord) string {
	return record.EmployeeID.String() + "/" + record.AccumType + "/" + strconv.Itoa(record.AccumYear)
}

func (f *fakeLedger) WithTx(tx *sql.Tx) accumulation.Repository { return f }

func (f *fakeLedger) FindForUpdate(ctx context.Context, employeeID string, accumType string, year *int) (*accumulation.AccumulationRecord, error) {
	return f.Find(ctx, employeeID, accumType, year)
}

func (f *fakeLedger) Find(ctx context.Context, employeeID string, accumType string, year *int) (*accumulation.AccumulationRecord, error) {
	record, ok := f.records[ledgerKey(employeeID, accumType, year)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeLedger) FindAllByEmployee(ctx context.Context, employeeID string) ([]accumulation.AccumulationRecord, error) {
	return nil, nil
}

func (f *fakeLedger) Create(ctx context.Context, record *accumulation.AccumulationRecord) error {
	f.records[recordKey(record)] = record
	return nil
}

func (f *fakeLedger) UpdateAmount(ctx context.Context, record *accumulation.AccumulationRecord) error {
	f.records[recordKey(record)] = record
	return nil
}

func (f *fakeLedger) CreateAdjustment(ctx context.Context, adjustment *accumulation.AccumulationAdjustment) error {
	return nil
}

func (f *fakeLedger) total(employeeID uuid.UUID, accumType string) decimal.Decimal {
	record, ok := f.records[ledgerKey(employeeID.String(), accumType, nil)]
	if !ok {
		return decimal.Zero
	}
	return record.Amount
}

type fakeDebtCounter struct{ next int64 }

func (f *fakeDebtCounter) GetNextValue(ctx context.Context, branchID string, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeDebtOutbox struct{ events []kafka.OutboxEvent }

func (f *fakeDebtOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeDebtOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeDebtOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeDebtOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeDebtOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type debtServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service debt.Service
	repo    *fakeDebtRepository
	ledger  *fakeLedger
	outbox  *fakeDebtOutbox
}

func setupDebtServiceTest(t *testing.T) *debtServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeDebtRepository{}
	ledger := newFakeLedger()
	outbox := &fakeDebtOutbox{}

	return &debtServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: debt.NewService(db, repo, ledger, &fakeDebtCounter{}, outbox),
		repo:    repo,
		ledger:  ledger,
		outbox:  outbox,
	}
}

func TestDebtService_Create(t *testing.T) {
	branchID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("generates the schedule and a document number", func(t *testing.T) {
		deps := setupDebtServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Create(context.Background(), branchID, actorID, debt.CreateDebtRequest{
			EmployeeID: employeeID,
			DebtType:   debt.TypeLoan,
			Amount:     "10000",
			StartMonth: "2026-01",
			MonthCount: 3,
		})

		assert.NoError(t, err)
		assert.Equal(t, "DBT-000001", resp.DocNo)
		assert.Equal(t, debt.StatusPending, resp.Status)
		assert.Len(t, resp.Installments, 3)
		assert.Equal(t, "3333.33", resp.Installments[0].Amount)
		assert.Equal(t, "3333.34", resp.Installments[2].Amount)
		assert.Equal(t, "2026-03", resp.Installments[2].TargetMonth)
	})

	t.Run("explicit installments must sum to the principal", func(t *testing.T) {
		deps := setupDebtServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(context.Background(), branchID, actorID, debt.CreateDebtRequest{
			EmployeeID: employeeID,
			DebtType:   debt.TypeLoan,
			Amount:     "1000",
			Installments: []debt.InstallmentInput{
				{Amount: "400", TargetMonth: "2026-01"},
				{Amount: "400", TargetMonth: "2026-02"},
			},
		})

		assert.ErrorIs(t, err, debterrors.ErrInstallmentSumMismatch)
		assert.Empty(t, deps.repo.created)
	})

	t.Run("unknown debt type rejected", func(t *testing.T) {
		deps := setupDebtServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(context.Background(), branchID, actorID, debt.CreateDebtRequest{
			EmployeeID: employeeID,
			DebtType:   "mortgage",
			Amount:     "1000",
		})

		assert.ErrorIs(t, err, debterrors.ErrInvalidDebtType)
	})
}

func TestDebtService_Approve(t *testing.T) {
	branchID := uuid.New()
	employeeID := uuid.New()

	pendingLoan := func() *debt.DebtTxn {
		return &debt.DebtTxn{
			ID:         uuid.New(),
			BranchID:   branchID,
			EmployeeID: employeeID,
			DocNo:      "DBT-000007",
			DebtType:   debt.TypeLoan,
			Amount:     decimal.RequireFromString("10000"),
			Status:     debt.StatusPending,
			CreatedBy:  uuid.New(),
		}
	}

	t.Run("posts the principal to the outstanding loan total", func(t *testing.T) {
		deps := setupDebtServiceTest(t)
		defer deps.db.Close()

		loan := pendingLoan()
		deps.repo.findByIDAndBranchFn = func(ctx context.Context, bid string, id string) (*debt.DebtTxn, error) {
			c := *loan
			return &c, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Approve(context.Background(), branchID.String(), uuid.New().String(), loan.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, debt.StatusApproved, resp.Status)
		assert.True(t, deps.ledger.total(employeeID, accumulation.TypeLoanOutstanding).Equal(decimal.RequireFromString("10000")))

		if assert.Len(t, deps.outbox.events, 1) {
			assert.Equal(t, "debt.approved", deps.outbox.events[0].EventType)
			assert.Equal(t, loan.ID.String(), deps.outbox.events[0].AggregateID)
		}
	})

	t.Run("approved debt cannot be approved again", func(t *testing.T) {
		deps := setupDebtServiceTest(t)
		defer deps.db.Close()

		loan := pendingLoan()
		loan.Status = debt.StatusApproved
		deps.repo.findByIDAndBranchFn = func(ctx context.Context, bid string, id string) (*debt.DebtTxn, error) {
			return loan, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Approve(context.Background(), branchID.String(), uuid.New().String(), loan.ID.String())

		assert.ErrorIs(t, err, debterrors.ErrApproveOnlyPending)
		assert.True(t, deps.ledger.total(employeeID, accumulation.TypeLoanOutstanding).IsZero())
	})
}

func TestDebtService_Repay(t *testing.T) {
	branchID := uuid.New()
	employeeID := uuid.New()

	seedOutstanding := func(deps *debtServiceDeps, amount string) {
		deps.ledger.records[ledgerKey(employeeID.String(), accumulation.TypeLoanOutstanding, nil)] = &accumulation.AccumulationRecord{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			AccumType:  accumulation.TypeLoanOutstanding,
			Amount:     decimal.RequireFromString(amount),
		}
	}

	t.Run("reduces the outstanding balance and records the transaction", func(t *testing.T) {
		deps := setupDebtServiceTest(t)
		defer deps.db.Close()
		seedOutstanding(deps, "10000")

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Repay(context.Background(), branchID.String(), uuid.New().String(), debt.RepayRequest{
			EmployeeID: employeeID.String(),
			Amount:     "2500",
			Reason:     "cash repayment",
		})

		assert.NoError(t, err)
		assert.Equal(t, "7500.00", resp.OutstandingBalance)
		assert.Equal(t, debt.TypeRepayment, resp.Debt.DebtType)
		assert.Equal(t, debt.StatusApproved, resp.Debt.Status)

		if assert.Len(t, deps.repo.created, 1) {
			assert.Equal(t, debt.TypeRepayment, deps.repo.created[0].DebtType)
		}
	})

	t.Run("over repayment is rejected with the balance intact", func(t *testing.T) {
		deps := setupDebtServiceTest(t)
		defer deps.db.Close()
		seedOutstanding(deps, "1000")

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Repay(context.Background(), branchID.String(), uuid.New().String(), debt.RepayRequest{
			EmployeeID: employeeID.String(),
			Amount:     "1500",
		})

		assert.ErrorIs(t, err, accumulationerrors.ErrRepaymentExceedsBalance)
		assert.True(t, deps.ledger.total(employeeID, accumulation.TypeLoanOutstanding).Equal(decimal.RequireFromString("1000")))
		assert.Empty(t, deps.repo.created)
	})
}
