package accumulation_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/somprasongd/hr-payroll-sub000/internal/accumulation"
	accumulationerrors "github.com/somprasongd/hr-payroll-sub000/internal/accumulation/errors"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// memoryLedger keeps records in a map keyed like the table's unique index.
type memoryLedger struct {
	records map[string]*accumulation.AccumulationRecord
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{records: make(map[string]*accumulation.AccumulationRecord)}
}

// ledgerKey mirrors the table's unique key; lifetime types store year 0.
func ledgerKey(employeeID, accumType string, year int) string {
	return fmt.Sprintf("%s/%s/%d", employeeID, accumType, year)
}

func storedYear(year *int) int {
	if year == nil {
		return 0
	}
	return *year
}

func (m *memoryLedger) WithTx(tx *sql.Tx) accumulation.Repository { return m }

func (m *memoryLedger) FindForUpdate(ctx context.Context, employeeID string, accumType string, year *int) (*accumulation.AccumulationRecord, error) {
	return m.Find(ctx, employeeID, accumType, year)
}

func (m *memoryLedger) Find(_ context.Context, employeeID string, accumType string, year *int) (*accumulation.AccumulationRecord, error) {
	record, ok := m.records[ledgerKey(employeeID, accumType, storedYear(year))]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *record
	return &copy, nil
}

func (m *memoryLedger) FindAllByEmployee(_ context.Context, employeeID string) ([]accumulation.AccumulationRecord, error) {
	var out []accumulation.AccumulationRecord
	for _, record := range m.records {
		if record.EmployeeID.String() == employeeID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (m *memoryLedger) Create(_ context.Context, record *accumulation.AccumulationRecord) error {
	copy := *record
	m.records[ledgerKey(record.EmployeeID.String(), record.AccumType, record.AccumYear)] = &copy
	return nil
}

func (m *memoryLedger) UpdateAmount(_ context.Context, record *accumulation.AccumulationRecord) error {
	copy := *record
	m.records[ledgerKey(record.EmployeeID.String(), record.AccumType, record.AccumYear)] = &copy
	return nil
}

func (m *memoryLedger) CreateAdjustment(_ context.Context, _ *accumulation.AccumulationAdjustment) error {
	return nil
}

// contendedLedger simulates a writer that inserts the same key between the
// first lock attempt and the upsert: the first FindForUpdate misses, and the
// upsert inserts nothing because the row already exists.
type contendedLedger struct {
	*memoryLedger
	misses int
}

func (c *contendedLedger) WithTx(tx *sql.Tx) accumulation.Repository { return c }

func (c *contendedLedger) FindForUpdate(ctx context.Context, employeeID string, accumType string, year *int) (*accumulation.AccumulationRecord, error) {
	if c.misses > 0 {
		c.misses--
		return nil, gorm.ErrRecordNotFound
	}
	return c.memoryLedger.FindForUpdate(ctx, employeeID, accumType, year)
}

func (c *contendedLedger) Create(ctx context.Context, record *accumulation.AccumulationRecord) error {
	if _, ok := c.records[ledgerKey(record.EmployeeID.String(), record.AccumType, record.AccumYear)]; ok {
		return nil
	}
	return c.memoryLedger.Create(ctx, record)
}

func TestApplyDelta_FirstUseStartsAtZero(t *testing.T) {
	ledger := newMemoryLedger()
	employeeID := uuid.New()
	year := 2025

	total, err := accumulation.ApplyDelta(
		context.Background(), ledger, employeeID, accumulation.TypeTax, &year, d("1250.50"),
	)

	assert.NoError(t, err)
	assert.True(t, d("1250.50").Equal(total))
}

func TestApplyDelta_ConcurrentFirstUseLandsOnSurvivingRow(t *testing.T) {
	ledger := newMemoryLedger()
	employeeID := uuid.New()

	// Another writer already initialized the key with 400 outstanding.
	ledger.records[ledgerKey(employeeID.String(), accumulation.TypeLoanOutstanding, 0)] = &accumulation.AccumulationRecord{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		AccumType:  accumulation.TypeLoanOutstanding,
		Amount:     d("400"),
	}
	contended := &contendedLedger{memoryLedger: ledger, misses: 1}

	total, err := accumulation.ApplyDelta(
		context.Background(), contended, employeeID, accumulation.TypeLoanOutstanding, nil, d("600"),
	)

	assert.NoError(t, err)
	assert.True(t, d("1000").Equal(total), "got %s", total)

	// The balance stayed on one row instead of splitting across two.
	records, err := ledger.FindAllByEmployee(context.Background(), employeeID.String())
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.True(t, d("1000").Equal(records[0].Amount))
}

func TestApplyDelta_AccumulatesAcrossCalls(t *testing.T) {
	ledger := newMemoryLedger()
	employeeID := uuid.New()
	year := 2025

	for _, amount := range []string{"100.25", "200.50", "300.75"} {
		_, err := accumulation.ApplyDelta(
			context.Background(), ledger, employeeID, accumulation.TypeSSO, &year, d(amount),
		)
		assert.NoError(t, err)
	}

	total, err := accumulation.CurrentTotal(
		context.Background(), ledger, employeeID, accumulation.TypeSSO, &year,
	)
	assert.NoError(t, err)
	assert.True(t, d("601.50").Equal(total), "got %s", total)
}

func TestApplyDelta_SequentialRepayments(t *testing.T) {
	ledger := newMemoryLedger()
	employeeID := uuid.New()
	ctx := context.Background()

	_, err := accumulation.ApplyDelta(
		ctx, ledger, employeeID, accumulation.TypeLoanOutstanding, nil, d("10000"),
	)
	assert.NoError(t, err)

	repayments := []string{"3333.33", "3333.33", "3333.34"}
	for _, amount := range repayments {
		_, err := accumulation.ApplyDelta(
			ctx, ledger, employeeID, accumulation.TypeLoanOutstanding, nil, d(amount).Neg(),
		)
		assert.NoError(t, err)
	}

	total, err := accumulation.CurrentTotal(
		ctx, ledger, employeeID, accumulation.TypeLoanOutstanding, nil,
	)
	assert.NoError(t, err)
	assert.True(t, total.IsZero(), "outstanding balance should be fully repaid, got %s", total)
}

func TestApplyDelta_RejectsOverRepayment(t *testing.T) {
	ledger := newMemoryLedger()
	employeeID := uuid.New()
	ctx := context.Background()

	_, err := accumulation.ApplyDelta(
		ctx, ledger, employeeID, accumulation.TypeLoanOutstanding, nil, d("500"),
	)
	assert.NoError(t, err)

	_, err = accumulation.ApplyDelta(
		ctx, ledger, employeeID, accumulation.TypeLoanOutstanding, nil, d("600").Neg(),
	)
	assert.ErrorIs(t, err, accumulationerrors.ErrRepaymentExceedsBalance)

	// The rejected repayment must not have touched the balance.
	total, err := accumulation.CurrentTotal(
		ctx, ledger, employeeID, accumulation.TypeLoanOutstanding, nil,
	)
	assert.NoError(t, err)
	assert.True(t, d("500").Equal(total))
}

func TestApplyDelta_KeyValidation(t *testing.T) {
	ledger := newMemoryLedger()
	employeeID := uuid.New()
	ctx := context.Background()
	year := 2025

	_, err := accumulation.ApplyDelta(ctx, ledger, employeeID, "bonus", &year, d("1"))
	assert.ErrorIs(t, err, accumulationerrors.ErrInvalidAccumType)

	_, err = accumulation.ApplyDelta(ctx, ledger, employeeID, accumulation.TypeTax, nil, d("1"))
	assert.ErrorIs(t, err, accumulationerrors.ErrYearRequired)

	_, err = accumulation.ApplyDelta(ctx, ledger, employeeID, accumulation.TypeProvidentFund, &year, d("1"))
	assert.ErrorIs(t, err, accumulationerrors.ErrYearNotAllowed)
}

func TestCurrentTotal_DefaultsToZero(t *testing.T) {
	ledger := newMemoryLedger()
	year := 2025

	total, err := accumulation.CurrentTotal(
		context.Background(), ledger, uuid.New(), accumulation.TypeTax, &year,
	)

	assert.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestYearScoping_SeparatesYears(t *testing.T) {
	ledger := newMemoryLedger()
	employeeID := uuid.New()
	ctx := context.Background()
	y2024, y2025 := 2024, 2025

	_, err := accumulation.ApplyDelta(ctx, ledger, employeeID, accumulation.TypeTax, &y2024, d("1000"))
	assert.NoError(t, err)
	_, err = accumulation.ApplyDelta(ctx, ledger, employeeID, accumulation.TypeTax, &y2025, d("2000"))
	assert.NoError(t, err)

	total2024, err := accumulation.CurrentTotal(ctx, ledger, employeeID, accumulation.TypeTax, &y2024)
	assert.NoError(t, err)
	assert.True(t, d("1000").Equal(total2024))

	total2025, err := accumulation.CurrentTotal(ctx, ledger, employeeID, accumulation.TypeTax, &y2025)
	assert.NoError(t, err)
	assert.True(t, d("2000").Equal(total2025))
}
