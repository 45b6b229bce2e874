package debt_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/somprasongd/hr-payroll-sub000/internal/debt"
	debterrors "github.com/somprasongd/hr-payroll-sub000/internal/debt/errors"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestGenerateSchedule_TruncationRemainder(t *testing.T) {
	plans := debt.GenerateSchedule(d("10000"), 2025, 1, 3)

	assert.Len(t, plans, 3)
	assert.True(t, d("3333.33").Equal(plans[0].Amount), "got %s", plans[0].Amount)
	assert.True(t, d("3333.33").Equal(plans[1].Amount), "got %s", plans[1].Amount)
	assert.True(t, d("3333.34").Equal(plans[2].Amount), "got %s", plans[2].Amount)

	sum := decimal.Zero
	for _, p := range plans {
		sum = sum.Add(p.Amount)
	}
	assert.True(t, d("10000").Equal(sum))
}

func TestGenerateSchedule_MonthRollover(t *testing.T) {
	plans := debt.GenerateSchedule(d("1200"), 2025, 11, 4)

	assert.Len(t, plans, 4)
	assert.Equal(t, 2025, plans[0].Year)
	assert.Equal(t, 11, plans[0].Month)
	assert.Equal(t, 2025, plans[1].Year)
	assert.Equal(t, 12, plans[1].Month)
	assert.Equal(t, 2026, plans[2].Year)
	assert.Equal(t, 1, plans[2].Month)
	assert.Equal(t, 2026, plans[3].Year)
	assert.Equal(t, 2, plans[3].Month)
}

func TestGenerateSchedule_ZeroCountIsLumpSum(t *testing.T) {
	assert.Nil(t, debt.GenerateSchedule(d("5000"), 2025, 1, 0))
}

func TestGenerateSchedule_SumsExactly(t *testing.T) {
	// Randomized sweep over principals and schedule lengths: totals must
	// land on the principal to the cent, every time.
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		cents := rng.Int63n(100_000_000) + 1
		principal := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
		monthCount := rng.Intn(60) + 1

		plans := debt.GenerateSchedule(principal, 2025, rng.Intn(12)+1, monthCount)
		assert.Len(t, plans, monthCount)

		sum := decimal.Zero
		for _, p := range plans {
			sum = sum.Add(p.Amount)
		}
		if !principal.Equal(sum) {
			t.Fatalf("principal %s over %d months summed to %s", principal, monthCount, sum)
		}
	}
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		plans     []debt.InstallmentPlan
		wantErr   error
	}{
		{
			name:      "empty schedule is a lump sum",
			principal: d("5000"),
			plans:     nil,
		},
		{
			name:      "generated schedule passes",
			principal: d("10000"),
			plans:     debt.GenerateSchedule(d("10000"), 2025, 1, 3),
		},
		{
			name:      "duplicate target month",
			principal: d("200"),
			plans: []debt.InstallmentPlan{
				{Amount: d("100"), Year: 2025, Month: 1},
				{Amount: d("100"), Year: 2025, Month: 1},
			},
			wantErr: debterrors.ErrDuplicateInstallmentMonth,
		},
		{
			name:      "sum off by more than a cent",
			principal: d("300"),
			plans: []debt.InstallmentPlan{
				{Amount: d("100"), Year: 2025, Month: 1},
				{Amount: d("100"), Year: 2025, Month: 2},
			},
			wantErr: debterrors.ErrInstallmentSumMismatch,
		},
		{
			name:      "sum within tolerance passes",
			principal: d("200.01"),
			plans: []debt.InstallmentPlan{
				{Amount: d("100"), Year: 2025, Month: 1},
				{Amount: d("100"), Year: 2025, Month: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := debt.ValidateSchedule(tt.principal, tt.plans)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateSchedule_SameMonthDifferentYears(t *testing.T) {
	err := debt.ValidateSchedule(d("200"), []debt.InstallmentPlan{
		{Amount: d("100"), Year: 2025, Month: 1},
		{Amount: d("100"), Year: 2026, Month: 1},
	})
	assert.NoError(t, err, "January of two different years is not a duplicate")
}
