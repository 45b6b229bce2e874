package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/somprasongd/hr-payroll-sub000/internal/tax"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func dp(v string) *decimal.Decimal {
	dec := decimal.RequireFromString(v)
	return &dec
}

// Thai-style progressive schedule used across the tests.
func testConfig() tax.Config {
	return tax.Config{
		ApplyStandardExpense:   true,
		StandardExpenseRate:    d("0.5"),
		StandardExpenseCap:     d("8333.33"),
		ApplyPersonalAllowance: true,
		PersonalAllowance:      d("5000"),
		SSOEmployeeRate:        d("0.05"),
		SSOWageCap:             d("15000"),
		ServiceWithholdingRate: d("0.03"),
		Brackets: []tax.Bracket{
			{Min: d("0"), Max: dp("12500"), Rate: d("0")},
			{Min: d("12500"), Max: dp("25000"), Rate: d("0.05")},
			{Min: d("25000"), Max: dp("41666.67"), Rate: d("0.1")},
			{Min: d("41666.67"), Max: nil, Rate: d("0.15")},
		},
	}
}

func employmentInputs() tax.Inputs {
	return tax.Inputs{
		Withhold:      true,
		IncomeClass:   tax.IncomeClassEmployment,
		SSOContribute: true,
	}
}

func TestSSODeduction(t *testing.T) {
	cfg := testConfig()

	t.Run("declared wage above cap is capped", func(t *testing.T) {
		in := employmentInputs()
		in.SSODeclaredWage = dp("20000")

		got := tax.SSODeduction(d("20000"), in, cfg)

		assert.True(t, got.Equal(d("750")), "expected 750.00, got %s", got)
	})

	t.Run("falls back to periodic income without declared wage", func(t *testing.T) {
		got := tax.SSODeduction(d("10000"), employmentInputs(), cfg)

		assert.True(t, got.Equal(d("500")), "got %s", got)
	})

	t.Run("zero when not contributing", func(t *testing.T) {
		in := employmentInputs()
		in.SSOContribute = false

		got := tax.SSODeduction(d("20000"), in, cfg)

		assert.True(t, got.IsZero())
	})
}

func TestComputeWithholding(t *testing.T) {
	cfg := testConfig()

	t.Run("zero when withholding disabled", func(t *testing.T) {
		in := employmentInputs()
		in.Withhold = false

		got := tax.ComputeWithholding(d("100000"), in, cfg)

		assert.True(t, got.IsZero())
	})

	t.Run("zero at zero income regardless of brackets", func(t *testing.T) {
		got := tax.ComputeWithholding(d("0"), employmentInputs(), cfg)

		assert.True(t, got.IsZero())
	})

	t.Run("zero when deductions swallow the base", func(t *testing.T) {
		got := tax.ComputeWithholding(d("9000"), employmentInputs(), cfg)

		assert.True(t, got.IsZero())
	})

	t.Run("walks brackets on the taxable base", func(t *testing.T) {
		// income 50000: std expense capped at 8333.33, sso 750, allowance
		// 5000 -> base 35916.67. Tax = 12500*0.05 + 10916.67*0.1.
		got := tax.ComputeWithholding(d("50000"), employmentInputs(), cfg)

		assert.True(t, got.Equal(d("1716.67")), "got %s", got)
	})

	t.Run("unbounded last bracket", func(t *testing.T) {
		// income 200000: base = 200000 - 8333.33 - 750 - 5000 = 185916.67.
		// Tax = 625 + 1666.667 + (185916.67-41666.67)*0.15 = 23929.17.
		got := tax.ComputeWithholding(d("200000"), employmentInputs(), cfg)

		assert.True(t, got.Equal(d("23929.17")), "got %s", got)
	})

	t.Run("service income taxed flat", func(t *testing.T) {
		in := tax.Inputs{Withhold: true, IncomeClass: tax.IncomeClassService}

		got := tax.ComputeWithholding(d("10000"), in, cfg)

		assert.True(t, got.Equal(d("300")), "got %s", got)
	})

	t.Run("never negative", func(t *testing.T) {
		got := tax.ComputeWithholding(d("-500"), employmentInputs(), cfg)

		assert.True(t, got.IsZero())
	})
}

func TestComputeWithholding_Monotonic(t *testing.T) {
	cfg := testConfig()
	in := employmentInputs()

	prev := decimal.Zero
	for income := int64(0); income <= 300000; income += 2500 {
		got := tax.ComputeWithholding(decimal.NewFromInt(income), in, cfg)

		assert.False(t, got.IsNegative(), "tax negative at income %d", income)
		assert.True(t, got.GreaterThanOrEqual(prev),
			"tax decreased at income %d: %s < %s", income, got, prev)
		prev = got
	}
}

func TestValidateBrackets(t *testing.T) {
	cases := []struct {
		name     string
		brackets []tax.Bracket
		wantErr  string
	}{
		{
			name:    "empty table",
			wantErr: "at least one tax bracket",
		},
		{
			name: "first bracket not at zero",
			brackets: []tax.Bracket{
				{Min: d("100"), Max: nil, Rate: d("0.05")},
			},
			wantErr: "must start at 0",
		},
		{
			name: "gap between brackets",
			brackets: []tax.Bracket{
				{Min: d("0"), Max: dp("1000"), Rate: d("0")},
				{Min: d("2000"), Max: nil, Rate: d("0.05")},
			},
			wantErr: "gap between bracket 1 and bracket 2",
		},
		{
			name: "overlapping brackets",
			brackets: []tax.Bracket{
				{Min: d("0"), Max: dp("1000"), Rate: d("0")},
				{Min: d("500"), Max: nil, Rate: d("0.05")},
			},
			wantErr: "overlaps",
		},
		{
			name: "unbounded bracket not last",
			brackets: []tax.Bracket{
				{Min: d("0"), Max: nil, Rate: d("0")},
				{Min: d("1000"), Max: nil, Rate: d("0.05")},
			},
			wantErr: "not the last bracket",
		},
		{
			name: "rate above one",
			brackets: []tax.Bracket{
				{Min: d("0"), Max: nil, Rate: d("1.5")},
			},
			wantErr: "outside [0, 1]",
		},
		{
			name: "non-monotonic range",
			brackets: []tax.Bracket{
				{Min: d("0"), Max: dp("0"), Rate: d("0")},
			},
			wantErr: "must be greater than min",
		},
		{
			name: "valid table",
			brackets: []tax.Bracket{
				{Min: d("0"), Max: dp("1000"), Rate: d("0")},
				{Min: d("1000"), Max: dp("5000"), Rate: d("0.05")},
				{Min: d("5000"), Max: nil, Rate: d("0.1")},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tax.ValidateBrackets(tc.brackets)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
