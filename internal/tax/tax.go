// Package tax computes periodic withholding tax from a validated rate
// schedule. Everything here is pure: no storage, no clock, safe to call
// concurrently and on every field edit.
package tax

import (
	"github.com/shopspring/decimal"
)

// Income classification, following the Section 40 split: employment income
// is taxed through progressive brackets, service income at a flat rate.
const (
	IncomeClassEmployment = "employment"
	IncomeClassService    = "service"
)

// Bracket is one progressive rate band. Max nil means the band is unbounded
// and must be the last one. Rate is a fraction (0.05 = 5%).
type Bracket struct {
	Min  decimal.Decimal
	Max  *decimal.Decimal
	Rate decimal.Decimal
}

// Config is the tax slice of the effective payroll configuration. It is
// assumed already validated by the configuration module; ComputeWithholding
// never re-checks bracket shape.
type Config struct {
	ApplyStandardExpense   bool
	StandardExpenseRate    decimal.Decimal
	StandardExpenseCap     decimal.Decimal
	ApplyPersonalAllowance bool
	PersonalAllowance      decimal.Decimal
	SSOEmployeeRate        decimal.Decimal
	SSOWageCap             decimal.Decimal
	ServiceWithholdingRate decimal.Decimal
	Brackets               []Bracket
}

// Inputs carries the per-employee contribution facts that shape the
// taxable base.
type Inputs struct {
	Withhold        bool
	IncomeClass     string
	SSOContribute   bool
	SSODeclaredWage *decimal.Decimal // nil: fall back to periodic income
}

// SSODeduction returns the employee-side social security contribution for
// the period: min(declared wage or income, wage cap) x employee rate,
// rounded to 2 places. Zero when the employee does not contribute.
func SSODeduction(periodicIncome decimal.Decimal, in Inputs, cfg Config) decimal.Decimal {
	if !in.SSOContribute {
		return decimal.Zero
	}

	wage := periodicIncome
	if in.SSODeclaredWage != nil {
		wage = *in.SSODeclaredWage
	}
	if wage.GreaterThan(cfg.SSOWageCap) {
		wage = cfg.SSOWageCap
	}
	if wage.IsNegative() {
		return decimal.Zero
	}

	return wage.Mul(cfg.SSOEmployeeRate).Round(2)
}

// StandardExpenseDeduction returns min(income x rate, cap) when the
// standard-expense toggle is on.
func StandardExpenseDeduction(periodicIncome decimal.Decimal, cfg Config) decimal.Decimal {
	if !cfg.ApplyStandardExpense {
		return decimal.Zero
	}

	d := periodicIncome.Mul(cfg.StandardExpenseRate)
	if d.GreaterThan(cfg.StandardExpenseCap) {
		d = cfg.StandardExpenseCap
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(2)
}

// TaxableBase applies the enabled deductions in order, clamping at zero
// after each subtraction so the base can never go negative.
func TaxableBase(periodicIncome decimal.Decimal, in Inputs, cfg Config) decimal.Decimal {
	base := periodicIncome

	base = subtractClamped(base, StandardExpenseDeduction(periodicIncome, cfg))
	base = subtractClamped(base, SSODeduction(periodicIncome, in, cfg))

	if cfg.ApplyPersonalAllowance {
		base = subtractClamped(base, cfg.PersonalAllowance)
	}

	return base
}

// ComputeWithholding returns the withholding tax for one payroll period.
// Employees flagged out of withholding pay zero. Service income is taxed
// flat on the gross amount; employment income walks the brackets.
func ComputeWithholding(periodicIncome decimal.Decimal, in Inputs, cfg Config) decimal.Decimal {
	if !in.Withhold {
		return decimal.Zero
	}
	if periodicIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	if in.IncomeClass == IncomeClassService {
		return periodicIncome.Mul(cfg.ServiceWithholdingRate).Round(2)
	}

	base := TaxableBase(periodicIncome, in, cfg)
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return bracketTax(base, cfg.Brackets).Round(2)
}

// bracketTax sums, per bracket in ascending order, the portion of base
// inside that bracket times the bracket rate.
func bracketTax(base decimal.Decimal, brackets []Bracket) decimal.Decimal {
	total := decimal.Zero

	for _, b := range brackets {
		if base.LessThanOrEqual(b.Min) {
			break
		}

		upper := base
		if b.Max != nil && upper.GreaterThan(*b.Max) {
			upper = *b.Max
		}

		portion := upper.Sub(b.Min)
		if portion.IsPositive() {
			total = total.Add(portion.Mul(b.Rate))
		}
	}

	return total
}

func subtractClamped(base, deduction decimal.Decimal) decimal.Decimal {
	result := base.Sub(deduction)
	if result.IsNegative() {
		return decimal.Zero
	}
	return result
}
