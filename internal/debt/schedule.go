package debt

import (
	"github.com/shopspring/decimal"

	debterrors "github.com/somprasongd/hr-payroll-sub000/internal/debt/errors"
)

// InstallmentPlan is one scheduled partial repayment before persistence.
type InstallmentPlan struct {
	Amount decimal.Decimal
	Year   int
	Month  int
}

var sumTolerance = decimal.NewFromFloat(0.01)

// GenerateSchedule splits a principal into monthCount dated installments
// starting at startYear/startMonth. The base amount is the principal over
// the count truncated to 2 decimals; the final installment absorbs the
// truncation remainder so the schedule always sums exactly to principal.
func GenerateSchedule(principal decimal.Decimal, startYear, startMonth, monthCount int) []InstallmentPlan {
	if monthCount <= 0 {
		return nil
	}

	base := principal.DivRound(decimal.NewFromInt(int64(monthCount)), 8).RoundDown(2)

	plans := make([]InstallmentPlan, monthCount)
	year, month := startYear, startMonth
	running := decimal.Zero

	for i := 0; i < monthCount; i++ {
		amount := base
		if i == monthCount-1 {
			amount = principal.Sub(running)
		}
		plans[i] = InstallmentPlan{Amount: amount, Year: year, Month: month}
		running = running.Add(amount)

		month++
		if month > 12 {
			month = 1
			year++
		}
	}

	return plans
}

// ValidateSchedule checks the invariants every stored schedule must hold:
// amounts sum to the principal within 0.01, no two installments target the
// same calendar month, and every amount is positive. An empty schedule is
// a valid lump-sum debt with no plan.
func ValidateSchedule(principal decimal.Decimal, plans []InstallmentPlan) error {
	if len(plans) == 0 {
		return nil
	}

	seen := make(map[[2]int]bool, len(plans))
	sum := decimal.Zero

	for i, p := range plans {
		if !p.Amount.IsPositive() {
			return debterrors.ErrInstallmentAmountInvalid.WithDetails(map[string]any{
				"installment": i + 1,
				"amount":      p.Amount.StringFixed(2),
			})
		}
		if p.Month < 1 || p.Month > 12 {
			return debterrors.ErrInstallmentMonthInvalid.WithDetails(map[string]any{
				"installment": i + 1,
				"month":       p.Month,
			})
		}

		key := [2]int{p.Year, p.Month}
		if seen[key] {
			return debterrors.ErrDuplicateInstallmentMonth.WithDetails(map[string]any{
				"installment": i + 1,
				"year":        p.Year,
				"month":       p.Month,
			})
		}
		seen[key] = true

		sum = sum.Add(p.Amount)
	}

	if sum.Sub(principal).Abs().GreaterThan(sumTolerance) {
		return debterrors.ErrInstallmentSumMismatch.WithDetails(map[string]string{
			"principal":       principal.StringFixed(2),
			"installment_sum": sum.StringFixed(2),
		})
	}

	return nil
}
