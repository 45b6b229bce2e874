package payslip

import (
	"github.com/shopspring/decimal"

	paysliperrors "github.com/somprasongd/hr-payroll-sub000/internal/payslip/errors"
	"github.com/somprasongd/hr-payroll-sub000/internal/tax"
)

// Recalculate rebuilds the three derived totals from the current lines.
// Pure over the receiver's fields; callers invoke it after every mutation
// so income, deductions and net pay can never drift apart.
func (p *Payslip) Recalculate() {
	income := p.Salary.
		Add(p.Overtime).
		Add(p.AttendanceBonus).
		Add(p.Bonus).
		Add(p.LeaveCompensation).
		Add(p.DoctorFee).
		Add(p.HousingAllowance).
		Add(p.WaterAllowance).
		Add(p.ElectricityAllowance).
		Add(p.InternetAllowance)

	deduction := p.LatePenalty.
		Add(p.LeavePenalty).
		Add(p.Tax).
		Add(p.SSO).
		Add(p.ProvidentFund).
		Add(p.WaterCharge).
		Add(p.ElectricityCharge).
		Add(p.InternetCharge).
		Add(p.AdvanceRepayment)

	for _, item := range p.Items {
		switch item.Kind {
		case ItemOtherIncome:
			income = income.Add(item.Amount)
		case ItemOtherDeduction, ItemLoanRepayment:
			deduction = deduction.Add(item.Amount)
		}
	}

	p.IncomeTotal = income.Round(2)
	p.DeductionTotal = deduction.Round(2)
	p.NetPay = p.IncomeTotal.Sub(p.DeductionTotal)
}

// GrossIncomeBeforeTax totals the income lines only. It is the periodic
// income the withholding calculation runs against.
func (p *Payslip) GrossIncomeBeforeTax() decimal.Decimal {
	income := p.Salary.
		Add(p.Overtime).
		Add(p.AttendanceBonus).
		Add(p.Bonus).
		Add(p.LeaveCompensation).
		Add(p.DoctorFee).
		Add(p.HousingAllowance).
		Add(p.WaterAllowance).
		Add(p.ElectricityAllowance).
		Add(p.InternetAllowance)

	for _, item := range p.Items {
		if item.Kind == ItemOtherIncome {
			income = income.Add(item.Amount)
		}
	}

	return income.Round(2)
}

// LoanRepaymentTotal sums the loan-repayment deduction lines. Approval
// posts this as a negative delta against the outstanding-loan total.
func (p *Payslip) LoanRepaymentTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		if item.Kind == ItemLoanRepayment {
			total = total.Add(item.Amount)
		}
	}
	return total
}

// RefreshAutoTax recomputes the withholding line when the tax mode is
// AUTO. A MANUAL pin is left untouched until the preparer resets it.
func (p *Payslip) RefreshAutoTax(in tax.Inputs, cfg tax.Config) {
	if p.TaxMode != TaxModeAuto {
		return
	}
	p.Tax = tax.ComputeWithholding(p.GrossIncomeBeforeTax(), in, cfg)
}

// UtilityCharge derives one meter-based charge: max(0, cur - prev) x rate,
// rounded to 2 places. A missing reading on either side yields zero usage.
// A current reading below the previous one is a validation error naming the
// meter; it is never silently clamped.
func UtilityCharge(meter string, prev, cur *decimal.Decimal, unitRate decimal.Decimal) (decimal.Decimal, error) {
	if prev == nil || cur == nil {
		return decimal.Zero, nil
	}

	usage := cur.Sub(*prev)
	if usage.IsNegative() {
		return decimal.Zero, paysliperrors.ErrNegativeMeterUsage.WithDetails(map[string]string{
			"meter":    meter,
			"previous": prev.StringFixed(2),
			"current":  cur.StringFixed(2),
		})
	}

	return usage.Mul(unitRate).Round(2), nil
}
