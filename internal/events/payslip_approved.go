package events

import "time"

const PayslipApprovedTopic = "hr.payroll.payslip.approved.v1"

// PayslipApprovedEvent is published through the outbox when a payslip is
// finalized, carrying the settled totals for downstream reporting.
type PayslipApprovedEvent struct {
	EventType      string    `json:"event_type"`
	PayslipID      string    `json:"payslip_id"`
	BranchID       string    `json:"branch_id"`
	EmployeeID     string    `json:"employee_id"`
	PeriodYear     int       `json:"period_year"`
	PeriodMonth    int       `json:"period_month"`
	IncomeTotal    string    `json:"income_total"`
	DeductionTotal string    `json:"deduction_total"`
	NetPay         string    `json:"net_pay"`
	ApprovedBy     string    `json:"approved_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
