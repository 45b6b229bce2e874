package events

import "time"

const DebtApprovedTopic = "hr.payroll.debt.approved.v1"

type DebtApprovedEvent struct {
	EventType        string    `json:"event_type"`
	DebtID           string    `json:"debt_id"`
	BranchID         string    `json:"branch_id"`
	EmployeeID       string    `json:"employee_id"`
	DebtType         string    `json:"debt_type"`
	Amount           string    `json:"amount"`
	InstallmentCount int       `json:"installment_count"`
	ApprovedBy       string    `json:"approved_by"`
	OccurredAt       time.Time `json:"occurred_at"`
}
