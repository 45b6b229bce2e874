package debt

type InstallmentInput struct {
	Amount      string `json:"amount" binding:"required"`
	TargetMonth string `json:"target_month" binding:"required"` // YYYY-MM
}

type CreateDebtRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	DebtType   string `json:"debt_type" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	Reason     string `json:"reason"`

	// Either a generated schedule (start_month + month_count) or an
	// explicit installment list; month_count 0 with no installments is a
	// lump-sum debt.
	StartMonth   string             `json:"start_month"` // YYYY-MM
	MonthCount   int                `json:"month_count"`
	Installments []InstallmentInput `json:"installments"`
}

type RepayRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	Reason     string `json:"reason"`
}

type InstallmentResponse struct {
	Seq         int    `json:"seq"`
	Amount      string `json:"amount"`
	TargetMonth string `json:"target_month"`
}

type DebtResponse struct {
	ID           string                `json:"id"`
	BranchID     string                `json:"branch_id"`
	EmployeeID   string                `json:"employee_id"`
	DocNo        string                `json:"doc_no"`
	DebtType     string                `json:"debt_type"`
	Amount       string                `json:"amount"`
	Reason       string                `json:"reason,omitempty"`
	Status       string                `json:"status"`
	Installments []InstallmentResponse `json:"installments,omitempty"`
	CreatedBy    string                `json:"created_by"`
	ApprovedBy   *string               `json:"approved_by,omitempty"`
	ApprovedAt   *string               `json:"approved_at,omitempty"`
	CreatedAt    string                `json:"created_at"`
}

type RepayResponse struct {
	Debt               DebtResponse `json:"debt"`
	OutstandingBalance string       `json:"outstanding_balance"`
}
