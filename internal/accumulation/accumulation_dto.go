package accumulation

type AdjustRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	AccumType  string `json:"accum_type" binding:"required"`
	AccumYear  *int   `json:"accum_year"`
	Amount     string `json:"amount" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

type AccumulationResponse struct {
	EmployeeID string `json:"employee_id"`
	AccumType  string `json:"accum_type"`
	AccumYear  *int   `json:"accum_year,omitempty"`
	Amount     string `json:"amount"`
}
