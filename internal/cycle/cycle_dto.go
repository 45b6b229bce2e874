package cycle

type CreateCycleRequest struct {
	Kind string `json:"kind" binding:"required"`
	Note string `json:"note"`
}

type CycleResponse struct {
	ID          string  `json:"id"`
	BranchID    string  `json:"branch_id"`
	Kind        string  `json:"kind"`
	Status      string  `json:"status"`
	Note        string  `json:"note,omitempty"`
	CreatedBy   string  `json:"created_by"`
	FinalizedBy *string `json:"finalized_by,omitempty"`
	FinalizedAt *string `json:"finalized_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
