package domain

// EnforceRequest is the authorization question asked by route middleware:
// may this user perform action on resource within their branch.
type EnforceRequest struct {
	UserID   string
	BranchID string
	Resource string
	Action   string
}
