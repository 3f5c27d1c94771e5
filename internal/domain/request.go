package domain

import "context"

// GroupRequest is an invitation for one user to join another user's budget
// group. Accepted is nil while the request is pending.
type GroupRequest struct {
	ID             int64  `json:"id"`
	BudgetName     string `json:"budgetName"`
	RequestingUser string `json:"requestingUser"`
	RequestedUser  string `json:"requestedUser"`
	Date           string `json:"date,omitempty"`
	Accepted       *bool  `json:"accepted"`
}

// Pending reports whether the request has not been resolved yet.
func (r *GroupRequest) Pending() bool {
	return r.Accepted == nil
}

// RequestGateway is the upstream API surface for group requests.
type RequestGateway interface {
	ListByUsername(ctx context.Context, token, username string) ([]*GroupRequest, error)
	Create(ctx context.Context, token string, groupID int64, requestingUser, requestedUser string) (*GroupRequest, error)
	Resolve(ctx context.Context, token string, request *GroupRequest) (*GroupRequest, error)
}

// GroupGateway resolves the usernames sharing a budget group.
type GroupGateway interface {
	UsernamesOf(ctx context.Context, token string, groupID int64) ([]string, error)
}
