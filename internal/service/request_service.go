package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cartera-app/cartera-gateway/internal/domain"
)

// RequestService drives the budget-sharing requests view.
type RequestService struct {
	requests domain.RequestGateway
	budgets  domain.BudgetGateway
	users    domain.UserGateway
}

// NewRequestService creates a new RequestService.
func NewRequestService(requests domain.RequestGateway, budgets domain.BudgetGateway, users domain.UserGateway) *RequestService {
	return &RequestService{
		requests: requests,
		budgets:  budgets,
		users:    users,
	}
}

// RequestsView is the requests page: the user's budgets (to pick one to
// share) and their requests split into pending and historic.
type RequestsView struct {
	Budgets       []*domain.Budget
	Pending       []*domain.GroupRequest
	Historic      []*domain.GroupRequest
	BudgetsError  string
	RequestsError string
}

// View fetches budgets and requests concurrently; branches fail
// independently. Requests with a nil Accepted are pending, the rest
// historic.
func (s *RequestService) View(ctx context.Context, token, username string) *RequestsView {
	view := &RequestsView{
		Budgets:  []*domain.Budget{},
		Pending:  []*domain.GroupRequest{},
		Historic: []*domain.GroupRequest{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		budgets, err := s.budgets.List(gctx, token, nil)
		if err != nil {
			view.BudgetsError = msgBudgetsUnavailable
			return nil
		}
		if budgets != nil {
			view.Budgets = budgets
		}
		return nil
	})
	g.Go(func() error {
		requests, err := s.requests.ListByUsername(gctx, token, username)
		if err != nil {
			view.RequestsError = msgRequestsUnavailable
			return nil
		}
		for _, req := range requests {
			if req.Pending() {
				view.Pending = append(view.Pending, req)
			} else {
				view.Historic = append(view.Historic, req)
			}
		}
		return nil
	})
	_ = g.Wait()

	return view
}

// RequestInput is the payload for sending a share request.
type RequestInput struct {
	BudgetID      int64
	RequestedUser string
}

// Create validates and sends a share request for the given budget's group.
// Rejected before the write: requesting yourself, a duplicate accepted
// request, a duplicate pending request, or an unknown requested user.
func (s *RequestService) Create(ctx context.Context, token, username string, in RequestInput) (*domain.GroupRequest, error) {
	requested := strings.TrimSpace(in.RequestedUser)
	if in.BudgetID == 0 {
		return nil, domain.ErrBudgetRequired
	}
	if requested == "" {
		return nil, domain.ErrUsernameRequired
	}
	if sameUser(requested, username) {
		return nil, domain.ErrSelfRequest
	}

	budget, err := s.budgets.GetByID(ctx, token, in.BudgetID)
	if err != nil {
		return nil, err
	}

	existing, err := s.requests.ListByUsername(ctx, token, username)
	if err != nil {
		return nil, err
	}
	for _, req := range existing {
		if req.BudgetName != budget.Name || !sameUser(req.RequestingUser, username) || !sameUser(req.RequestedUser, requested) {
			continue
		}
		if req.Accepted != nil && *req.Accepted {
			return nil, domain.ErrRequestAlreadyAccepted
		}
		if req.Pending() {
			return nil, domain.ErrRequestAlreadyPending
		}
	}

	if _, err := s.users.Get(ctx, token, requested); err != nil {
		return nil, domain.ErrRequestedUserNotFound
	}

	return s.requests.Create(ctx, token, budget.GroupID, username, requested)
}

// sameUser is the single matching rule for usernames in request checks:
// surrounding whitespace and case are not significant.
func sameUser(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Resolve accepts or rejects a pending request.
func (s *RequestService) Resolve(ctx context.Context, token string, request *domain.GroupRequest, accepted bool) (*domain.GroupRequest, error) {
	resolved := *request
	resolved.Accepted = &accepted
	return s.requests.Resolve(ctx, token, &resolved)
}

// ResolveLocally is the pure reducer that moves a resolved request from the
// pending list to the historic list after the server confirms the update.
func ResolveLocally(view *RequestsView, resolved *domain.GroupRequest) {
	pending := make([]*domain.GroupRequest, 0, len(view.Pending))
	for _, req := range view.Pending {
		if req.ID != resolved.ID {
			pending = append(pending, req)
		}
	}
	view.Pending = pending
	view.Historic = append(view.Historic, resolved)
}
