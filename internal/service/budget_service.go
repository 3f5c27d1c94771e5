package service

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/cartera-app/cartera-gateway/internal/aggregate"
	"github.com/cartera-app/cartera-gateway/internal/domain"
	"github.com/cartera-app/cartera-gateway/internal/filter"
)

// BudgetService drives the budget list and budget detail views.
type BudgetService struct {
	budgets domain.BudgetGateway
	records domain.RecordGateway
	groups  domain.GroupGateway
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgets domain.BudgetGateway, records domain.RecordGateway, groups domain.GroupGateway) *BudgetService {
	return &BudgetService{
		budgets: budgets,
		records: records,
		groups:  groups,
	}
}

// List fetches the user's budgets with the given filter form.
func (s *BudgetService) List(ctx context.Context, token string, form filter.BudgetForm) ([]*domain.Budget, error) {
	budgets, err := s.budgets.List(ctx, token, form.Build())
	if err != nil {
		return nil, err
	}
	if budgets == nil {
		budgets = []*domain.Budget{}
	}
	return budgets, nil
}

// BudgetDetailView is one budget with its associated records, the derived
// expense/income/net totals and the usernames sharing the budget's group.
type BudgetDetailView struct {
	Budget        *domain.Budget
	Records       []*domain.Record
	TotalExpenses decimal.Decimal
	TotalIncomes  decimal.Decimal
	Net           decimal.Decimal
	Usernames     []string
	RecordsError  string
}

// DetailView fetches the budget and its records concurrently. The budget is
// mandatory; the records branch degrades to an empty list with an error
// message. Group usernames are resolved after the budget arrives and degrade
// silently, matching the upstream's optional group semantics.
func (s *BudgetService) DetailView(ctx context.Context, token string, id int64) (*BudgetDetailView, error) {
	view := &BudgetDetailView{
		Records:   []*domain.Record{},
		Usernames: []string{},
	}

	var budgetErr error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		budget, err := s.budgets.GetByID(gctx, token, id)
		if err != nil {
			budgetErr = err
			return nil
		}
		view.Budget = budget
		return nil
	})
	g.Go(func() error {
		records, err := s.records.ListByBudget(gctx, token, id)
		if err != nil {
			view.RecordsError = msgRecordsUnavailable
			return nil
		}
		if records != nil {
			view.Records = records
		}
		return nil
	})
	_ = g.Wait()

	if budgetErr != nil {
		return nil, budgetErr
	}

	view.TotalExpenses = aggregate.SumByType(view.Records, domain.RecordTypeExpense)
	view.TotalIncomes = aggregate.SumByType(view.Records, domain.RecordTypeIncome)
	view.Net = view.TotalIncomes.Sub(view.TotalExpenses)

	if view.Budget.GroupID != 0 {
		if usernames, err := s.groups.UsernamesOf(ctx, token, view.Budget.GroupID); err == nil && usernames != nil {
			view.Usernames = usernames
		}
	}

	return view, nil
}

// BudgetInput is the payload for creating or updating a budget.
type BudgetInput struct {
	Name          string
	Comment       string
	StartDate     *string
	EndDate       *string
	ExpensesLimit decimal.Decimal
	Favorite      bool
}

// Create validates the input and creates the budget upstream.
func (s *BudgetService) Create(ctx context.Context, token string, in BudgetInput) (*domain.Budget, error) {
	if err := validateBudget(in); err != nil {
		return nil, err
	}
	return s.budgets.Create(ctx, token, budgetFromInput(0, in))
}

// Update validates the input and updates the budget upstream.
func (s *BudgetService) Update(ctx context.Context, token string, id int64, in BudgetInput) (*domain.Budget, error) {
	if err := validateBudget(in); err != nil {
		return nil, err
	}
	return s.budgets.Update(ctx, token, budgetFromInput(id, in))
}

// Delete removes the budget upstream; callers apply RemoveBudget to their
// local copy afterwards.
func (s *BudgetService) Delete(ctx context.Context, token string, id int64) error {
	return s.budgets.Delete(ctx, token, id)
}

// validateBudget enforces the client-side invariants before submission:
// a name, a non-negative limit and, when both bounds are present, an end
// date no earlier than the start date. The storage side does not guarantee
// the date invariant, so it is enforced here.
func validateBudget(in BudgetInput) error {
	if in.Name == "" {
		return domain.ErrNameRequired
	}
	if in.ExpensesLimit.IsNegative() {
		return domain.ErrInvalidLimit
	}
	if in.StartDate != nil && in.EndDate != nil && *in.EndDate < *in.StartDate {
		return domain.ErrInvalidDateRange
	}
	return nil
}

func budgetFromInput(id int64, in BudgetInput) *domain.Budget {
	return &domain.Budget{
		ID:            id,
		Name:          in.Name,
		Comment:       in.Comment,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		ExpensesLimit: in.ExpensesLimit,
		Favorite:      in.Favorite,
	}
}

// RemoveBudget is the pure reducer applied to the local list after a
// confirmed delete.
func RemoveBudget(budgets []*domain.Budget, id int64) []*domain.Budget {
	out := make([]*domain.Budget, 0, len(budgets))
	for _, b := range budgets {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
