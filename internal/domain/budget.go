package domain

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Budget is a named spending envelope with optional date bounds. Both bounds
// are ISO dates (YYYY-MM-DD); a nil bound means the budget is open on that
// side.
type Budget struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Comment       string          `json:"comment,omitempty"`
	StartDate     *string         `json:"startDate"`
	EndDate       *string         `json:"endDate"`
	ExpensesLimit decimal.Decimal `json:"expensesLimit"`
	Favorite      bool            `json:"favorite"`
	GroupID       int64           `json:"groupId,omitempty"`
	Records       []int64         `json:"records,omitempty"`
}

// AllowsDate reports whether an entry dated date may be associated with the
// budget. ISO dates compare correctly as strings, so no parsing is needed.
// A budget with neither bound set allows any date.
func (b *Budget) AllowsDate(date string) bool {
	if b.StartDate != nil && date < *b.StartDate {
		return false
	}
	if b.EndDate != nil && date > *b.EndDate {
		return false
	}
	return true
}

// Window describes the budget's date bounds for display, e.g.
// "2024-01-01 to 2024-01-31", "from 2024-01-01" or "open".
func (b *Budget) Window() string {
	switch {
	case b.StartDate != nil && b.EndDate != nil:
		return *b.StartDate + " to " + *b.EndDate
	case b.StartDate != nil:
		return "from " + *b.StartDate
	case b.EndDate != nil:
		return "until " + *b.EndDate
	default:
		return "open"
	}
}

// BudgetWindowError reports every selected budget whose date window excludes
// the record's date. All offenders are collected so the user can fix the
// associations in a single pass.
type BudgetWindowError struct {
	Date    string
	Budgets []*Budget
}

func (e *BudgetWindowError) Error() string {
	names := make([]string, len(e.Budgets))
	for i, b := range e.Budgets {
		names[i] = fmt.Sprintf("%s (%s)", b.Name, b.Window())
	}
	return fmt.Sprintf("record date %s is outside the window of budgets: %s",
		e.Date, strings.Join(names, ", "))
}

// BudgetGateway is the upstream API surface for budgets.
type BudgetGateway interface {
	List(ctx context.Context, token string, params url.Values) ([]*Budget, error)
	GetByID(ctx context.Context, token string, id int64) (*Budget, error)
	Create(ctx context.Context, token string, budget *Budget) (*Budget, error)
	Update(ctx context.Context, token string, budget *Budget) (*Budget, error)
	Delete(ctx context.Context, token string, id int64) error
}
