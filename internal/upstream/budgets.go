package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cartera-app/cartera-gateway/internal/domain"
)

// BudgetGateway implements domain.BudgetGateway against /expenses/budget.
type BudgetGateway struct {
	c *Client
}

// NewBudgetGateway creates a BudgetGateway on the shared client.
func NewBudgetGateway(c *Client) *BudgetGateway {
	return &BudgetGateway{c: c}
}

func (g *BudgetGateway) List(ctx context.Context, token string, params url.Values) ([]*domain.Budget, error) {
	var budgets []*domain.Budget
	if err := g.c.get(ctx, token, "/expenses/budget", params, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

func (g *BudgetGateway) GetByID(ctx context.Context, token string, id int64) (*domain.Budget, error) {
	var budget domain.Budget
	if err := g.c.get(ctx, token, fmt.Sprintf("/expenses/budget/%d", id), nil, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

func (g *BudgetGateway) Create(ctx context.Context, token string, budget *domain.Budget) (*domain.Budget, error) {
	var created domain.Budget
	if err := g.c.send(ctx, http.MethodPost, token, "/expenses/budget", budget, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *BudgetGateway) Update(ctx context.Context, token string, budget *domain.Budget) (*domain.Budget, error) {
	var updated domain.Budget
	path := fmt.Sprintf("/expenses/budget/%d", budget.ID)
	if err := g.c.send(ctx, http.MethodPut, token, path, budget, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *BudgetGateway) Delete(ctx context.Context, token string, id int64) error {
	return g.c.send(ctx, http.MethodDelete, token, fmt.Sprintf("/expenses/budget/%d", id), nil, nil)
}
