package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cartera-app/cartera-gateway/internal/domain"
)

// RecordGateway implements domain.RecordGateway against /expenses/record.
type RecordGateway struct {
	c *Client
}

// NewRecordGateway creates a RecordGateway on the shared client.
func NewRecordGateway(c *Client) *RecordGateway {
	return &RecordGateway{c: c}
}

func (g *RecordGateway) List(ctx context.Context, token string, params url.Values) ([]*domain.Record, error) {
	var records []*domain.Record
	if err := g.c.get(ctx, token, "/expenses/record", params, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (g *RecordGateway) GetByID(ctx context.Context, token string, id int64) (*domain.Record, error) {
	var record domain.Record
	if err := g.c.get(ctx, token, fmt.Sprintf("/expenses/record/%d", id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (g *RecordGateway) ListByBudget(ctx context.Context, token string, budgetID int64) ([]*domain.Record, error) {
	var records []*domain.Record
	path := fmt.Sprintf("/expenses/record/by-budget/%d", budgetID)
	if err := g.c.get(ctx, token, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (g *RecordGateway) Create(ctx context.Context, token string, record *domain.Record) (*domain.Record, error) {
	var created domain.Record
	if err := g.c.send(ctx, http.MethodPost, token, "/expenses/record", record, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *RecordGateway) Update(ctx context.Context, token string, record *domain.Record) (*domain.Record, error) {
	var updated domain.Record
	path := fmt.Sprintf("/expenses/record/%d", record.ID)
	if err := g.c.send(ctx, http.MethodPut, token, path, record, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *RecordGateway) Delete(ctx context.Context, token string, id int64) error {
	return g.c.send(ctx, http.MethodDelete, token, fmt.Sprintf("/expenses/record/%d", id), nil, nil)
}
