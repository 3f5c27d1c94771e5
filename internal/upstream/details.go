package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cartera-app/cartera-gateway/internal/domain"
)

// DetailGateway implements domain.DetailGateway against /expenses/detail.
type DetailGateway struct {
	c *Client
}

// NewDetailGateway creates a DetailGateway on the shared client.
func NewDetailGateway(c *Client) *DetailGateway {
	return &DetailGateway{c: c}
}

// ListByIDs fetches the details with the given IDs; the id list goes out as
// a repeated "ids" query key. An empty id list short-circuits to an empty
// result without a network call.
func (g *DetailGateway) ListByIDs(ctx context.Context, token string, ids []int64) ([]*domain.Detail, error) {
	if len(ids) == 0 {
		return []*domain.Detail{}, nil
	}

	params := url.Values{}
	for _, id := range ids {
		params.Add("ids", strconv.FormatInt(id, 10))
	}

	var details []*domain.Detail
	if err := g.c.get(ctx, token, "/expenses/detail", params, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (g *DetailGateway) Create(ctx context.Context, token string, detail *domain.Detail) (*domain.Detail, error) {
	var created domain.Detail
	if err := g.c.send(ctx, http.MethodPost, token, "/expenses/detail", detail, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *DetailGateway) Update(ctx context.Context, token string, detail *domain.Detail) (*domain.Detail, error) {
	var updated domain.Detail
	path := fmt.Sprintf("/expenses/detail/%d", detail.ID)
	if err := g.c.send(ctx, http.MethodPut, token, path, detail, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *DetailGateway) Delete(ctx context.Context, token string, id int64) error {
	return g.c.send(ctx, http.MethodDelete, token, fmt.Sprintf("/expenses/detail/%d", id), nil, nil)
}
