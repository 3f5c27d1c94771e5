package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cartera-app/cartera-gateway/internal/domain"
)

// RequestGateway implements domain.RequestGateway against
// /users/group-request.
type RequestGateway struct {
	c *Client
}

// NewRequestGateway creates a RequestGateway on the shared client.
func NewRequestGateway(c *Client) *RequestGateway {
	return &RequestGateway{c: c}
}

func (g *RequestGateway) ListByUsername(ctx context.Context, token, username string) ([]*domain.GroupRequest, error) {
	var requests []*domain.GroupRequest
	path := "/users/group-request/by-username/" + username
	if err := g.c.get(ctx, token, path, nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (g *RequestGateway) Create(ctx context.Context, token string, groupID int64, requestingUser, requestedUser string) (*domain.GroupRequest, error) {
	body := struct {
		Group          int64  `json:"group"`
		RequestingUser string `json:"requestingUser"`
		RequestedUser  string `json:"requestedUser"`
	}{groupID, requestingUser, requestedUser}

	var created domain.GroupRequest
	if err := g.c.send(ctx, http.MethodPost, token, "/users/group-request", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *RequestGateway) Resolve(ctx context.Context, token string, request *domain.GroupRequest) (*domain.GroupRequest, error) {
	var updated domain.GroupRequest
	path := fmt.Sprintf("/users/group-request/%d", request.ID)
	if err := g.c.send(ctx, http.MethodPut, token, path, request, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GroupGateway implements domain.GroupGateway against /users/group.
type GroupGateway struct {
	c *Client
}

// NewGroupGateway creates a GroupGateway on the shared client.
func NewGroupGateway(c *Client) *GroupGateway {
	return &GroupGateway{c: c}
}

func (g *GroupGateway) UsernamesOf(ctx context.Context, token string, groupID int64) ([]string, error) {
	var usernames []string
	path := fmt.Sprintf("/users/group/usernames-of/%d", groupID)
	if err := g.c.get(ctx, token, path, nil, &usernames); err != nil {
		return nil, err
	}
	return usernames, nil
}
