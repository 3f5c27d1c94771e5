package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cartera-app/cartera-gateway/internal/domain"
)

// DetailService manages a record's line-item details.
type DetailService struct {
	details domain.DetailGateway
}

// NewDetailService creates a new DetailService.
func NewDetailService(details domain.DetailGateway) *DetailService {
	return &DetailService{details: details}
}

// DetailInput is the payload for creating or updating a detail. The total
// is always derived from price and units, never supplied by the caller.
type DetailInput struct {
	Name         string
	PricePerUnit decimal.Decimal
	Units        int64
	RecordID     int64
}

// Create validates the input, computes the total and creates the detail
// upstream.
func (s *DetailService) Create(ctx context.Context, token string, in DetailInput) (*domain.Detail, error) {
	detail, err := detailFromInput(0, in)
	if err != nil {
		return nil, err
	}
	return s.details.Create(ctx, token, detail)
}

// Update validates the input, recomputes the total and updates the detail
// upstream.
func (s *DetailService) Update(ctx context.Context, token string, id int64, in DetailInput) (*domain.Detail, error) {
	detail, err := detailFromInput(id, in)
	if err != nil {
		return nil, err
	}
	return s.details.Update(ctx, token, detail)
}

// Delete removes the detail upstream; callers apply RemoveDetail to their
// local copy afterwards.
func (s *DetailService) Delete(ctx context.Context, token string, id int64) error {
	return s.details.Delete(ctx, token, id)
}

func detailFromInput(id int64, in DetailInput) (*domain.Detail, error) {
	if in.Name == "" {
		return nil, domain.ErrNameRequired
	}
	if in.Units < 1 {
		return nil, domain.ErrInvalidUnits
	}
	if in.PricePerUnit.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}

	detail := &domain.Detail{
		ID:           id,
		Name:         in.Name,
		PricePerUnit: in.PricePerUnit,
		Units:        in.Units,
		RecordID:     in.RecordID,
	}
	detail.ComputeTotal()
	return detail, nil
}

// ApplyDetail is the pure reducer that replaces (or appends) a saved detail
// in the local list after the server confirms the write.
func ApplyDetail(details []*domain.Detail, saved *domain.Detail) []*domain.Detail {
	out := make([]*domain.Detail, 0, len(details)+1)
	replaced := false
	for _, d := range details {
		if d.ID == saved.ID {
			out = append(out, saved)
			replaced = true
			continue
		}
		out = append(out, d)
	}
	if !replaced {
		out = append(out, saved)
	}
	return out
}

// RemoveDetail is the pure reducer applied after a confirmed delete.
func RemoveDetail(details []*domain.Detail, id int64) []*domain.Detail {
	out := make([]*domain.Detail, 0, len(details))
	for _, d := range details {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return out
}
