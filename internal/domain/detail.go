package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Detail is a line-item breakdown belonging to one record.
type Detail struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Units        int64           `json:"units"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	RecordID     int64           `json:"record"`
}

// ComputeTotal recomputes TotalPrice from the unit price and unit count.
// A stale stored total is never trusted; every save path calls this.
func (d *Detail) ComputeTotal() {
	d.TotalPrice = d.PricePerUnit.Mul(decimal.NewFromInt(d.Units)).Round(2)
}

// DetailGateway is the upstream API surface for details.
type DetailGateway interface {
	ListByIDs(ctx context.Context, token string, ids []int64) ([]*Detail, error)
	Create(ctx context.Context, token string, detail *Detail) (*Detail, error)
	Update(ctx context.Context, token string, detail *Detail) (*Detail, error)
	Delete(ctx context.Context, token string, id int64) error
}
