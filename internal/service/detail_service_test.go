package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cartera-app/cartera-gateway/internal/domain"
	"github.com/cartera-app/cartera-gateway/internal/testutil"
)

func TestDetailServiceCreate(t *testing.T) {
	details := testutil.NewMockDetailGateway()
	svc := NewDetailService(details)

	created, err := svc.Create(context.Background(), "tok", DetailInput{
		Name:         "milk",
		PricePerUnit: decimal.RequireFromString("1.25"),
		Units:        4,
		RecordID:     7,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.TotalPrice.Equal(decimal.RequireFromString("5")) {
		t.Errorf("total = %s, want 5", created.TotalPrice)
	}
	if created.RecordID != 7 {
		t.Errorf("record id = %d, want 7", created.RecordID)
	}
}

func TestDetailServiceValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   DetailInput
		wantErr error
	}{
		{"missing name", DetailInput{Units: 1}, domain.ErrNameRequired},
		{"zero units", DetailInput{Name: "milk", Units: 0}, domain.ErrInvalidUnits},
		{"negative units", DetailInput{Name: "milk", Units: -2}, domain.ErrInvalidUnits},
		{
			"negative price",
			DetailInput{Name: "milk", Units: 1, PricePerUnit: decimal.NewFromInt(-1)},
			domain.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := testutil.NewMockDetailGateway()
			svc := NewDetailService(details)

			if _, err := svc.Create(context.Background(), "tok", tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if len(details.Details) != 0 {
				t.Error("invalid input reached the gateway")
			}
		})
	}
}

func TestDetailServiceUpdateRecomputesTotal(t *testing.T) {
	details := testutil.NewMockDetailGateway()
	details.Details = []*domain.Detail{{
		ID:         3,
		Name:       "milk",
		TotalPrice: decimal.RequireFromString("999.99"),
	}}
	svc := NewDetailService(details)

	updated, err := svc.Update(context.Background(), "tok", 3, DetailInput{
		Name:         "milk",
		PricePerUnit: decimal.RequireFromString("2.00"),
		Units:        3,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.TotalPrice.Equal(decimal.RequireFromString("6")) {
		t.Errorf("total = %s, want 6", updated.TotalPrice)
	}
}

func TestApplyDetail(t *testing.T) {
	existing := []*domain.Detail{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}

	replaced := ApplyDetail(existing, &domain.Detail{ID: 2, Name: "b2"})
	if len(replaced) != 2 || replaced[1].Name != "b2" {
		t.Errorf("replace = %+v", replaced)
	}

	appended := ApplyDetail(existing, &domain.Detail{ID: 3, Name: "c"})
	if len(appended) != 3 || appended[2].ID != 3 {
		t.Errorf("append = %+v", appended)
	}

	if len(existing) != 2 || existing[1].Name != "b" {
		t.Errorf("input mutated: %+v", existing)
	}
}

func TestRemoveDetail(t *testing.T) {
	details := []*domain.Detail{{ID: 1}, {ID: 2}}
	out := RemoveDetail(details, 2)
	if len(out) != 1 || out[0].ID != 1 {
		t.Errorf("out = %+v", out)
	}
}
