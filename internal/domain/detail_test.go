package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDetailComputeTotal(t *testing.T) {
	tests := []struct {
		name  string
		price string
		units int64
		want  string
	}{
		{"simple product", "15.50", 2, "31"},
		{"rounds to cents", "0.333", 3, "1"},
		{"single unit", "12.49", 1, "12.49"},
		{"zero units", "9.99", 0, "0"},
		{"rounding boundary", "1.005", 1, "1.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Detail{PricePerUnit: decimal.RequireFromString(tt.price), Units: tt.units}
			d.ComputeTotal()
			if !d.TotalPrice.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ComputeTotal(%s x %d) = %s, want %s",
					tt.price, tt.units, d.TotalPrice, tt.want)
			}
		})
	}
}

func TestDetailComputeTotalOverwritesStale(t *testing.T) {
	d := Detail{
		PricePerUnit: decimal.RequireFromString("10.00"),
		Units:        3,
		TotalPrice:   decimal.RequireFromString("999.99"),
	}
	d.ComputeTotal()
	if !d.TotalPrice.Equal(decimal.RequireFromString("30")) {
		t.Errorf("stale total survived: %s", d.TotalPrice)
	}
}
