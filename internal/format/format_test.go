package format

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"thousands grouping", "1249.95", "1.249,95"},
		{"pads fraction to two digits", "15.5", "15,50"},
		{"integer value", "15", "15,00"},
		{"zero", "0", "0,00"},
		{"rounds half up at display", "10.005", "10,01"},
		{"millions", "1234567.89", "1.234.567,89"},
		{"no grouping below a thousand", "999.99", "999,99"},
		{"negative", "-1249.95", "-1.249,95"},
		{"exact decimal sum survives", "1249.95", "1.249,95"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.input)
			if err != nil {
				t.Fatalf("bad input %q: %v", tt.input, err)
			}
			if got := Number(d); got != tt.want {
				t.Errorf("Number(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNumberPtr(t *testing.T) {
	if got := NumberPtr(nil); got != Placeholder {
		t.Errorf("NumberPtr(nil) = %q, want %q", got, Placeholder)
	}

	d := decimal.NewFromFloat(15.5)
	if got := NumberPtr(&d); got != "15,50" {
		t.Errorf("NumberPtr(15.5) = %q, want %q", got, "15,50")
	}
}

func TestInteger(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0"},
		{7, "7"},
		{1000, "1.000"},
		{1234567, "1.234.567"},
		{-5000, "-5.000"},
	}

	for _, tt := range tests {
		if got := Integer(tt.input); got != tt.want {
			t.Errorf("Integer(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"iso date", "2024-01-31", "31-01-2024"},
		{"another iso date", "1999-12-01", "01-12-1999"},
		{"not a date passes through", "tomorrow", "tomorrow"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Date(tt.input); got != tt.want {
				t.Errorf("Date(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDatePtr(t *testing.T) {
	if got := DatePtr(nil); got != "" {
		t.Errorf("DatePtr(nil) = %q, want empty", got)
	}

	iso := "2024-06-15"
	if got := DatePtr(&iso); got != "15-06-2024" {
		t.Errorf("DatePtr(%q) = %q, want %q", iso, got, "15-06-2024")
	}
}
