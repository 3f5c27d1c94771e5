package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cartera-app/cartera-gateway/internal/domain"
)

func rec(t domain.RecordType, amount string) *domain.Record {
	return &domain.Record{Type: t, Money: decimal.RequireFromString(amount)}
}

func TestSumByType(t *testing.T) {
	records := []*domain.Record{
		rec(domain.RecordTypeExpense, "1000.50"),
		rec(domain.RecordTypeExpense, "249.45"),
		rec(domain.RecordTypeIncome, "2000.00"),
		nil,
	}

	expenses := SumByType(records, domain.RecordTypeExpense)
	if !expenses.Equal(decimal.RequireFromString("1249.95")) {
		t.Errorf("expense sum = %s, want 1249.95", expenses)
	}

	incomes := SumByType(records, domain.RecordTypeIncome)
	if !incomes.Equal(decimal.RequireFromString("2000.00")) {
		t.Errorf("income sum = %s, want 2000.00", incomes)
	}
}

func TestSumByTypeEmpty(t *testing.T) {
	if got := SumByType(nil, domain.RecordTypeExpense); !got.IsZero() {
		t.Errorf("empty sum = %s, want 0", got)
	}
	if got := SumByType([]*domain.Record{}, domain.RecordTypeIncome); !got.IsZero() {
		t.Errorf("empty sum = %s, want 0", got)
	}
}

func TestNetTotal(t *testing.T) {
	records := []*domain.Record{
		rec(domain.RecordTypeIncome, "2000.00"),
		rec(domain.RecordTypeExpense, "1000.50"),
		rec(domain.RecordTypeExpense, "249.45"),
	}

	net := NetTotal(records)
	if !net.Equal(decimal.RequireFromString("750.05")) {
		t.Errorf("net = %s, want 750.05", net)
	}

	// net must always equal incomes minus expenses computed separately
	check := SumByType(records, domain.RecordTypeIncome).
		Sub(SumByType(records, domain.RecordTypeExpense))
	if !net.Equal(check) {
		t.Errorf("net = %s, direct computation = %s", net, check)
	}
}

func TestNetTotalNegative(t *testing.T) {
	records := []*domain.Record{
		rec(domain.RecordTypeExpense, "100.00"),
		rec(domain.RecordTypeIncome, "40.00"),
	}

	net := NetTotal(records)
	if !net.Equal(decimal.RequireFromString("-60.00")) {
		t.Errorf("net = %s, want -60.00", net)
	}
}

func TestSumDetailTotals(t *testing.T) {
	details := []*domain.Detail{
		{TotalPrice: decimal.RequireFromString("31.00")},
		{TotalPrice: decimal.RequireFromString("4.50")},
		nil,
	}

	sum := SumDetailTotals(details)
	if !sum.Equal(decimal.RequireFromString("35.50")) {
		t.Errorf("sum = %s, want 35.50", sum)
	}

	if got := SumDetailTotals(nil); !got.IsZero() {
		t.Errorf("empty sum = %s, want 0", got)
	}
}
