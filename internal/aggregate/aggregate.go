// Package aggregate derives running totals from record and detail lists for
// summary headers and table footers. All functions are pure and total:
// missing or zero-value amounts contribute zero, an empty input sums to
// zero, and no call path can fail. Sums are exact decimals; display rounding
// happens only in package format.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/cartera-app/cartera-gateway/internal/domain"
)

// SumByType returns the sum of Money over all records of the given type.
func SumByType(records []*domain.Record, t domain.RecordType) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		if r == nil || r.Type != t {
			continue
		}
		sum = sum.Add(r.Money)
	}
	return sum
}

// NetTotal returns incomes minus expenses; positive means net gain.
func NetTotal(records []*domain.Record) decimal.Decimal {
	return SumByType(records, domain.RecordTypeIncome).
		Sub(SumByType(records, domain.RecordTypeExpense))
}

// SumDetailTotals returns the sum of TotalPrice over all details.
func SumDetailTotals(details []*domain.Detail) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range details {
		if d == nil {
			continue
		}
		sum = sum.Add(d.TotalPrice)
	}
	return sum
}
