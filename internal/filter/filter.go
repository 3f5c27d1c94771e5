// Package filter converts raw list-view filter forms into the normalized
// query parameters the upstream API expects. Unset fields are omitted, range
// pairs are normalized so the upper bound never undercuts the lower one, and
// unparseable numeric input is dropped rather than forwarded.
package filter

import (
	"math"
	"net/url"
	"strconv"
)

// Upstream query parameter names.
const (
	paramRecordType   = "recordType"
	paramMoneyGTE     = "moneyGreaterOrEqualThan"
	paramMoneyLTE     = "moneyLowerOrEqualThan"
	paramBudgetsIn    = "budgetsIn"
	paramDateGTE      = "dateAfterOrEqualThan"
	paramDateLTE      = "dateBeforeOrEqualThan"
	paramName         = "name"
	paramComment      = "comment"
	paramLimitGTE     = "expensesLimitGreaterOrEqualThan"
	paramLimitLTE     = "expensesLimitLowerOrEqualThan"
	paramStartDateGTE = "startDateAfterOrEqualThan"
	paramStartDateLTE = "startDateBeforeOrEqualThan"
	paramEndDateGTE   = "endDateAfterOrEqualThan"
	paramEndDateLTE   = "endDateBeforeOrEqualThan"
	paramFavorite     = "favorite"
)

// RecordForm is the raw state of the records filter form. String fields hold
// the user's input verbatim; empty means unset.
type RecordForm struct {
	Type      string
	MinAmount string
	MaxAmount string
	Budgets   []int64
	StartDate string
	EndDate   string
	Name      string
	Comment   string
}

// Build produces the upstream query parameters for the form. The result is a
// fresh url.Values each call; building twice from the same form yields equal
// output.
func (f RecordForm) Build() url.Values {
	params := url.Values{}

	if f.Type != "" {
		params.Set(paramRecordType, f.Type)
	}

	emitAmountRange(params, paramMoneyGTE, paramMoneyLTE, f.MinAmount, f.MaxAmount)

	for _, id := range f.Budgets {
		params.Add(paramBudgetsIn, strconv.FormatInt(id, 10))
	}

	emitDateRange(params, paramDateGTE, paramDateLTE, f.StartDate, f.EndDate)

	if f.Name != "" {
		params.Set(paramName, f.Name)
	}
	if f.Comment != "" {
		params.Set(paramComment, f.Comment)
	}

	return params
}

// BudgetForm is the raw state of the budgets filter form. Favorite is
// tri-state: nil means unset.
type BudgetForm struct {
	Name             string
	ExpensesLimitMin string
	ExpensesLimitMax string
	StartDateAfter   string
	StartDateBefore  string
	EndDateAfter     string
	EndDateBefore    string
	Favorite         *bool
}

// Build produces the upstream query parameters for the form.
func (f BudgetForm) Build() url.Values {
	params := url.Values{}

	if f.Name != "" {
		params.Set(paramName, f.Name)
	}

	emitAmountRange(params, paramLimitGTE, paramLimitLTE, f.ExpensesLimitMin, f.ExpensesLimitMax)
	emitDateRange(params, paramStartDateGTE, paramStartDateLTE, f.StartDateAfter, f.StartDateBefore)
	emitDateRange(params, paramEndDateGTE, paramEndDateLTE, f.EndDateAfter, f.EndDateBefore)

	if f.Favorite != nil {
		params.Set(paramFavorite, strconv.FormatBool(*f.Favorite))
	}

	return params
}

// parseAmount parses a numeric form field. Unparseable input, NaN and Inf
// all report ok=false so the field is omitted instead of leaking into the
// query string.
func parseAmount(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// emitAmountRange emits a numeric lower/upper bound pair. When both bounds
// parse and the upper undercuts the lower, the upper is clamped up to the
// lower: never swapped, never rejected, so the query can still match the
// lower bound itself.
func emitAmountRange(params url.Values, loKey, hiKey, rawLo, rawHi string) {
	lo, hasLo := parseAmount(rawLo)
	hi, hasHi := parseAmount(rawHi)

	if hasLo {
		params.Set(loKey, formatAmount(lo))
		if hasHi {
			if hi < lo {
				hi = lo
			}
			params.Set(hiKey, formatAmount(hi))
		}
		return
	}
	if hasHi {
		params.Set(hiKey, formatAmount(hi))
	}
}

// emitDateRange emits an ISO date lower/upper bound pair with the same clamp
// rule. ISO dates order correctly as strings.
func emitDateRange(params url.Values, loKey, hiKey, lo, hi string) {
	if lo != "" {
		params.Set(loKey, lo)
		if hi != "" {
			if hi < lo {
				hi = lo
			}
			params.Set(hiKey, hi)
		}
		return
	}
	if hi != "" {
		params.Set(hiKey, hi)
	}
}
