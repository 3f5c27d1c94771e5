package domain

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"
)

type RecordType string

const (
	RecordTypeExpense RecordType = "EXPENSE"
	RecordTypeIncome  RecordType = "INCOME"
)

// Valid reports whether t is one of the two known record types.
func (t RecordType) Valid() bool {
	return t == RecordTypeExpense || t == RecordTypeIncome
}

// Record is a single income or expense entry. The upstream backend owns the
// entity; the gateway only ever holds a transient copy for one view cycle.
type Record struct {
	ID      int64           `json:"id"`
	Type    RecordType      `json:"type"`
	Name    string          `json:"name"`
	Money   decimal.Decimal `json:"money"`
	Date    string          `json:"date"`
	Comment string          `json:"comment,omitempty"`
	Owner   string          `json:"owner,omitempty"`
	Details []int64         `json:"details,omitempty"`
	Budgets []int64         `json:"budgets,omitempty"`
}

// RecordGateway is the upstream API surface for records.
type RecordGateway interface {
	List(ctx context.Context, token string, params url.Values) ([]*Record, error)
	GetByID(ctx context.Context, token string, id int64) (*Record, error)
	ListByBudget(ctx context.Context, token string, budgetID int64) ([]*Record, error)
	Create(ctx context.Context, token string, record *Record) (*Record, error)
	Update(ctx context.Context, token string, record *Record) (*Record, error)
	Delete(ctx context.Context, token string, id int64) error
}
