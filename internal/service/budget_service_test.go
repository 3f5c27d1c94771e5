package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cartera-app/cartera-gateway/internal/domain"
	"github.com/cartera-app/cartera-gateway/internal/filter"
	"github.com/cartera-app/cartera-gateway/internal/testutil"
)

func TestBudgetServiceList(t *testing.T) {
	budgets := testutil.NewMockBudgetGateway()
	budgets.Budgets = []*domain.Budget{{ID: 1, Name: "food"}}

	svc := NewBudgetService(budgets, testutil.NewMockRecordGateway(), testutil.NewMockGroupGateway())
	fav := true
	out, err := svc.List(context.Background(), "tok", filter.BudgetForm{Favorite: &fav})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 || out[0].Name != "food" {
		t.Errorf("budgets = %+v", out)
	}
	if budgets.LastParams.Get("favorite") != "true" {
		t.Errorf("filter not forwarded: %v", budgets.LastParams)
	}
}

func TestBudgetServiceDetailView(t *testing.T) {
	budgets := testutil.NewMockBudgetGateway()
	budgets.Budgets = []*domain.Budget{{ID: 1, Name: "food", GroupID: 9}}
	records := testutil.NewMockRecordGateway()
	records.ByBudget = map[int64][]*domain.Record{
		1: {
			{ID: 10, Type: domain.RecordTypeExpense, Money: decimal.RequireFromString("1000.50")},
			{ID: 11, Type: domain.RecordTypeExpense, Money: decimal.RequireFromString("249.45")},
			{ID: 12, Type: domain.RecordTypeIncome, Money: decimal.RequireFromString("2000.00")},
		},
	}
	groups := testutil.NewMockGroupGateway()
	groups.Usernames[9] = []string{"alice", "bob"}

	svc := NewBudgetService(budgets, records, groups)
	view, err := svc.DetailView(context.Background(), "tok", 1)
	if err != nil {
		t.Fatalf("DetailView: %v", err)
	}

	if !view.TotalExpenses.Equal(decimal.RequireFromString("1249.95")) {
		t.Errorf("expenses = %s, want 1249.95", view.TotalExpenses)
	}
	if !view.TotalIncomes.Equal(decimal.RequireFromString("2000.00")) {
		t.Errorf("incomes = %s, want 2000.00", view.TotalIncomes)
	}
	if !view.Net.Equal(decimal.RequireFromString("750.05")) {
		t.Errorf("net = %s, want 750.05", view.Net)
	}
	if len(view.Usernames) != 2 {
		t.Errorf("usernames = %v", view.Usernames)
	}
}

func TestBudgetServiceDetailViewBudgetMissing(t *testing.T) {
	svc := NewBudgetService(testutil.NewMockBudgetGateway(),
		testutil.NewMockRecordGateway(), testutil.NewMockGroupGateway())

	if _, err := svc.DetailView(context.Background(), "tok", 99); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBudgetServiceDetailViewRecordsDegrade(t *testing.T) {
	budgets := testutil.NewMockBudgetGateway()
	budgets.Budgets = []*domain.Budget{{ID: 1, Name: "food"}}
	records := testutil.NewMockRecordGateway()
	records.ListErr = errors.New("boom")

	svc := NewBudgetService(budgets, records, testutil.NewMockGroupGateway())
	view, err := svc.DetailView(context.Background(), "tok", 1)
	if err != nil {
		t.Fatalf("DetailView: %v", err)
	}
	if view.RecordsError == "" {
		t.Error("expected a records error message")
	}
	if !view.TotalExpenses.IsZero() || !view.Net.IsZero() {
		t.Errorf("totals not zero: %s / %s", view.TotalExpenses, view.Net)
	}
}

func TestBudgetServiceDetailViewGroupDegradesSilently(t *testing.T) {
	budgets := testutil.NewMockBudgetGateway()
	budgets.Budgets = []*domain.Budget{{ID: 1, Name: "food", GroupID: 9}}
	groups := testutil.NewMockGroupGateway()
	groups.Err = errors.New("boom")

	svc := NewBudgetService(budgets, testutil.NewMockRecordGateway(), groups)
	view, err := svc.DetailView(context.Background(), "tok", 1)
	if err != nil {
		t.Fatalf("DetailView: %v", err)
	}
	if len(view.Usernames) != 0 {
		t.Errorf("usernames = %v, want none", view.Usernames)
	}
}

func TestBudgetServiceCreateValidation(t *testing.T) {
	start := "2024-06-01"
	end := "2024-01-01"
	okEnd := "2024-12-31"

	tests := []struct {
		name    string
		input   BudgetInput
		wantErr error
	}{
		{"missing name", BudgetInput{}, domain.ErrNameRequired},
		{
			"negative limit",
			BudgetInput{Name: "food", ExpensesLimit: decimal.NewFromInt(-1)},
			domain.ErrInvalidLimit,
		},
		{
			"end before start",
			BudgetInput{Name: "food", StartDate: &start, EndDate: &end},
			domain.ErrInvalidDateRange,
		},
		{"valid open budget", BudgetInput{Name: "food"}, nil},
		{
			"valid bounded budget",
			BudgetInput{Name: "food", StartDate: &start, EndDate: &okEnd},
			nil,
		},
		{
			"equal bounds valid",
			BudgetInput{Name: "food", StartDate: &start, EndDate: &start},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budgets := testutil.NewMockBudgetGateway()
			svc := NewBudgetService(budgets, testutil.NewMockRecordGateway(),
				testutil.NewMockGroupGateway())

			_, err := svc.Create(context.Background(), "tok", tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && len(budgets.Budgets) != 0 {
				t.Error("invalid input reached the gateway")
			}
		})
	}
}

func TestRemoveBudget(t *testing.T) {
	budgets := []*domain.Budget{{ID: 1}, {ID: 2}}
	out := RemoveBudget(budgets, 1)
	if len(out) != 1 || out[0].ID != 2 {
		t.Errorf("out = %+v", out)
	}
	if len(budgets) != 2 {
		t.Errorf("input mutated: %+v", budgets)
	}
}
