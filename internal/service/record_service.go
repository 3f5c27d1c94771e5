package service

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/cartera-app/cartera-gateway/internal/aggregate"
	"github.com/cartera-app/cartera-gateway/internal/domain"
	"github.com/cartera-app/cartera-gateway/internal/filter"
)

// View-level error messages. A failed branch surfaces one of these instead
// of failing the whole view.
const (
	msgRecordsUnavailable  = "could not retrieve the user's records"
	msgBudgetsUnavailable  = "could not retrieve the user's budgets"
	msgDetailsUnavailable  = "could not retrieve the record's details"
	msgRequestsUnavailable = "could not retrieve the user's requests"
)

// RecordService drives the record list and record detail views.
type RecordService struct {
	records domain.RecordGateway
	budgets domain.BudgetGateway
	details domain.DetailGateway
}

// NewRecordService creates a new RecordService.
func NewRecordService(records domain.RecordGateway, budgets domain.BudgetGateway, details domain.DetailGateway) *RecordService {
	return &RecordService{
		records: records,
		budgets: budgets,
		details: details,
	}
}

// RecordListView is the records list page: the filtered records plus the
// user's budgets, with an id index for O(1) name lookups while rendering.
// Each branch fails independently; a failed branch leaves its list empty
// and sets its error message.
type RecordListView struct {
	Records      []*domain.Record
	Budgets      []*domain.Budget
	BudgetIndex  map[int64]*domain.Budget
	RecordsError string
	BudgetsError string
}

// ListView fetches records (with the given filter form) and budgets
// concurrently and joins them. The view always renders: branch failures
// degrade to empty lists with per-branch error messages.
func (s *RecordService) ListView(ctx context.Context, token string, form filter.RecordForm) *RecordListView {
	view := &RecordListView{
		Records: []*domain.Record{},
		Budgets: []*domain.Budget{},
	}

	// Each branch records its own outcome and returns nil, so one failure
	// never cancels the sibling fetch.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := s.records.List(ctx, token, form.Build())
		if err != nil {
			view.RecordsError = msgRecordsUnavailable
			return nil
		}
		if records != nil {
			view.Records = records
		}
		return nil
	})
	g.Go(func() error {
		budgets, err := s.budgets.List(ctx, token, nil)
		if err != nil {
			view.BudgetsError = msgBudgetsUnavailable
			return nil
		}
		if budgets != nil {
			view.Budgets = budgets
		}
		return nil
	})
	_ = g.Wait()

	view.BudgetIndex = indexBudgets(view.Budgets)
	return view
}

// RecordDetailView is one record with its line-item details and their
// derived total, plus the user's budgets for association editing.
type RecordDetailView struct {
	Record       *domain.Record
	Details      []*domain.Detail
	DetailsTotal decimal.Decimal
	Budgets      []*domain.Budget
	BudgetIndex  map[int64]*domain.Budget
	DetailsError string
	BudgetsError string
}

// DetailView fetches the record and the budget list concurrently, then the
// record's details. The record itself is mandatory; details and budgets
// degrade independently.
func (s *RecordService) DetailView(ctx context.Context, token string, id int64) (*RecordDetailView, error) {
	view := &RecordDetailView{
		Details: []*domain.Detail{},
		Budgets: []*domain.Budget{},
	}

	var recordErr error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		record, err := s.records.GetByID(gctx, token, id)
		if err != nil {
			recordErr = err
			return nil
		}
		view.Record = record

		details, err := s.details.ListByIDs(gctx, token, record.Details)
		if err != nil {
			view.DetailsError = msgDetailsUnavailable
			return nil
		}
		view.Details = details
		return nil
	})
	g.Go(func() error {
		budgets, err := s.budgets.List(gctx, token, nil)
		if err != nil {
			view.BudgetsError = msgBudgetsUnavailable
			return nil
		}
		if budgets != nil {
			view.Budgets = budgets
		}
		return nil
	})
	_ = g.Wait()

	if recordErr != nil {
		return nil, recordErr
	}

	view.DetailsTotal = aggregate.SumDetailTotals(view.Details)
	view.BudgetIndex = indexBudgets(view.Budgets)
	return view, nil
}

// RecordInput is the payload for creating or updating a record. Create and
// Update are separate operations so an update without an id is
// unrepresentable.
type RecordInput struct {
	Type    domain.RecordType
	Name    string
	Money   decimal.Decimal
	Date    string
	Comment string
	Owner   string
	Details []int64
	Budgets []int64
}

// Create validates the input and creates the record upstream. Validation
// failures never reach the network.
func (s *RecordService) Create(ctx context.Context, token string, in RecordInput) (*domain.Record, error) {
	if err := s.validate(ctx, token, in); err != nil {
		return nil, err
	}
	return s.records.Create(ctx, token, recordFromInput(0, in))
}

// Update validates the input and updates the record upstream.
func (s *RecordService) Update(ctx context.Context, token string, id int64, in RecordInput) (*domain.Record, error) {
	if err := s.validate(ctx, token, in); err != nil {
		return nil, err
	}
	return s.records.Update(ctx, token, recordFromInput(id, in))
}

// Delete removes the record upstream. Local list state is adjusted by the
// caller with RemoveRecord once this succeeds.
func (s *RecordService) Delete(ctx context.Context, token string, id int64) error {
	return s.records.Delete(ctx, token, id)
}

func (s *RecordService) validate(ctx context.Context, token string, in RecordInput) error {
	if in.Name == "" {
		return domain.ErrNameRequired
	}
	if !in.Money.IsPositive() {
		return domain.ErrMoneyRequired
	}
	if in.Date == "" {
		return domain.ErrDateRequired
	}
	if !in.Type.Valid() {
		return domain.ErrInvalidType
	}
	return s.checkBudgetWindows(ctx, token, in)
}

// checkBudgetWindows rejects the save when the record's date falls outside
// any selected budget's window, enumerating every offender so the user can
// fix all associations in one pass.
func (s *RecordService) checkBudgetWindows(ctx context.Context, token string, in RecordInput) error {
	if len(in.Budgets) == 0 {
		return nil
	}

	budgets, err := s.budgets.List(ctx, token, nil)
	if err != nil {
		return err
	}
	index := indexBudgets(budgets)

	var offenders []*domain.Budget
	for _, id := range in.Budgets {
		b, ok := index[id]
		if !ok {
			continue
		}
		if !b.AllowsDate(in.Date) {
			offenders = append(offenders, b)
		}
	}

	if len(offenders) > 0 {
		return &domain.BudgetWindowError{Date: in.Date, Budgets: offenders}
	}
	return nil
}

func recordFromInput(id int64, in RecordInput) *domain.Record {
	return &domain.Record{
		ID:      id,
		Type:    in.Type,
		Name:    in.Name,
		Money:   in.Money,
		Date:    in.Date,
		Comment: in.Comment,
		Owner:   in.Owner,
		Details: in.Details,
		Budgets: in.Budgets,
	}
}

// RemoveRecord is the pure reducer applied to the local list after a
// confirmed delete.
func RemoveRecord(records []*domain.Record, id int64) []*domain.Record {
	out := make([]*domain.Record, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

func indexBudgets(budgets []*domain.Budget) map[int64]*domain.Budget {
	index := make(map[int64]*domain.Budget, len(budgets))
	for _, b := range budgets {
		index[b.ID] = b
	}
	return index
}
