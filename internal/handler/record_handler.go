package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/cartera-app/cartera-gateway/internal/domain"
	"github.com/cartera-app/cartera-gateway/internal/filter"
	"github.com/cartera-app/cartera-gateway/internal/format"
	"github.com/cartera-app/cartera-gateway/internal/middleware"
	"github.com/cartera-app/cartera-gateway/internal/service"
)

// RecordHandler handles record-related HTTP requests
type RecordHandler struct {
	recordService *service.RecordService
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler(recordService *service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// RecordRequest represents the create/update record request body
type RecordRequest struct {
	Type    string  `json:"type"`
	Name    string  `json:"name"`
	Money   string  `json:"money"`
	Date    string  `json:"date"`
	Comment string  `json:"comment,omitempty"`
	Details []int64 `json:"details,omitempty"`
	Budgets []int64 `json:"budgets,omitempty"`
}

// RecordResponse represents a record in API responses. Money and date come
// twice: the raw value and the es-ES display form.
type RecordResponse struct {
	ID           int64    `json:"id"`
	Type         string   `json:"type"`
	Name         string   `json:"name"`
	Money        string   `json:"money"`
	MoneyDisplay string   `json:"moneyDisplay"`
	Date         string   `json:"date"`
	DateDisplay  string   `json:"dateDisplay"`
	Comment      string   `json:"comment,omitempty"`
	Owner        string   `json:"owner,omitempty"`
	Details      []int64  `json:"details,omitempty"`
	Budgets      []int64  `json:"budgets,omitempty"`
	BudgetNames  []string `json:"budgetNames,omitempty"`
}

// RecordListResponse is the records list view payload
type RecordListResponse struct {
	Records []RecordResponse `json:"records"`
	Budgets []BudgetResponse `json:"budgets"`
	Errors  ViewErrors       `json:"errors"`
}

// RecordDetailResponse is the single-record view payload
type RecordDetailResponse struct {
	Record              RecordResponse   `json:"record"`
	Details             []DetailResponse `json:"details"`
	DetailsTotal        string           `json:"detailsTotal"`
	DetailsTotalDisplay string           `json:"detailsTotalDisplay"`
	Budgets             []BudgetResponse `json:"budgets"`
	Errors              ViewErrors       `json:"errors"`
}

// ViewErrors carries the per-branch error messages of a joined view
type ViewErrors struct {
	Records  string `json:"records,omitempty"`
	Budgets  string `json:"budgets,omitempty"`
	Details  string `json:"details,omitempty"`
	Requests string `json:"requests,omitempty"`
}

// ListRecords godoc
// @Summary List records
// @Description List the user's records with optional filters, joined with their budgets
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param type query string false "Record type (EXPENSE or INCOME)"
// @Param minAmount query string false "Minimum amount"
// @Param maxAmount query string false "Maximum amount"
// @Param budgets query []int false "Budget ids"
// @Param startDate query string false "Date lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Date upper bound (YYYY-MM-DD)"
// @Success 200 {object} RecordListResponse
// @Router /records [get]
func (h *RecordHandler) ListRecords(c echo.Context) error {
	form := filter.RecordForm{
		Type:      c.QueryParam("type"),
		MinAmount: c.QueryParam("minAmount"),
		MaxAmount: c.QueryParam("maxAmount"),
		StartDate: c.QueryParam("startDate"),
		EndDate:   c.QueryParam("endDate"),
		Name:      c.QueryParam("name"),
		Comment:   c.QueryParam("comment"),
	}
	for _, raw := range c.QueryParams()["budgets"] {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			form.Budgets = append(form.Budgets, id)
		}
	}

	view := h.recordService.ListView(c.Request().Context(), middleware.GetToken(c), form)

	res := RecordListResponse{
		Records: make([]RecordResponse, 0, len(view.Records)),
		Budgets: make([]BudgetResponse, 0, len(view.Budgets)),
		Errors: ViewErrors{
			Records: view.RecordsError,
			Budgets: view.BudgetsError,
		},
	}
	for _, r := range view.Records {
		res.Records = append(res.Records, toRecordResponse(r, view.BudgetIndex))
	}
	for _, b := range view.Budgets {
		res.Budgets = append(res.Budgets, toBudgetResponse(b))
	}

	return c.JSON(http.StatusOK, res)
}

// GetRecord godoc
// @Summary Get a record
// @Description Get one record with its details and derived detail total
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} RecordDetailResponse
// @Failure 404 {object} ProblemDetails
// @Router /records/{id} [get]
func (h *RecordHandler) GetRecord(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid record id", nil)
	}

	view, err := h.recordService.DetailView(c.Request().Context(), middleware.GetToken(c), id)
	if err != nil {
		return respondServiceError(c, err, "Could not retrieve the record")
	}

	res := RecordDetailResponse{
		Record:              toRecordResponse(view.Record, view.BudgetIndex),
		Details:             make([]DetailResponse, 0, len(view.Details)),
		DetailsTotal:        view.DetailsTotal.String(),
		DetailsTotalDisplay: format.Number(view.DetailsTotal),
		Budgets:             make([]BudgetResponse, 0, len(view.Budgets)),
		Errors: ViewErrors{
			Details: view.DetailsError,
			Budgets: view.BudgetsError,
		},
	}
	for _, d := range view.Details {
		res.Details = append(res.Details, toDetailResponse(d))
	}
	for _, b := range view.Budgets {
		res.Budgets = append(res.Budgets, toBudgetResponse(b))
	}

	return c.JSON(http.StatusOK, res)
}

// CreateRecord godoc
// @Summary Create a record
// @Description Create a new income or expense record
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecordRequest true "Record creation request"
// @Success 201 {object} RecordResponse
// @Failure 400 {object} ProblemDetails
// @Router /records [post]
func (h *RecordHandler) CreateRecord(c echo.Context) error {
	in, berr := h.bindInput(c)
	if berr != nil {
		return NewValidationError(c, berr.detail, berr.fields)
	}

	record, err := h.recordService.Create(c.Request().Context(), middleware.GetToken(c), in)
	if err != nil {
		return respondServiceError(c, err, "Could not create the record")
	}

	return c.JSON(http.StatusCreated, toRecordResponse(record, nil))
}

// UpdateRecord godoc
// @Summary Update a record
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param request body RecordRequest true "Record update request"
// @Success 200 {object} RecordResponse
// @Failure 400 {object} ProblemDetails
// @Router /records/{id} [put]
func (h *RecordHandler) UpdateRecord(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid record id", nil)
	}

	in, berr := h.bindInput(c)
	if berr != nil {
		return NewValidationError(c, berr.detail, berr.fields)
	}

	record, err := h.recordService.Update(c.Request().Context(), middleware.GetToken(c), id, in)
	if err != nil {
		return respondServiceError(c, err, "Could not update the record")
	}

	return c.JSON(http.StatusOK, toRecordResponse(record, nil))
}

// DeleteRecord godoc
// @Summary Delete a record
// @Tags records
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 204
// @Router /records/{id} [delete]
func (h *RecordHandler) DeleteRecord(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid record id", nil)
	}

	if err := h.recordService.Delete(c.Request().Context(), middleware.GetToken(c), id); err != nil {
		return respondServiceError(c, err, "Could not delete the record")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *RecordHandler) bindInput(c echo.Context) (service.RecordInput, *bindError) {
	var req RecordRequest
	if err := c.Bind(&req); err != nil {
		return service.RecordInput{}, &bindError{detail: "Invalid request body"}
	}

	money := decimal.Zero
	if req.Money != "" {
		parsed, err := decimal.NewFromString(req.Money)
		if err != nil {
			return service.RecordInput{}, &bindError{
				detail: "Validation failed",
				fields: []ValidationError{{Field: "money", Message: "Money must be a valid decimal"}},
			}
		}
		money = parsed
	}

	return service.RecordInput{
		Type:    domain.RecordType(req.Type),
		Name:    req.Name,
		Money:   money,
		Date:    req.Date,
		Comment: req.Comment,
		Owner:   middleware.GetUsername(c),
		Details: req.Details,
		Budgets: req.Budgets,
	}, nil
}

func toRecordResponse(r *domain.Record, budgetIndex map[int64]*domain.Budget) RecordResponse {
	res := RecordResponse{
		ID:           r.ID,
		Type:         string(r.Type),
		Name:         r.Name,
		Money:        r.Money.String(),
		MoneyDisplay: format.Number(r.Money),
		Date:         r.Date,
		DateDisplay:  format.Date(r.Date),
		Comment:      r.Comment,
		Owner:        r.Owner,
		Details:      r.Details,
		Budgets:      r.Budgets,
	}
	for _, id := range r.Budgets {
		if b, ok := budgetIndex[id]; ok {
			res.BudgetNames = append(res.BudgetNames, b.Name)
		}
	}
	return res
}
