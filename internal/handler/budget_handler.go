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

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents the create/update budget request body
type BudgetRequest struct {
	Name          string  `json:"name"`
	Comment       string  `json:"comment,omitempty"`
	StartDate     *string `json:"startDate"`
	EndDate       *string `json:"endDate"`
	ExpensesLimit string  `json:"expensesLimit"`
	Favorite      bool    `json:"favorite"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Comment              string  `json:"comment,omitempty"`
	StartDate            *string `json:"startDate"`
	StartDateDisplay     string  `json:"startDateDisplay,omitempty"`
	EndDate              *string `json:"endDate"`
	EndDateDisplay       string  `json:"endDateDisplay,omitempty"`
	ExpensesLimit        string  `json:"expensesLimit"`
	ExpensesLimitDisplay string  `json:"expensesLimitDisplay"`
	Favorite             bool    `json:"favorite"`
	GroupID              int64   `json:"groupId,omitempty"`
	Records              []int64 `json:"records,omitempty"`
}

// BudgetDetailResponse is the single-budget view payload with derived totals
type BudgetDetailResponse struct {
	Budget               BudgetResponse   `json:"budget"`
	Records              []RecordResponse `json:"records"`
	TotalExpenses        string           `json:"totalExpenses"`
	TotalExpensesDisplay string           `json:"totalExpensesDisplay"`
	TotalIncomes         string           `json:"totalIncomes"`
	TotalIncomesDisplay  string           `json:"totalIncomesDisplay"`
	Net                  string           `json:"net"`
	NetDisplay           string           `json:"netDisplay"`
	Usernames            []string         `json:"usernames"`
	Errors               ViewErrors       `json:"errors"`
}

// ListBudgets godoc
// @Summary List budgets
// @Description List the user's budgets with optional filters
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name contains"
// @Param limitMin query string false "Expenses limit lower bound"
// @Param limitMax query string false "Expenses limit upper bound"
// @Param favorite query bool false "Favorite flag"
// @Success 200 {array} BudgetResponse
// @Router /budgets [get]
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	form := filter.BudgetForm{
		Name:             c.QueryParam("name"),
		ExpensesLimitMin: c.QueryParam("limitMin"),
		ExpensesLimitMax: c.QueryParam("limitMax"),
		StartDateAfter:   c.QueryParam("startAfter"),
		StartDateBefore:  c.QueryParam("startBefore"),
		EndDateAfter:     c.QueryParam("endAfter"),
		EndDateBefore:    c.QueryParam("endBefore"),
	}
	// Tri-state: the parameter is forwarded only when it parses as a bool.
	if raw := c.QueryParam("favorite"); raw != "" {
		if fav, err := strconv.ParseBool(raw); err == nil {
			form.Favorite = &fav
		}
	}

	budgets, err := h.budgetService.List(c.Request().Context(), middleware.GetToken(c), form)
	if err != nil {
		return respondServiceError(c, err, "Could not retrieve the user's budgets")
	}

	res := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		res = append(res, toBudgetResponse(b))
	}
	return c.JSON(http.StatusOK, res)
}

// GetBudget godoc
// @Summary Get a budget
// @Description Get one budget with its records, derived totals and group members
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Success 200 {object} BudgetDetailResponse
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid budget id", nil)
	}

	view, err := h.budgetService.DetailView(c.Request().Context(), middleware.GetToken(c), id)
	if err != nil {
		return respondServiceError(c, err, "Could not retrieve the budget")
	}

	res := BudgetDetailResponse{
		Budget:               toBudgetResponse(view.Budget),
		Records:              make([]RecordResponse, 0, len(view.Records)),
		TotalExpenses:        view.TotalExpenses.String(),
		TotalExpensesDisplay: format.Number(view.TotalExpenses),
		TotalIncomes:         view.TotalIncomes.String(),
		TotalIncomesDisplay:  format.Number(view.TotalIncomes),
		Net:                  view.Net.String(),
		NetDisplay:           format.Number(view.Net),
		Usernames:            view.Usernames,
		Errors:               ViewErrors{Records: view.RecordsError},
	}
	for _, r := range view.Records {
		res.Records = append(res.Records, toRecordResponse(r, nil))
	}

	return c.JSON(http.StatusOK, res)
}

// CreateBudget godoc
// @Summary Create a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BudgetRequest true "Budget creation request"
// @Success 201 {object} BudgetResponse
// @Failure 400 {object} ProblemDetails
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	in, berr := h.bindInput(c)
	if berr != nil {
		return NewValidationError(c, berr.detail, berr.fields)
	}

	budget, err := h.budgetService.Create(c.Request().Context(), middleware.GetToken(c), in)
	if err != nil {
		return respondServiceError(c, err, "Could not create the budget")
	}

	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// UpdateBudget godoc
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Param request body BudgetRequest true "Budget update request"
// @Success 200 {object} BudgetResponse
// @Failure 400 {object} ProblemDetails
// @Router /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid budget id", nil)
	}

	in, berr := h.bindInput(c)
	if berr != nil {
		return NewValidationError(c, berr.detail, berr.fields)
	}

	budget, err := h.budgetService.Update(c.Request().Context(), middleware.GetToken(c), id, in)
	if err != nil {
		return respondServiceError(c, err, "Could not update the budget")
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget godoc
// @Summary Delete a budget
// @Tags budgets
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Success 204
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid budget id", nil)
	}

	if err := h.budgetService.Delete(c.Request().Context(), middleware.GetToken(c), id); err != nil {
		return respondServiceError(c, err, "Could not delete the budget")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *BudgetHandler) bindInput(c echo.Context) (service.BudgetInput, *bindError) {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return service.BudgetInput{}, &bindError{detail: "Invalid request body"}
	}

	limit := decimal.Zero
	if req.ExpensesLimit != "" {
		parsed, err := decimal.NewFromString(req.ExpensesLimit)
		if err != nil {
			return service.BudgetInput{}, &bindError{
				detail: "Validation failed",
				fields: []ValidationError{{Field: "expensesLimit", Message: "Expenses limit must be a valid decimal"}},
			}
		}
		limit = parsed
	}

	return service.BudgetInput{
		Name:          req.Name,
		Comment:       req.Comment,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		ExpensesLimit: limit,
		Favorite:      req.Favorite,
	}, nil
}

func toBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:                   b.ID,
		Name:                 b.Name,
		Comment:              b.Comment,
		StartDate:            b.StartDate,
		StartDateDisplay:     format.DatePtr(b.StartDate),
		EndDate:              b.EndDate,
		EndDateDisplay:       format.DatePtr(b.EndDate),
		ExpensesLimit:        b.ExpensesLimit.String(),
		ExpensesLimitDisplay: format.Number(b.ExpensesLimit),
		Favorite:             b.Favorite,
		GroupID:              b.GroupID,
		Records:              b.Records,
	}
}
