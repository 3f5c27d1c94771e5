package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cartera-app/cartera-gateway/internal/domain"
	"github.com/cartera-app/cartera-gateway/internal/format"
	"github.com/cartera-app/cartera-gateway/internal/middleware"
	"github.com/cartera-app/cartera-gateway/internal/service"
)

// RequestHandler handles budget-sharing request HTTP requests
type RequestHandler struct {
	requestService *service.RequestService
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(requestService *service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// CreateRequestRequest represents the share-request creation body
type CreateRequestRequest struct {
	BudgetID      int64  `json:"budgetId"`
	RequestedUser string `json:"requestedUser"`
}

// ResolveRequestRequest represents the accept/reject body
type ResolveRequestRequest struct {
	BudgetName     string `json:"budgetName"`
	RequestingUser string `json:"requestingUser"`
	RequestedUser  string `json:"requestedUser"`
	Accepted       bool   `json:"accepted"`
}

// GroupRequestResponse represents a share request in API responses
type GroupRequestResponse struct {
	ID             int64  `json:"id"`
	BudgetName     string `json:"budgetName"`
	RequestingUser string `json:"requestingUser"`
	RequestedUser  string `json:"requestedUser"`
	Date           string `json:"date,omitempty"`
	DateDisplay    string `json:"dateDisplay,omitempty"`
	Accepted       *bool  `json:"accepted"`
}

// RequestsViewResponse is the requests view payload
type RequestsViewResponse struct {
	Budgets  []BudgetResponse       `json:"budgets"`
	Pending  []GroupRequestResponse `json:"pending"`
	Historic []GroupRequestResponse `json:"historic"`
	Errors   ViewErrors             `json:"errors"`
}

// ListRequests godoc
// @Summary List share requests
// @Description List the user's budgets and share requests, split into pending and historic
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RequestsViewResponse
// @Router /requests [get]
func (h *RequestHandler) ListRequests(c echo.Context) error {
	view := h.requestService.View(c.Request().Context(), middleware.GetToken(c), middleware.GetUsername(c))

	res := RequestsViewResponse{
		Budgets:  make([]BudgetResponse, 0, len(view.Budgets)),
		Pending:  make([]GroupRequestResponse, 0, len(view.Pending)),
		Historic: make([]GroupRequestResponse, 0, len(view.Historic)),
		Errors: ViewErrors{
			Budgets:  view.BudgetsError,
			Requests: view.RequestsError,
		},
	}
	for _, b := range view.Budgets {
		res.Budgets = append(res.Budgets, toBudgetResponse(b))
	}
	for _, req := range view.Pending {
		res.Pending = append(res.Pending, toRequestResponse(req))
	}
	for _, req := range view.Historic {
		res.Historic = append(res.Historic, toRequestResponse(req))
	}

	return c.JSON(http.StatusOK, res)
}

// CreateRequest godoc
// @Summary Send a share request
// @Description Invite another user to share a budget's group
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequestRequest true "Share request"
// @Success 201 {object} GroupRequestResponse
// @Failure 400 {object} ProblemDetails
// @Router /requests [post]
func (h *RequestHandler) CreateRequest(c echo.Context) error {
	var req CreateRequestRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	created, err := h.requestService.Create(c.Request().Context(), middleware.GetToken(c), middleware.GetUsername(c), service.RequestInput{
		BudgetID:      req.BudgetID,
		RequestedUser: req.RequestedUser,
	})
	if err != nil {
		return respondServiceError(c, err, "Could not create the request")
	}

	return c.JSON(http.StatusCreated, toRequestResponse(created))
}

// ResolveRequest godoc
// @Summary Accept or reject a share request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body ResolveRequestRequest true "Resolution"
// @Success 200 {object} GroupRequestResponse
// @Failure 400 {object} ProblemDetails
// @Router /requests/{id} [patch]
func (h *RequestHandler) ResolveRequest(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid request id", nil)
	}

	var req ResolveRequestRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	resolved, err := h.requestService.Resolve(c.Request().Context(), middleware.GetToken(c), &domain.GroupRequest{
		ID:             id,
		BudgetName:     req.BudgetName,
		RequestingUser: req.RequestingUser,
		RequestedUser:  req.RequestedUser,
	}, req.Accepted)
	if err != nil {
		return respondServiceError(c, err, "Could not update the request")
	}

	return c.JSON(http.StatusOK, toRequestResponse(resolved))
}

func toRequestResponse(r *domain.GroupRequest) GroupRequestResponse {
	return GroupRequestResponse{
		ID:             r.ID,
		BudgetName:     r.BudgetName,
		RequestingUser: r.RequestingUser,
		RequestedUser:  r.RequestedUser,
		Date:           r.Date,
		DateDisplay:    format.Date(r.Date),
		Accepted:       r.Accepted,
	}
}
