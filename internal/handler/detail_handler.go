package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/cartera-app/cartera-gateway/internal/domain"
	"github.com/cartera-app/cartera-gateway/internal/format"
	"github.com/cartera-app/cartera-gateway/internal/middleware"
	"github.com/cartera-app/cartera-gateway/internal/service"
)

// DetailHandler handles detail-related HTTP requests
type DetailHandler struct {
	detailService *service.DetailService
}

// NewDetailHandler creates a new DetailHandler
func NewDetailHandler(detailService *service.DetailService) *DetailHandler {
	return &DetailHandler{detailService: detailService}
}

// DetailRequest represents the create/update detail request body. No total
// is accepted; it is always recomputed server-side.
type DetailRequest struct {
	Name         string `json:"name"`
	PricePerUnit string `json:"pricePerUnit"`
	Units        int64  `json:"units"`
	RecordID     int64  `json:"record"`
}

// DetailResponse represents a detail in API responses
type DetailResponse struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	PricePerUnit        string `json:"pricePerUnit"`
	PricePerUnitDisplay string `json:"pricePerUnitDisplay"`
	Units               int64  `json:"units"`
	UnitsDisplay        string `json:"unitsDisplay"`
	TotalPrice          string `json:"totalPrice"`
	TotalPriceDisplay   string `json:"totalPriceDisplay"`
	RecordID            int64  `json:"record"`
}

// CreateDetail godoc
// @Summary Create a detail
// @Description Create a line-item detail for a record; the total is derived from price and units
// @Tags details
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DetailRequest true "Detail creation request"
// @Success 201 {object} DetailResponse
// @Failure 400 {object} ProblemDetails
// @Router /details [post]
func (h *DetailHandler) CreateDetail(c echo.Context) error {
	in, berr := h.bindInput(c)
	if berr != nil {
		return NewValidationError(c, berr.detail, berr.fields)
	}

	detail, err := h.detailService.Create(c.Request().Context(), middleware.GetToken(c), in)
	if err != nil {
		return respondServiceError(c, err, "Could not create the detail")
	}

	return c.JSON(http.StatusCreated, toDetailResponse(detail))
}

// UpdateDetail godoc
// @Summary Update a detail
// @Tags details
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Detail ID"
// @Param request body DetailRequest true "Detail update request"
// @Success 200 {object} DetailResponse
// @Failure 400 {object} ProblemDetails
// @Router /details/{id} [put]
func (h *DetailHandler) UpdateDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid detail id", nil)
	}

	in, berr := h.bindInput(c)
	if berr != nil {
		return NewValidationError(c, berr.detail, berr.fields)
	}

	detail, err := h.detailService.Update(c.Request().Context(), middleware.GetToken(c), id, in)
	if err != nil {
		return respondServiceError(c, err, "Could not update the detail")
	}

	return c.JSON(http.StatusOK, toDetailResponse(detail))
}

// DeleteDetail godoc
// @Summary Delete a detail
// @Tags details
// @Security BearerAuth
// @Param id path int true "Detail ID"
// @Success 204
// @Router /details/{id} [delete]
func (h *DetailHandler) DeleteDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid detail id", nil)
	}

	if err := h.detailService.Delete(c.Request().Context(), middleware.GetToken(c), id); err != nil {
		return respondServiceError(c, err, "Could not delete the detail")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *DetailHandler) bindInput(c echo.Context) (service.DetailInput, *bindError) {
	var req DetailRequest
	if err := c.Bind(&req); err != nil {
		return service.DetailInput{}, &bindError{detail: "Invalid request body"}
	}

	price := decimal.Zero
	if req.PricePerUnit != "" {
		parsed, err := decimal.NewFromString(req.PricePerUnit)
		if err != nil {
			return service.DetailInput{}, &bindError{
				detail: "Validation failed",
				fields: []ValidationError{{Field: "pricePerUnit", Message: "Price per unit must be a valid decimal"}},
			}
		}
		price = parsed
	}

	return service.DetailInput{
		Name:         req.Name,
		PricePerUnit: price,
		Units:        req.Units,
		RecordID:     req.RecordID,
	}, nil
}

func toDetailResponse(d *domain.Detail) DetailResponse {
	return DetailResponse{
		ID:                  d.ID,
		Name:                d.Name,
		PricePerUnit:        d.PricePerUnit.String(),
		PricePerUnitDisplay: format.Number(d.PricePerUnit),
		Units:               d.Units,
		UnitsDisplay:        format.Integer(d.Units),
		TotalPrice:          d.TotalPrice.String(),
		TotalPriceDisplay:   format.Number(d.TotalPrice),
		RecordID:            d.RecordID,
	}
}
