package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"digimart/internal/auth"
	"digimart/internal/errors"
	"digimart/internal/service"
)

// PaymentHandler handles payment lifecycle endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// SubmitPaymentRequest represents a UPI payment reference submission. The
// reference id is required but otherwise unvalidated; the client enforces its
// own minimum length and the admin review is the real check.
type SubmitPaymentRequest struct {
	ReferenceID string   `json:"referenceId" validate:"required"`
	Amount      string   `json:"amount" validate:"required"`
	ProductIDs  []string `json:"productIds" validate:"required,min=1"`
}

// SubmitPaymentResponse represents a payment submission response.
type SubmitPaymentResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
}

// Submit godoc
// @Summary Submit a UPI payment reference for the cart
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitPaymentRequest true "Payment data"
// @Success 200 {object} SubmitPaymentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /payments/submit [post]
func (h *PaymentHandler) Submit(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req SubmitPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid amount",
			Code:  "INVALID_AMOUNT",
		})
	}

	productIDs := make([]uuid.UUID, len(req.ProductIDs))
	for i, raw := range req.ProductIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid product id",
				Code:  "INVALID_UUID",
			})
		}
		productIDs[i] = id
	}

	payment, err := h.paymentService.Submit(c.Request().Context(), user.ID, req.ReferenceID, amount, productIDs)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, SubmitPaymentResponse{
		Success:   true,
		Message:   "payment submitted, awaiting admin approval",
		PaymentID: payment.ID.String(),
		Status:    string(payment.Status),
	})
}

// ListPending godoc
// @Summary List pending payments for admin review
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ReviewEntry
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/payments/pending [get]
func (h *PaymentHandler) ListPending(c echo.Context) error {
	entries, err := h.paymentService.ListPending(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, entries)
}

// ListApproved godoc
// @Summary List approved payments
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ReviewEntry
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/payments/approved [get]
func (h *PaymentHandler) ListApproved(c echo.Context) error {
	entries, err := h.paymentService.ListApproved(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, entries)
}

// Approve godoc
// @Summary Approve a pending payment
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/payments/{id}/approve [put]
func (h *PaymentHandler) Approve(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}

	payment, err := h.paymentService.Approve(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "payment approved, downloads unlocked",
		"status":  payment.Status,
	})
}

// Reject godoc
// @Summary Reject a payment, deleting the record
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/payments/{id}/reject [put]
func (h *PaymentHandler) Reject(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}

	if err := h.paymentService.Reject(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "payment rejected and removed",
	})
}
