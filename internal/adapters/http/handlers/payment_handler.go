package handlers

import (
	"errors"
	"strconv"
	"time"

	"packbill-backoffice/internal/core/services"
	"packbill-backoffice/internal/pkg/pagination"
	"packbill-backoffice/internal/pkg/response"
	"packbill-backoffice/internal/pkg/timeseries"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// ListPayments handles listing payments with search and pagination
// @Summary List payments
// @Description Get a paginated list of payments visible to the caller
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(10)
// @Param search query string false "Search by customer name, email or description"
// @Param start_date query string false "Filter from date (YYYY-MM-DD)"
// @Param end_date query string false "Filter to date (YYYY-MM-DD)"
// @Success 200 {object} pagination.Envelope
// @Failure 401 {object} response.ErrorBody
// @Router /payments/ [get]
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	input := &services.ListPaymentsInput{
		Search: c.Query("search"),
		Offset: params.Offset,
		Limit:  params.PageSize,
	}

	if raw := c.Query("start_date"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return response.BadRequest(c, "start_date must be YYYY-MM-DD")
		}
		input.StartDate = &start
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return response.BadRequest(c, "end_date must be YYYY-MM-DD")
		}
		// Inclusive end of day
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		input.EndDate = &end
	}

	payments, total, err := h.paymentService.ListPayments(c.Context(), actorFromContext(c), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.OK(c, pagination.NewEnvelope(payments, params, total))
}

// GetPayment handles getting a payment by ID
// @Summary Get payment by ID
// @Description Get a specific payment by ID
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} models.PaymentResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /payments/{id}/ [get]
func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	payment, err := h.paymentService.GetPayment(c.Context(), actorFromContext(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return response.NotFound(c, "Payment not found")
		case errors.Is(err, services.ErrPermissionDenied):
			return response.Forbidden(c, "You do not have permission to perform this action.")
		default:
			return response.InternalServerError(c, "Failed to get payment")
		}
	}

	return response.OK(c, payment.ToResponse())
}

// CreatePaymentRequest represents payment creation request body
type CreatePaymentRequest struct {
	CustomerID  uint    `json:"customer_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        *string `json:"date"`
}

// CreatePayment handles creating a payment
// @Summary Create payment
// @Description Create a payment for a customer visible to the caller
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreatePaymentRequest true "Payment data"
// @Success 201 {object} models.PaymentResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /payments/ [post]
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate
	if req.CustomerID == 0 {
		return response.BadRequest(c, "Customer ID is required")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be greater than zero")
	}

	input := &services.CreatePaymentInput{
		CustomerID:  req.CustomerID,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Date != nil && *req.Date != "" {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return response.BadRequest(c, "date must be YYYY-MM-DD")
		}
		input.Date = &date
	}

	payment, err := h.paymentService.CreatePayment(c.Context(), actorFromContext(c), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			return response.NotFound(c, "Customer not found")
		case errors.Is(err, services.ErrPermissionDenied):
			return response.Forbidden(c, "You do not have permission to perform this action.")
		case errors.Is(err, services.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be greater than zero")
		default:
			return response.InternalServerError(c, "Failed to create payment")
		}
	}

	return response.Created(c, payment.ToResponse())
}

// UpdatePaymentRequest represents payment update request body
type UpdatePaymentRequest struct {
	CustomerID  *uint    `json:"customer_id"`
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

// UpdatePayment handles updating a payment
// @Summary Update payment
// @Description Update a payment visible to the caller
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param body body UpdatePaymentRequest true "Update data"
// @Success 200 {object} models.PaymentResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /payments/{id}/ [put]
func (h *PaymentHandler) UpdatePayment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	var req UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdatePaymentInput{
		CustomerID:  req.CustomerID,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Date != nil && *req.Date != "" {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return response.BadRequest(c, "date must be YYYY-MM-DD")
		}
		input.Date = &date
	}

	payment, err := h.paymentService.UpdatePayment(c.Context(), actorFromContext(c), uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return response.NotFound(c, "Payment not found")
		case errors.Is(err, services.ErrCustomerNotFound):
			return response.NotFound(c, "Customer not found")
		case errors.Is(err, services.ErrPermissionDenied):
			return response.Forbidden(c, "You do not have permission to perform this action.")
		case errors.Is(err, services.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be greater than zero")
		default:
			return response.InternalServerError(c, "Failed to update payment")
		}
	}

	return response.OK(c, payment.ToResponse())
}

// DeletePayment handles hard-deleting a payment
// @Summary Delete payment
// @Description Permanently delete a payment
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 204
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /payments/{id}/ [delete]
func (h *PaymentHandler) DeletePayment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	err = h.paymentService.DeletePayment(c.Context(), actorFromContext(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return response.NotFound(c, "Payment not found")
		case errors.Is(err, services.ErrPermissionDenied):
			return response.Forbidden(c, "You do not have permission to perform this action.")
		default:
			return response.InternalServerError(c, "Failed to delete payment")
		}
	}

	return response.NoContent(c)
}

// Stats handles the payment statistics chart series
// @Summary Payment statistics
// @Description Get aggregated payment totals for charting
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param granularity query string false "daily, weekly, monthly or yearly" default(monthly)
// @Success 200 {object} services.StatsResponse
// @Failure 400 {object} response.ErrorBody
// @Router /payments/stats/ [get]
func (h *PaymentHandler) Stats(c *fiber.Ctx) error {
	granularity := timeseries.Granularity(c.Query("granularity", string(timeseries.Monthly)))

	stats, err := h.paymentService.Stats(c.Context(), actorFromContext(c), granularity, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrInvalidGranularity) {
			return response.BadRequest(c, "Granularity must be daily, weekly, monthly or yearly")
		}
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.OK(c, stats)
}
