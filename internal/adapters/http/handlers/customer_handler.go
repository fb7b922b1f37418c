package handlers

import (
	"errors"
	"strconv"

	"packbill-backoffice/internal/core/services"
	"packbill-backoffice/internal/pkg/pagination"
	"packbill-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	customerService *services.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// ListCustomers handles listing customers with search and pagination
// @Summary List customers
// @Description Get a paginated list of customers visible to the caller
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(10)
// @Param search query string false "Search by name, email or phone"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} pagination.Envelope
// @Failure 401 {object} response.ErrorBody
// @Router /customers/ [get]
func (h *CustomerHandler) ListCustomers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	input := &services.ListCustomersInput{
		Search: c.Query("search"),
		Offset: params.Offset,
		Limit:  params.PageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		isActive := raw == "true" || raw == "1"
		input.IsActive = &isActive
	}

	customers, total, err := h.customerService.ListCustomers(c.Context(), actorFromContext(c), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list customers")
	}

	return response.OK(c, pagination.NewEnvelope(customers, params, total))
}

// GetCustomer handles getting a customer by ID
// @Summary Get customer by ID
// @Description Get a specific customer by ID
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} models.CustomerResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /customers/{id}/ [get]
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	customer, err := h.customerService.GetCustomer(c.Context(), actorFromContext(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			return response.NotFound(c, "Customer not found")
		case errors.Is(err, services.ErrPermissionDenied):
			return response.Forbidden(c, "You do not have permission to perform this action.")
		default:
			return response.InternalServerError(c, "Failed to get customer")
		}
	}

	return response.OK(c, customer.ToResponse())
}

// CreateCustomerRequest represents customer creation request body
type CreateCustomerRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	PackageFee float64 `json:"package_fee"`
}

// CreateCustomer handles creating a customer
// @Summary Create customer
// @Description Create a new customer owned by the caller
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateCustomerRequest true "Customer data"
// @Success 201 {object} models.CustomerResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /customers/ [post]
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate
	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.PackageFee < 0 {
		return response.BadRequest(c, "Package fee cannot be negative")
	}

	customer, err := h.customerService.CreateCustomer(c.Context(), actorFromContext(c), &services.CreateCustomerInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		PackageFee: req.PackageFee,
	})
	if err != nil {
		if errors.Is(err, services.ErrCustomerEmailTaken) {
			return response.Conflict(c, "A customer with that email already exists")
		}
		return response.InternalServerError(c, "Failed to create customer")
	}

	return response.Created(c, customer.ToResponse())
}

// UpdateCustomerRequest represents customer update request body
type UpdateCustomerRequest struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	Address    *string  `json:"address"`
	PackageFee *float64 `json:"package_fee"`
	IsActive   *bool    `json:"is_active"`
}

// UpdateCustomer handles updating a customer
// @Summary Update customer
// @Description Update a customer visible to the caller
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param body body UpdateCustomerRequest true "Update data"
// @Success 200 {object} models.CustomerResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /customers/{id}/ [put]
func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	var req UpdateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.PackageFee != nil && *req.PackageFee < 0 {
		return response.BadRequest(c, "Package fee cannot be negative")
	}

	customer, err := h.customerService.UpdateCustomer(c.Context(), actorFromContext(c), uint(id), &services.UpdateCustomerInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		PackageFee: req.PackageFee,
		IsActive:   req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			return response.NotFound(c, "Customer not found")
		case errors.Is(err, services.ErrPermissionDenied):
			return response.Forbidden(c, "You do not have permission to perform this action.")
		case errors.Is(err, services.ErrCustomerEmailTaken):
			return response.Conflict(c, "A customer with that email already exists")
		default:
			return response.InternalServerError(c, "Failed to update customer")
		}
	}

	return response.OK(c, customer.ToResponse())
}

// DeleteCustomer handles deactivating a customer
// @Summary Deactivate customer
// @Description Deactivate a customer (soft delete); payments keep referencing the row
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 204
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /customers/{id}/ [delete]
func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	err = h.customerService.DeactivateCustomer(c.Context(), actorFromContext(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			return response.NotFound(c, "Customer not found")
		case errors.Is(err, services.ErrPermissionDenied):
			return response.Forbidden(c, "You do not have permission to perform this action.")
		default:
			return response.InternalServerError(c, "Failed to deactivate customer")
		}
	}

	return response.NoContent(c)
}

// ReactivateCustomer handles restoring a deactivated customer
// @Summary Reactivate customer
// @Description Restore a deactivated customer
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} models.CustomerResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /customers/{id}/reactivate/ [post]
func (h *CustomerHandler) ReactivateCustomer(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	customer, err := h.customerService.ReactivateCustomer(c.Context(), actorFromContext(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			return response.NotFound(c, "Customer not found")
		case errors.Is(err, services.ErrPermissionDenied):
			return response.Forbidden(c, "You do not have permission to perform this action.")
		default:
			return response.InternalServerError(c, "Failed to reactivate customer")
		}
	}

	return response.OK(c, customer.ToResponse())
}
