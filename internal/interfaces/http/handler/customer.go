package handler

import (
	directoryapp "github.com/borrowtrack/backend/internal/application/directory"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *directoryapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *directoryapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List godoc
// @Summary      List customers
// @Description  Search matches first name, last name or email, case-insensitive
// @Tags         customers
// @Produce      json
// @Param        search query string false "Search term"
// @Success      200 {array} directoryapp.CustomerResponse
// @Router       /customers/ [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var filter directoryapp.CustomerListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	customers, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// Create godoc
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body directoryapp.CreateCustomerRequest true "Customer"
// @Success      201 {object} directoryapp.CustomerResponse
// @Failure      400 {object} dto.FieldErrors
// @Router       /customers/ [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req directoryapp.CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// GetByID godoc
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} directoryapp.CustomerResponse
// @Failure      404 {object} dto.DetailBody
// @Router       /customers/{id}/ [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Replace godoc
// @Summary      Replace a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path int true "Customer ID"
// @Param        request body directoryapp.CreateCustomerRequest true "Customer"
// @Success      200 {object} directoryapp.CustomerResponse
// @Router       /customers/{id}/ [put]
func (h *CustomerHandler) Replace(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req directoryapp.CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Update godoc
// @Summary      Partially update a customer
// @Description  A null phone_number clears it
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path int true "Customer ID"
// @Param        request body directoryapp.UpdateCustomerRequest true "Fields to change"
// @Success      200 {object} directoryapp.CustomerResponse
// @Router       /customers/{id}/ [patch]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req directoryapp.UpdateCustomerRequest
	nulls, ok := h.bindPatch(c, &req)
	if !ok {
		return
	}
	emptyIfNull(nulls, "phone_number", &req.PhoneNumber)

	customer, err := h.customerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Delete godoc
// @Summary      Delete a customer
// @Description  Deletes the customer's transactions as well
// @Tags         customers
// @Param        id path int true "Customer ID"
// @Success      204
// @Router       /customers/{id}/ [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
