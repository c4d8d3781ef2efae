package handler

import (
	directoryapp "github.com/borrowtrack/backend/internal/application/directory"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles borrowing transaction endpoints
type TransactionHandler struct {
	BaseHandler
	transactionService *directoryapp.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *directoryapp.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List godoc
// @Summary      List transactions
// @Description  Search matches borrower names and item name
// @Tags         transactions
// @Produce      json
// @Param        search   query string false "Search term"
// @Param        status   query string false "borrowed, returned or overdue"
// @Param        borrower query int    false "Borrower ID"
// @Param        item     query int    false "Item ID"
// @Success      200 {array} directoryapp.TransactionResponse
// @Router       /transactions/ [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var filter directoryapp.TransactionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	transactions, err := h.transactionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transactions)
}

// ListOverdue godoc
// @Summary      List overdue transactions
// @Tags         transactions
// @Produce      json
// @Success      200 {array} directoryapp.TransactionResponse
// @Router       /transactions/overdue/ [get]
func (h *TransactionHandler) ListOverdue(c *gin.Context) {
	transactions, err := h.transactionService.ListOverdue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transactions)
}

// ListActive godoc
// @Summary      List borrowed transactions
// @Tags         transactions
// @Produce      json
// @Success      200 {array} directoryapp.TransactionResponse
// @Router       /transactions/active/ [get]
func (h *TransactionHandler) ListActive(c *gin.Context) {
	transactions, err := h.transactionService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transactions)
}

// Create godoc
// @Summary      Record a borrowing
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request body directoryapp.CreateTransactionRequest true "Transaction"
// @Success      201 {object} directoryapp.TransactionResponse
// @Failure      400 {object} dto.FieldErrors
// @Router       /transactions/ [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req directoryapp.CreateTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	transaction, err := h.transactionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, transaction)
}

// GetByID godoc
// @Summary      Get a transaction
// @Tags         transactions
// @Produce      json
// @Param        id path int true "Transaction ID"
// @Success      200 {object} directoryapp.TransactionResponse
// @Router       /transactions/{id}/ [get]
func (h *TransactionHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	transaction, err := h.transactionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transaction)
}

// Replace handles PUT /transactions/{id}/; an absent date_returned reopens the borrowing
func (h *TransactionHandler) Replace(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req directoryapp.CreateTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	transaction, err := h.transactionService.Update(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transaction)
}

// Update handles PATCH /transactions/{id}/; a null date_returned reopens the borrowing
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req directoryapp.UpdateTransactionRequest
	nulls, ok := h.bindPatch(c, &req)
	if !ok {
		return
	}
	req.ClearReturned = nulls["date_returned"]

	transaction, err := h.transactionService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transaction)
}

// Delete handles DELETE /transactions/{id}/
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.transactionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
