package handler

import (
	directoryapp "github.com/borrowtrack/backend/internal/application/directory"
	"github.com/gin-gonic/gin"
)

// ItemHandler handles item endpoints
type ItemHandler struct {
	BaseHandler
	itemService *directoryapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *directoryapp.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// List godoc
// @Summary      List items
// @Tags         items
// @Produce      json
// @Param        search query string false "Matches name or description"
// @Success      200 {array} directoryapp.ItemResponse
// @Router       /items/ [get]
func (h *ItemHandler) List(c *gin.Context) {
	var filter directoryapp.ItemListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, err := h.itemService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Create godoc
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body directoryapp.CreateItemRequest true "Item"
// @Success      201 {object} directoryapp.ItemResponse
// @Router       /items/ [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req directoryapp.CreateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// GetByID godoc
// @Summary      Get an item
// @Tags         items
// @Produce      json
// @Param        id path int true "Item ID"
// @Success      200 {object} directoryapp.ItemResponse
// @Router       /items/{id}/ [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Replace handles PUT /items/{id}/
func (h *ItemHandler) Replace(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req directoryapp.CreateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update handles PATCH /items/{id}/; a null description clears it
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req directoryapp.UpdateItemRequest
	nulls, ok := h.bindPatch(c, &req)
	if !ok {
		return
	}
	emptyIfNull(nulls, "description", &req.Description)

	item, err := h.itemService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete handles DELETE /items/{id}/
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
