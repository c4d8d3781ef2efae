// Package handler implements the REST endpoints of the borrowing directory.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/borrowtrack/backend/internal/infrastructure/logger"
	"github.com/borrowtrack/backend/internal/interfaces/http/dto"
	"github.com/borrowtrack/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response with data as the bare body
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// NotFound sends the standard 404 body
func (h *BaseHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewDetail(dto.DetailNotFound))
}

// HandleError converts domain errors to HTTP responses.
// Unexpected errors are logged and reported as 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	status, body := dto.ErrorResponse(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		_ = c.Error(err)
	}
	c.JSON(status, body)
}

// bindJSON binds the body into req and writes the error response on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(middleware.BindingErrorResponse(err))
		return false
	}
	return true
}

// bindPatch binds the body into req and also returns the keys the body set to null
func (h *BaseHandler) bindPatch(c *gin.Context, req any) (map[string]bool, bool) {
	if err := c.ShouldBindBodyWithJSON(req); err != nil {
		c.JSON(middleware.BindingErrorResponse(err))
		return nil, false
	}

	nulls := map[string]bool{}
	raw, ok := c.Get(gin.BodyBytesKey)
	if !ok {
		return nulls, true
	}
	body, ok := raw.([]byte)
	if !ok {
		return nulls, true
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nulls, true
	}
	for key, value := range fields {
		if string(value) == "null" {
			nulls[key] = true
		}
	}
	return nulls, true
}

// bindQuery binds query parameters into filter and writes the error response on failure
func (h *BaseHandler) bindQuery(c *gin.Context, filter any) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(middleware.QueryErrorResponse(err))
		return false
	}
	return true
}

// parseID reads the :id path parameter. Anything but a positive integer is a 404.
func (h *BaseHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.NotFound(c)
		return 0, false
	}
	return id, true
}

func emptyIfNull(nulls map[string]bool, key string, field **string) {
	if nulls[key] {
		empty := ""
		*field = &empty
	}
}
