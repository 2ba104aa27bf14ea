// Package handlers provides gin HTTP handlers over the app facade.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockroom/internal/core/result"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates a JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"isSuccess":    false,
			"errorMessage": "invalid request body: " + err.Error(),
			"errorCode":    http.StatusBadRequest,
		})
		return false
	}
	return true
}

// ParamInt64 parses an int64 path parameter. Returns false (and a 400
// response) when it is not a number.
func (h *BaseHandler) ParamInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"isSuccess":    false,
			"errorMessage": "invalid " + name,
			"errorCode":    http.StatusBadRequest,
		})
		return 0, false
	}
	return v, true
}

// ParseIntQuery parses an integer query parameter with default value.
func (h *BaseHandler) ParseIntQuery(c *gin.Context, key string, defaultVal int) int {
	val := c.Query(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// Render writes a Result envelope with the original status mapping:
// success with data is 200 (or the given success status), a no-content
// success is 204, and a failure uses its own error code.
func Render[T any](c *gin.Context, res result.Result[T], successStatus int) {
	switch {
	case res.IsSuccess && res.IsNoContent:
		c.Status(http.StatusNoContent)
	case res.IsSuccess:
		c.JSON(successStatus, res)
	default:
		status := res.ErrorCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		c.JSON(status, res)
	}
}

// RenderOK renders with 200 on success.
func RenderOK[T any](c *gin.Context, res result.Result[T]) {
	Render(c, res, http.StatusOK)
}

// RenderCreated renders with 201 on success.
func RenderCreated[T any](c *gin.Context, res result.Result[T]) {
	Render(c, res, http.StatusCreated)
}
