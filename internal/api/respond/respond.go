// Package respond writes the JSON envelopes shared by every handler.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "pridenomad-hub/internal/pkg/errors"
)

type errorBody struct {
	Success bool        `json:"success"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error aborts the request with err rendered as an AppError. The cause is
// attached to the gin context so the request logger can record it.
func Error(c *gin.Context, err error) {
	appErr := apperr.As(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(appErr.StatusCode, errorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// BindError turns a gin binding failure into a validation error.
func BindError(c *gin.Context, err error) {
	Error(c, apperr.ValidationError("invalid request body", err.Error()))
}
