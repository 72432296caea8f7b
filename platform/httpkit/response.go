// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"

	"orpaynter_backend/platform/apperr"
	"orpaynter_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

const (
	// ContextLoggerKey is the gin context key for the request-scoped logger.
	ContextLoggerKey = "logger"

	msgInternalError = "internal server error"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, status int, message string, details any) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// OK sends a 200 OK response with the given payload.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Created sends a 201 Created response with the given payload.
func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// HandleError maps domain errors to HTTP responses.
// A typed *apperr.Error anywhere in the chain decides the status code.
// Anything else is logged and answered with a generic 500 so internal
// details never leak to clients.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if domainErr, ok := apperr.As(err); ok {
		status := domainErr.HTTPStatus()
		if status >= http.StatusInternalServerError {
			logError(c, status, err)
			c.JSON(status, ErrorResponse{Error: msgInternalError})
			return true
		}
		c.JSON(status, ErrorResponse{
			Error:   domainErr.Message,
			Details: domainErr.Details,
		})
		return true
	}

	logError(c, http.StatusInternalServerError, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternalError})
	return true
}

// SetLogger attaches log to the request so HandleError can report failures.
func SetLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextLoggerKey, log)
		c.Next()
	}
}

func logError(c *gin.Context, status int, err error) {
	value, ok := c.Get(ContextLoggerKey)
	if !ok {
		return
	}
	log, ok := value.(*logger.Logger)
	if !ok || log == nil {
		return
	}
	log.WithContext(c.Request.Context()).HTTPError(c.Request.Method, c.Request.URL.Path, status, err, c.ClientIP())
}
