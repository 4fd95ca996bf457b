// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform body of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success builds a successful envelope.
func Success(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Failure builds a failed envelope.
func Failure(message string, data any) Envelope {
	return Envelope{Success: false, Message: message, Data: data}
}

// RespondSuccess writes a successful envelope with the given status code.
func RespondSuccess(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, Success(message, data))
}

// HandleErrorGin records err on the gin context and aborts the handler chain.
// The error renderer middleware turns the recorded error into the failure response.
func HandleErrorGin(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
