package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
)

// Envelope is the uniform wrapper on every reply: success plus either a data
// payload, a human-readable message, or an error string.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// JSON sends a success response carrying a data payload.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{Success: true, Data: data})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message sends a success response carrying only a message.
func Message(c *gin.Context, message string) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{Success: false, Error: appErr.Message})
}

// NotFoundRoute handles requests that match no registered endpoint.
func NotFoundRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, Envelope{Success: false, Error: "endpoint not found"})
}
