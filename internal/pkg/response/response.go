// internal/pkg/response/response.go
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageBody is the `{message}` payload used across the API for status and
// error responses.
type MessageBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Message sends a `{message}` response with the given status.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, MessageBody{Message: message})
}

// Error sends a `{message}` error response and aborts the handler chain.
func Error(c *gin.Context, status int, message string) {
	c.Abort()
	c.JSON(status, MessageBody{Message: message})
}

// Rejected sends a 400 with a stable machine-readable reason code alongside
// the human message.
func Rejected(c *gin.Context, code, message string) {
	c.Abort()
	c.JSON(http.StatusBadRequest, MessageBody{Message: message, Code: code})
}

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}
