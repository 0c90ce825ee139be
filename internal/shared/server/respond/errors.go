package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobprep-backend/internal/shared/telemetry"
)

// RequestIDKey is the gin context key the request ID middleware writes.
const RequestIDKey = "requestId"

// ErrorResponse is the error envelope; "detail" matches what the web client reads.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Error logs the failure and aborts with {"detail": message}.
// Client mistakes log at warn, server failures at error.
func Error(c *gin.Context, status int, message string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.FullPath(),
		"method":     c.Request.Method,
		"request_id": c.GetString(RequestIDKey),
	}
	if userID := c.Param("user_id"); userID != "" {
		fields["user_id"] = userID
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Detail: message})
}
