package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobprep-backend/internal/shared/telemetry"
)

// Context keys handlers set so the access log can attribute a request.
const (
	UserIDKey     = "userId"
	ResumeIDKey   = "resumeId"
	QuestionIDKey = "questionId"
	AnswerIDKey   = "answerId"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		for key, field := range map[string]string{
			UserIDKey:     "user_id",
			ResumeIDKey:   "resume_id",
			QuestionIDKey: "question_id",
			AnswerIDKey:   "answer_id",
		} {
			if v, ok := c.Get(key); ok {
				fields[field] = v
			}
		}
		telemetry.Info("request.complete", fields)
	}
}
