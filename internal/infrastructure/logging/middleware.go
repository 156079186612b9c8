package logging

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// quietPaths are health-check endpoints whose completion lines would drown the log
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// RequestMiddleware tags each request with an ID and logs its outcome.
// The per-request logger is stashed in the context for handlers that
// want correlated lines.
func RequestMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		requestID := uuid.New().String()
		c.Set("request_id", requestID)

		requestLogger := logger.With(zap.String("request_id", requestID))
		c.Set("logger", requestLogger)

		c.Next()

		if quietPaths[path] {
			return
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if schoolID, exists := c.Get("school_id"); exists {
			if id, ok := schoolID.(string); ok {
				fields = append(fields, zap.String("school_id", id))
			}
		}

		if c.Writer.Status() >= 500 {
			requestLogger.Error("request failed", fields...)
			return
		}
		requestLogger.Info("request completed", fields...)
	}
}

// GetLogger retrieves the request-scoped logger from the Gin context
func GetLogger(c *gin.Context) *zap.Logger {
	if logger, exists := c.Get("logger"); exists {
		if l, ok := logger.(*zap.Logger); ok {
			return l
		}
	}
	return Logger
}
