package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	TraceHeader = "X-Trace-ID"
	traceKey    = "trace_id"
)

// Trace reuses an inbound X-Trace-ID or mints one, and echoes it back.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Set(traceKey, traceID)
		c.Writer.Header().Set(TraceHeader, traceID)
		c.Next()
	}
}

func TraceID(c *gin.Context) string {
	return c.GetString(traceKey)
}
