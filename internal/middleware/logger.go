package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"farmassist/internal/metrics"
)

// RequestLogger logs every request, records metrics and recovers panics
// into a JSON 500 instead of a dropped connection.
func RequestLogger(log *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				log.Error().
					Str("type", "panic").
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Str("request_id", c.GetString(requestIDKey)).
					Err(err).
					Bytes("stack", debug.Stack()).
					Msg("request panicked")

				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "Internal Server Error",
					},
				})
				c.Abort()
				metrics.IncHTTP(c.Request.Method, c.FullPath(), "500")
				return
			}

			status := c.Writer.Status()
			evt := log.Info()
			if status >= http.StatusInternalServerError {
				evt = log.Error()
			}
			evt.
				Int("status", status).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("client_ip", c.ClientIP()).
				Int64("user_id", c.GetInt64("user_id")).
				Str("request_id", c.GetString(requestIDKey)).
				Dur("latency", time.Since(start)).
				Msg("request")

			metrics.IncHTTP(c.Request.Method, c.FullPath(), strconv.Itoa(status))
		}()

		c.Next()
	}
}
