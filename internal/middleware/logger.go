package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"profhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestLogger writes one line per request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			ev = log.Error()
		case status >= http.StatusBadRequest:
			ev = log.Warn()
		}

		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Str("request_id", requestID(c)).
			Int64("user_id", c.GetInt64("user_id")).
			Msg("request")
	}
}

// ErrorLogger logs errors attached to the context and recovers from panics.
func ErrorLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				requestErrorEvent(log, c, start).
					Str("type", "panic").
					Err(err).
					Bytes("stack", debug.Stack()).
					Msg("request panicked")

				response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal Server Error")
				c.Abort()
				return
			}

			if len(c.Errors) == 0 {
				if c.Writer.Status() >= http.StatusInternalServerError {
					requestErrorEvent(log, c, start).Str("type", "http_error").Msg("request failed")
				}
				return
			}

			for _, ginErr := range c.Errors {
				ev := requestErrorEvent(log, c, start).
					Str("type", fmt.Sprintf("%v", ginErr.Type)).
					Err(ginErr.Err)
				if ginErr.Meta != nil {
					ev = ev.Interface("meta", ginErr.Meta)
				}
				ev.Msg("request error")
			}
		}()

		c.Next()
	}
}

func requestErrorEvent(log zerolog.Logger, c *gin.Context, start time.Time) *zerolog.Event {
	return log.Error().
		Int("status", c.Writer.Status()).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("query", c.Request.URL.RawQuery).
		Str("client_ip", c.ClientIP()).
		Int64("user_id", c.GetInt64("user_id")).
		Str("request_id", requestID(c)).
		Dur("latency", time.Since(start))
}
