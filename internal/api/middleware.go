package api

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger writes one http_request record per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if c.FullPath() == "" {
			attrs[3] = c.Request.URL.Path
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			s.logger.ErrorContext(c.Request.Context(), "http_request", attrs...)
		case c.Writer.Status() >= http.StatusBadRequest:
			s.logger.WarnContext(c.Request.Context(), "http_request", attrs...)
		default:
			s.logger.InfoContext(c.Request.Context(), "http_request", attrs...)
		}
	}
}

// apiKeyAuth requires a matching X-API-Key header when an API key is
// configured. Without one every request passes.
func (s *Server) apiKeyAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.config.APIKey == "" {
			c.Next()
			return
		}
		got := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.config.APIKey)) != 1 {
			abortWithError(c, http.StatusUnauthorized, "unauthorized: invalid API key")
			return
		}
		c.Next()
	}
}
