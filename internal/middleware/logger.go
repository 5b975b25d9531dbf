package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one access line per request once the handler chain returns.
// Client errors log at WARN and server errors at ERROR.
func Logger(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		c.Next()

		req := c.Request
		status := c.Writer.Status()
		args := []any{
			"request_id", GetRequestID(c),
			"method", req.Method,
			"path", req.URL.RequestURI(),
			"status", status,
			"took", time.Since(began),
			"size", c.Writer.Size(),
			"ip", c.ClientIP(),
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			args = append(args, "errors", errs.Errors())
		}
		l.Log(req.Context(), accessLevel(status), "access", args...)
	}
}

func accessLevel(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
