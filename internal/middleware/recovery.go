package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"ignite-shop/internal/apperr"
)

// Recovery turns a handler panic into a 500 rendered by ErrorHandler, so it
// must be registered after it. gin's stderr dump is discarded.
func Recovery(l *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, v any) {
		l.Error("handler panicked",
			"request_id", GetRequestID(c),
			"route", c.FullPath(),
			"value", fmt.Sprint(v),
			"stack", string(debug.Stack()),
		)
		Fail(c, apperr.Internal(fmt.Errorf("panic: %v", v)))
	})
}
