package middleware

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ignite-shop/internal/apperr"
)

var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Status}} | Ignite Shop</title></head>
<body><h1>{{.Status}} {{.StatusText}}</h1><p>{{.Message}}</p><p>Request ID: {{.RequestID}}</p></body></html>
`))

// WantsJSON reports whether the error response should be JSON rather than an
// HTML page.
func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	path := c.Request.URL.Path
	return strings.HasPrefix(path, "/api/") ||
		strings.HasPrefix(path, "/_data/") ||
		path == "/checkout"
}

func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.Status(err)
		publicMsg := apperr.Message(err)
		rid := GetRequestID(c)

		level := slog.LevelWarn
		if status >= 500 {
			level = slog.LevelError
		}
		l.LogAttrs(c.Request.Context(), level, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		if WantsJSON(c) {
			c.AbortWithStatusJSON(status, gin.H{
				"error":      publicMsg,
				"request_id": rid,
			})
			return
		}

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(status)
		_ = errorPage.Execute(c.Writer, map[string]any{
			"Status":     status,
			"StatusText": http.StatusText(status),
			"Message":    publicMsg,
			"RequestID":  rid,
		})
		c.Abort()
	}
}
