package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as the structured JSON envelope the API
// promises: a success flag, a machine-checkable code and a human message.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, map[string]any{
		"success": false,
		"error":   errorCode(code),
		"message": msg,
	})
}

func errorCode(status int) string {
	text := strings.ToLower(http.StatusText(status))
	return strings.ReplaceAll(text, " ", "_")
}
