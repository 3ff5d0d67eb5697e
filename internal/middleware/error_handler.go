package middleware

import (
	"log/slog"
	"net/http"

	"github.com/khairunnisaa/palmcode-api/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error that escapes a handler as the standard
// failure envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var body any = dto.ErrorResponse{Success: false, Message: err.Error()}

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			body = dto.ErrorResponse{Success: false, Message: m}
		case dto.ErrorResponse, dto.LoginErrorResponse:
			body = m
		default:
			body = dto.ErrorResponse{Success: false, Message: http.StatusText(code)}
		}
	}

	if code >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"status", code,
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, body)
}
