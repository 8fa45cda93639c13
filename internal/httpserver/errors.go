package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/affiliate_store/internal/service"
)

// fail logs err under event and turns it into the HTTP error the client sees.
// what names the resource in not found messages.
func fail(l *slog.Logger, event, what string, err error) error {
	var fe *service.FieldError
	switch {
	case errors.As(err, &fe):
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrConflict) {
			status = http.StatusConflict
		}
		l.Warn(event, "status", status, "reason", fe.Message, "field", fe.Field)
		return fieldError(status, fe.Field, fe.Message)
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", http.StatusNotFound, "reason", what+" not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, what+" not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		l.Warn(event, "status", http.StatusUnauthorized, "reason", "invalid credentials", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrUnauthorized):
		l.Warn(event, "status", http.StatusUnauthorized, "reason", "admin access required")
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", http.StatusBadRequest, "reason", "invalid input", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid input")
	default:
		l.Error(event, "status", http.StatusInternalServerError, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func fieldError(status int, field, msg string) *echo.HTTPError {
	return echo.NewHTTPError(status, map[string]string{"message": msg, "field": field})
}
