package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"disciplined/internal/delivery/http/response"
	domainerrors "disciplined/internal/domain/errors"
	"disciplined/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware converts errors returned by handlers into the shared
// response envelope.
type ErrorMiddleware struct {
	logger *slog.Logger
}

func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

// HandleHTTPError is registered as echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = response.Error(c, httpErr.Code, http.StatusText(httpErr.Code), fmt.Sprintf("%v", httpErr.Message), "")

		return
	}

	m.logger.Error("unhandled error",
		slog.String("method", c.Request().Method),
		slog.String("uri", c.Request().RequestURI),
		slog.Any("error", err),
	)
	_ = response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", "")
}
