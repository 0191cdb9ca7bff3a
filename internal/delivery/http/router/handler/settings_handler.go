package handler

import (
	"log/slog"
	"net/http"

	"disciplined/internal/delivery/http/middleware"
	"disciplined/internal/delivery/http/response"
	domainerrors "disciplined/internal/domain/errors"
	"disciplined/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SettingsHandler holds dependencies for notification settings handlers.
type SettingsHandler struct {
	uc     usecase.SettingsUsecase
	logger *slog.Logger
}

// NewSettingsHandler is the constructor for SettingsHandler, injected by Fx.
func NewSettingsHandler(uc usecase.SettingsUsecase, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{uc: uc, logger: logger}
}

// GetNotificationSettings returns the user's notification settings.
func (h *SettingsHandler) GetNotificationSettings(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidCredentials
	}

	settings, err := h.uc.GetSettings(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "")
}

// UpdateNotificationSettings applies a partial settings update.
func (h *SettingsHandler) UpdateNotificationSettings(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidCredentials
	}

	var input usecase.SettingsUpdate
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid settings input")
	}

	settings, err := h.uc.UpdateSettings(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Settings updated")
}

// GetFastingSchedule returns the user's eating window.
func (h *SettingsHandler) GetFastingSchedule(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidCredentials
	}

	schedule, err := h.uc.GetFastingSchedule(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, schedule, "")
}

// UpdateFastingSchedule replaces the user's eating window.
func (h *SettingsHandler) UpdateFastingSchedule(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidCredentials
	}

	var input usecase.FastingUpdate
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid fasting schedule input")
	}

	schedule, err := h.uc.UpdateFastingSchedule(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, schedule, "Fasting schedule updated")
}
