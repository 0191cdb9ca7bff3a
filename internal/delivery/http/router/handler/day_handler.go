package handler

import (
	"log/slog"
	"net/http"

	"disciplined/internal/delivery/http/middleware"
	"disciplined/internal/delivery/http/response"
	"disciplined/internal/domain/entity"
	domainerrors "disciplined/internal/domain/errors"
	"disciplined/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DayHandler holds dependencies for daily tracking handlers.
type DayHandler struct {
	uc     usecase.DayUsecase
	logger *slog.Logger
}

// NewDayHandler is the constructor for DayHandler, injected by Fx.
func NewDayHandler(uc usecase.DayUsecase, logger *slog.Logger) *DayHandler {
	return &DayHandler{uc: uc, logger: logger}
}

type setPillarRequest struct {
	Completed bool `json:"completed"`
}

type logEntryRequest struct {
	Note string `json:"note" validate:"max=500"`
}

// GetDay returns the day record for a date key, creating it if needed.
func (h *DayHandler) GetDay(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidCredentials
	}

	view, err := h.uc.GetDay(c.Request().Context(), userID, c.Param("date"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// SetPillar sets a pillar's completed flag by explicit user action.
func (h *DayHandler) SetPillar(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidCredentials
	}

	var input setPillarRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid pillar input")
	}

	completion, err := h.uc.SetPillarManually(
		c.Request().Context(),
		userID,
		c.Param("date"),
		entity.Pillar(c.Param("pillar")),
		input.Completed,
	)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, completion, "Pillar updated")
}

// LogEntry appends a sub-item under a pillar for the given date.
func (h *DayHandler) LogEntry(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidCredentials
	}

	var input logEntryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid entry input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid entry input")
	}

	entry, err := h.uc.LogEntry(
		c.Request().Context(),
		userID,
		c.Param("date"),
		entity.Pillar(c.Param("pillar")),
		input.Note,
	)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, entry, "Entry logged")
}

// RecomputePillar re-derives a pillar's completed flag from its entries.
func (h *DayHandler) RecomputePillar(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidCredentials
	}

	result, err := h.uc.RecomputePillar(
		c.Request().Context(),
		userID,
		c.Param("date"),
		entity.Pillar(c.Param("pillar")),
	)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "")
}

// ListDays returns day records in the [from, to] date range, newest first.
func (h *DayHandler) ListDays(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidCredentials
	}

	from := c.QueryParam("from")
	to := c.QueryParam("to")
	if from == "" || to == "" {
		return response.BindingError(c, "INVALID_INPUT", "Both from and to query parameters are required")
	}

	days, err := h.uc.ListRange(c.Request().Context(), userID, from, to)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, days, "")
}

// GetStreak returns the consecutive all-complete day count ending today.
func (h *DayHandler) GetStreak(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidCredentials
	}

	date := c.QueryParam("date")
	if date == "" {
		return response.BindingError(c, "INVALID_INPUT", "The date query parameter is required")
	}

	streak, err := h.uc.GetStreak(c.Request().Context(), userID, date)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"streak": streak}, "")
}
