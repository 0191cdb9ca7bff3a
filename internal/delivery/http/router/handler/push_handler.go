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

// PushHandler holds dependencies for push subscription handlers.
type PushHandler struct {
	uc     usecase.PushUsecase
	logger *slog.Logger
}

// NewPushHandler is the constructor for PushHandler, injected by Fx.
func NewPushHandler(uc usecase.PushUsecase, logger *slog.Logger) *PushHandler {
	return &PushHandler{uc: uc, logger: logger}
}

// VAPIDKey returns the public key clients pass to pushManager.subscribe.
func (h *PushHandler) VAPIDKey(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"public_key": h.uc.VAPIDPublicKey(),
	}, "")
}

// Subscribe stores the browser push subscription, replacing any previous one.
func (h *PushHandler) Subscribe(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidCredentials
	}

	var input usecase.SubscriptionInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid subscription input")
	}

	sub, err := h.uc.Subscribe(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, sub, "Subscription stored")
}

// Unsubscribe removes the user's stored push subscription.
func (h *PushHandler) Unsubscribe(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidCredentials
	}

	if err := h.uc.Unsubscribe(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Subscription removed")
}

// SendTest delivers a test notification to the user's subscription.
func (h *PushHandler) SendTest(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidCredentials
	}

	if err := h.uc.SendTest(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Test notification sent")
}
