package handler

import (
	"log/slog"
	"net/http"

	"disciplined/config"
	domainerrors "disciplined/internal/domain/errors"
	"disciplined/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AppHandler serves app-level endpoints that need no authentication.
type AppHandler struct {
	cfg    *config.Config
	qrSvc  service.QRCodeService
	logger *slog.Logger
}

// NewAppHandler is the constructor for AppHandler, injected by Fx.
func NewAppHandler(cfg *config.Config, qrSvc service.QRCodeService, logger *slog.Logger) *AppHandler {
	return &AppHandler{cfg: cfg, qrSvc: qrSvc, logger: logger}
}

// Health reports liveness.
func (h *AppHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// InstallQR renders the PWA's base URL as a PNG QR code so users can open
// the app on a phone by scanning it.
func (h *AppHandler) InstallQR(c echo.Context) error {
	if h.cfg.App == nil || h.cfg.App.BaseURL == "" {
		return domainerrors.ErrNotFound.WrapMessage("install URL is not configured")
	}

	png, err := h.qrSvc.GenerateAppLinkQR(h.cfg.App.BaseURL)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
