// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"disciplined/internal/delivery/http/middleware"
	"disciplined/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AppHandler      *handler.AppHandler
	UserHandler     *handler.UserHandler
	SettingsHandler *handler.SettingsHandler
	DayHandler      *handler.DayHandler
	PushHandler     *handler.PushHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	appHandler      *handler.AppHandler
	userHandler     *handler.UserHandler
	settingsHandler *handler.SettingsHandler
	dayHandler      *handler.DayHandler
	pushHandler     *handler.PushHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		appHandler:      params.AppHandler,
		userHandler:     params.UserHandler,
		settingsHandler: params.SettingsHandler,
		dayHandler:      params.DayHandler,
		pushHandler:     params.PushHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.appHandler.Health)
	e.GET("/app/install-qr", r.appHandler.InstallQR)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.Refresh)
	}

	// Everything under /api requires a valid access token.
	apiGroup := e.Group("/api")
	apiGroup.Use(r.authMiddleware.Authenticate)
	{
		apiGroup.GET("/me", r.userHandler.Me)

		apiGroup.GET("/settings/notifications", r.settingsHandler.GetNotificationSettings)
		apiGroup.PUT("/settings/notifications", r.settingsHandler.UpdateNotificationSettings)
		apiGroup.GET("/settings/fasting", r.settingsHandler.GetFastingSchedule)
		apiGroup.PUT("/settings/fasting", r.settingsHandler.UpdateFastingSchedule)

		apiGroup.GET("/days", r.dayHandler.ListDays)
		apiGroup.GET("/days/:date", r.dayHandler.GetDay)
		apiGroup.PUT("/days/:date/pillars/:pillar", r.dayHandler.SetPillar)
		apiGroup.POST("/days/:date/pillars/:pillar/recompute", r.dayHandler.RecomputePillar)
		apiGroup.POST("/days/:date/pillars/:pillar/entries", r.dayHandler.LogEntry)
		apiGroup.GET("/streak", r.dayHandler.GetStreak)

		apiGroup.GET("/push/key", r.pushHandler.VAPIDKey)
		apiGroup.POST("/push/subscription", r.pushHandler.Subscribe)
		apiGroup.DELETE("/push/subscription", r.pushHandler.Unsubscribe)
		apiGroup.POST("/push/test", r.pushHandler.SendTest)
	}
}
