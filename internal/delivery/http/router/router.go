// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"passport/config"
	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config         *config.Config
	AccountHandler *handler.AccountHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimitMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg            *config.Config
	accountHandler *handler.AccountHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimitMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:            params.Config,
		accountHandler: params.AccountHandler,
		authMiddleware: params.AuthMiddleware,
		rateLimiter:    params.RateLimiter,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	if r.rateLimiter.Enabled(r.cfg) {
		e.Use(r.rateLimiter.Limit)
	}

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public account routes
	e.POST("/register", r.accountHandler.Register)
	e.POST("/login", r.accountHandler.Login)

	// Account routes that require authentication
	authenticated := e.Group("")
	authenticated.Use(r.authMiddleware.Authenticate)
	{
		authenticated.GET("/userInfo", r.accountHandler.GetInfo)
		authenticated.PUT("/updateInfo", r.accountHandler.UpdateInfo)
		authenticated.DELETE("/userDelete", r.accountHandler.Delete)
	}
}
