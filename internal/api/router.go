package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vireakbo/phoneauth/internal/account"
	"github.com/vireakbo/phoneauth/internal/app"
	iauth "github.com/vireakbo/phoneauth/internal/auth"
	"github.com/vireakbo/phoneauth/internal/handlers"
	"github.com/vireakbo/phoneauth/internal/middleware"
)

// NewRouter builds the Gin engine, wires middleware and registers the account routes.
func NewRouter(accounts *account.Service, jwt *iauth.JWTService, cfg *app.Config) (*gin.Engine, error) {
	if accounts == nil {
		return nil, fmt.Errorf("account service must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	// Basic rate limiting: 100 requests/minute per IP+path
	r.Use(middleware.RateLimit(100, time.Minute))

	r.NoRoute(middleware.NotFoundHandler)

	if cfg.Monitoring.Health.Enabled {
		r.GET("/health", handlers.Health())
	}
	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	accountHandler := handlers.NewAccountHandler(accounts, jwt)

	// Public auth routes
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", accountHandler.Register)
		auth.POST("/verify-otp", accountHandler.VerifyOTP)
		auth.POST("/login", accountHandler.Login)
		auth.POST("/forgot-password", accountHandler.ForgotPassword)
		auth.POST("/reset-password", accountHandler.ResetPassword)
	}

	// Authenticated auth routes
	authed := r.Group("/api/auth")
	authed.Use(middleware.Auth(jwt))
	{
		authed.GET("/me", accountHandler.Me)
		authed.POST("/change-password", accountHandler.ChangePassword)
		authed.POST("/logout", accountHandler.Logout)
	}

	return r, nil
}
