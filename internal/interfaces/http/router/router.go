// Package router assembles the gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/infrastructure/logger"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a handler's routes on a router group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config holds router configuration
type Config struct {
	Env            string
	APIVersion     string
	TrustedProxies []string
	CORS           middleware.CORSConfig
}

// New builds the gin engine with the standard middleware chain and
// registers all handlers under the versioned API prefix. System probes
// register at the root.
func New(cfg Config, log *zap.Logger, system RouteRegistrar, registrars ...RouteRegistrar) (*gin.Engine, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(cfg.CORS),
	)

	if system != nil {
		system.RegisterRoutes(&engine.RouterGroup)
	}

	version := cfg.APIVersion
	if version == "" {
		version = "v1"
	}
	api := engine.Group("/api/" + version)
	for _, registrar := range registrars {
		registrar.RegisterRoutes(api)
	}

	return engine, nil
}
