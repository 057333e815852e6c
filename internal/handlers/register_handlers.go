package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/clonewander/cmd/clonewander/docs"
	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
	"github.com/SscSPs/clonewander/internal/middleware"
	"github.com/SscSPs/clonewander/internal/platform/config"
	"github.com/SscSPs/clonewander/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthog *utils.PosthogClientWrapper,
) error {
	if err := registerValidators(services.Catalog); err != nil {
		return err
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if err := setupAPIV1Routes(r, cfg, services, posthog); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	posthog *utils.PosthogClientWrapper,
) error {
	// Auth applies only when a JWT secret is configured
	v1 := r.Group("/api/v1", middleware.OptionalAuth(cfg.JWTSecret))

	writeLimiter, err := middleware.NewIPLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("configure write rate limit: %w", err)
	}

	registerCloneRoutes(v1, service.Clone, middleware.RateLimit(writeLimiter), posthog)
	registerJournalRoutes(v1, service.Journal)
	registerCatalogRoutes(v1, service.Catalog)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
