package handlers

import (
	"fmt"

	"github.com/g2ix/basic-registration/cmd/docs"
	"github.com/g2ix/basic-registration/internal/core/domain"
	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/g2ix/basic-registration/internal/middleware"
	"github.com/g2ix/basic-registration/internal/platform/config"
	"github.com/g2ix/basic-registration/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	if err := RegisterValidators(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	if err := setupPublicRoutes(r, cfg, services); err != nil {
		return err
	}

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, posthogClient)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupPublicRoutes configures the unauthenticated, rate limited /public group
func setupPublicRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	limiter, err := middleware.NewMemoryLimiter(cfg.PublicRateLimit)
	if err != nil {
		return fmt.Errorf("public rate limit: %w", err)
	}

	public := r.Group("/public", middleware.RateLimit(limiter))
	registerPublicSettingsRoutes(public, services.Settings)
	registerPublicStatisticsRoutes(public, services.Statistics, cfg.StatsStreamInterval)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerJourneyRoutes(v1, services.Journey, services.Statistics, posthogClient)
	registerMemberRoutes(v1, services.Member)
	registerStatisticsRoutes(v1, services.Statistics)

	admin := v1.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	registerAdminJourneyRoutes(admin, services.Journey)
	registerAdminMemberRoutes(admin, services.Member)
	registerAdminSettingsRoutes(admin, services.Settings)
	registerAuditLogRoutes(admin, services.AuditLog)
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
