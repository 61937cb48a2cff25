package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/temple-trust/temple_finance_app/cmd/docs"
	"github.com/temple-trust/temple_finance_app/internal/core/services"
	"github.com/temple-trust/temple_finance_app/internal/middleware"
	"github.com/temple-trust/temple_finance_app/internal/platform/events"
	"github.com/temple-trust/temple_finance_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	svcs *services.ServicesContainer,
	notifier *events.Notifier,
) {
	// Health check and root status
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, svcs, notifier)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	svcs *services.ServicesContainer,
	notifier *events.Notifier,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerDonationRoutes(v1, svcs.Donation)
	registerExpenseRoutes(v1, svcs.Expense, svcs.Lifecycle)
	registerBudgetRequestRoutes(v1, svcs.BudgetRequest, svcs.Lifecycle)
	registerBudgetRoutes(v1, svcs.Budget)
	registerReconciliationRoutes(v1, svcs.Reconciliation)
	registerReportingRoutes(v1, svcs.Reporting)
	registerTimelineRoutes(v1, svcs.Timeline)
	registerEventsRoutes(v1, notifier)
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
