package router

import (
	"aiformbuilder-be/config"
	"aiformbuilder-be/internal/handlers"
	"aiformbuilder-be/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "aiformbuilder-be/docs"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health      *handlers.HealthHandler
	Forms       *handlers.FormHandler
	Submissions *handlers.SubmissionHandler
	Dashboard   *handlers.DashboardHandler
}

// Setup builds the engine with middleware and all /api routes.
func Setup(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecureHeaders(gin.Mode() != gin.ReleaseMode))
	r.Use(middleware.CORS(cfg))

	aiLimiter := middleware.AIRateLimiter(cfg.AIRateLimitPerMinute)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health.Health)

		forms := api.Group("/forms")
		{
			forms.POST("/generate", aiLimiter, h.Forms.Generate)
			forms.POST("", h.Forms.Create)
			forms.GET("", h.Forms.List)
			forms.GET("/:formId", h.Forms.Get)
			forms.PUT("/:formId", h.Forms.Update)
			forms.DELETE("/:formId", h.Forms.Delete)
			forms.POST("/:formId/improve", aiLimiter, h.Forms.Improve)

			forms.GET("/:formId/render", h.Submissions.Render)
			forms.POST("/:formId/submissions", h.Submissions.Submit)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("", h.Dashboard.GetDashboard)
			dashboard.GET("/chart", h.Dashboard.GetChart)
			dashboard.GET("/analysis", h.Dashboard.Analyze)
			dashboard.GET("/analysis/:formId", aiLimiter, h.Dashboard.Analyze)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
