package app

import (
	"career_assess_backend/docs"
	"career_assess_backend/internal/config"
	"career_assess_backend/internal/controller"
	"career_assess_backend/internal/middleware"
	"career_assess_backend/internal/util"
	"career_assess_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	api.GET("/health", c.health.HealthCheck)

	registerTestRoutes(api, c.testSession)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/reports", cfg.Storage.LocalPath)
	}
}

func registerTestRoutes(api *gin.RouterGroup, c *controller.TestSessionController) {
	test := api.Group("/test")
	{
		test.POST("/initialize", c.Initialize)
		test.POST("/answer", c.SubmitAnswer)

		withSession := test.Group("/", middleware.RequireSessionID())
		withSession.GET("/question/:sessionId", c.GetQuestion)
		withSession.GET("/results/:sessionId", c.GetResults)
		withSession.GET("/status/:sessionId", c.GetStatus)
	}
}
