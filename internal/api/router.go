package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/route-finder/internal/config"
	"github.com/jengzang/route-finder/internal/handler"
	"github.com/jengzang/route-finder/internal/metrics"
	"github.com/jengzang/route-finder/internal/middleware"
	"github.com/jengzang/route-finder/internal/repository"
	"github.com/jengzang/route-finder/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, collector *metrics.Collector) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Route Finder API is running",
		})
	})

	r.GET("/metrics", gin.WrapH(collector.Handler()))

	repo := repository.NewLogRepository(cfg.LogDir, cfg.SkipCorruptFiles)
	routeHandler := handler.NewRouteHandler(service.NewRouteService(repo, cfg.Pipeline, collector))

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
	if cfg.JWTSecret != "" {
		api.Use(middleware.JWTAuth(cfg.JWTSecret))
	}
	{
		// 路线接口
		routes := api.Group("/routes")
		{
			routes.GET("", routeHandler.ListRoutes)
			routes.GET("/best", routeHandler.GetBestRoute)
			routes.GET("/best/kml", routeHandler.GetBestRouteKML)
			routes.POST("/analyze", routeHandler.AnalyzeUploads)
		}
	}

	return r
}
