package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/comitanigiacomo/kanso-heatmap/internal/adapters/handler/http/middleware"
)

type RouterDependencies struct {
	EntityHandler  *EntityHandler
	HeatmapHandler *HeatmapHandler
	Tokens         middleware.TokenValidator
	// StorePing reports whether the entity store is reachable; nil means always healthy.
	StorePing func(ctx context.Context) error
	Redis     *redis.Client
	RateLimit int
	StartTime time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		storeStatus := "connected"
		if deps.StorePing != nil {
			if err := deps.StorePing(c.Request.Context()); err != nil {
				storeStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if deps.Redis.Ping(c.Request.Context()).Err() != nil {
				redisStatus = "unreachable"
			}
		}

		statusCode := 200
		if storeStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode = 503
		}

		c.JSON(statusCode, gin.H{
			"status": "ok",
			"store":  storeStatus,
			"redis":  redisStatus,
			"uptime": time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.AuthMiddleware(deps.Tokens))
	if deps.Redis != nil {
		apiV1.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, 1*time.Minute))
	}
	{
		deps.EntityHandler.RegisterRoutes(apiV1)
		deps.HeatmapHandler.RegisterRoutes(apiV1)
	}

	return router
}
