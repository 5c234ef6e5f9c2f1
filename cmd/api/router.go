package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rewear-backend/internal/shared/middleware"
	"rewear-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupItemRoutes(v1, c)
	}

	return router
}

func setupItemRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// Every item route requires a session, browsing included.
	items := v1.Group("/items")
	items.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		items.POST("", c.ItemHandler.Create)
		items.GET("", c.ItemHandler.List)
		items.GET("/mine", c.ItemHandler.ListMine)
		items.GET("/:id", c.ItemHandler.GetByID)
		items.POST("/:id/swap-request", c.ItemHandler.RequestSwap)
		items.POST("/:id/redeem", c.ItemHandler.Redeem)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := gin.H{}
		healthy := true

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}

		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}

		if err := c.Storage.HealthCheck(ctx.Request.Context()); err != nil {
			checks["storage"] = err.Error()
			healthy = false
		} else {
			checks["storage"] = "ok"
		}

		status := http.StatusOK
		overall := "healthy"
		if !healthy {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status":  overall,
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
