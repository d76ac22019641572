package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"library-api/internal/shared/middleware"
	"library-api/pkg/container"
)

const notFoundText = "Sorry :( the requested page could not be found."

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		middleware.Metrics(),
	)

	router.GET("/", rootHandler)
	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Metrics, promhttp.HandlerOpts{})))

	if c.LocalStorage != nil {
		router.Static(container.LocalUploadsRoute, c.LocalStorage.Root())
	}

	setupAuthorRoutes(router, c)
	setupBookRoutes(router, c)

	router.NoRoute(func(ctx *gin.Context) {
		ctx.String(http.StatusNotFound, notFoundText)
	})

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(r *gin.Engine, c *container.Container) {
	owner := []gin.HandlerFunc{
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequireOwnerOrAdmin(c.Policy, "id"),
	}

	author := r.Group("/author")
	{
		author.GET("", c.AuthorHandler.List)
		author.POST("", c.AuthorHandler.Create)
		author.POST("/login", c.AuthorHandler.Login)
		author.POST("/image-upload", c.AuthorHandler.UploadImage)
		author.GET("/name/:name", c.AuthorHandler.SearchByName)
		author.GET("/:id", c.AuthorHandler.GetByID)
		author.PUT("/:id", append(owner, c.AuthorHandler.Update)...)
		author.DELETE("/:id", append(owner, c.AuthorHandler.Delete)...)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(r *gin.Engine, c *container.Container) {
	book := r.Group("/book")
	{
		book.GET("", c.BookHandler.ListBooks)
		book.POST("", c.BookHandler.CreateBook)
		book.GET("/title/:title", c.BookHandler.SearchByTitle)
		book.GET("/:id", c.BookHandler.GetBookByID)
		book.PUT("/:id", c.BookHandler.UpdateBook)
		book.DELETE("/:id", c.BookHandler.DeleteBook)
	}
}

func rootHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<h3>This is the ROOT of our API.</h3>"))
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "ok"

		dbStatus := "in-memory"
		if appCtx.DB != nil {
			dbStatus = "ok"
			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error: " + err.Error()
				status = "degraded"
			}
		}

		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = "error: " + err.Error()
		}

		storageStatus := "ok"
		if err := appCtx.Storage.Ping(ctx); err != nil {
			storageStatus = "error: " + err.Error()
			status = "degraded"
		}

		statusCode := http.StatusOK
		if status != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
				"storage":  storageStatus,
			},
		})
	}
}
