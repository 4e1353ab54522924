package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/project-moderation-api/internal/config"
	"github.com/project-moderation-api/internal/models"
	"github.com/project-moderation-api/internal/service"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	submitHandler := NewSubmitHandler(services, log)
	publicHandler := NewPublicHandler(services, log)
	adminHandler := NewAdminHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	// API v1
	v1 := router.Group("/v1")
	{
		// Public idea browsing (approved records only)
		ideas := v1.Group("/ideas")
		{
			ideas.GET("", publicHandler.ListIdeas)
			ideas.GET("/:id", publicHandler.GetIdea)
			ideas.POST("", submitHandler.SubmitIdea)
			ideas.POST("/:id/requests", submitHandler.SubmitJoinRequest)
		}

		// Public project detail projections
		projects := v1.Group("/projects/:project_id")
		{
			projects.GET("/features", publicHandler.ListProjectFeatures)
			projects.POST("/features", submitHandler.SubmitFeature)
			projects.GET("/contributions", publicHandler.ListProjectContributions)
			projects.POST("/contributions", submitHandler.SubmitContribution)
		}

		// Admin moderation surface
		admin := v1.Group("/admin", authMiddleware(&cfg.Admin, log))
		{
			admin.GET("/:kind", adminHandler.ListRecords)
			admin.GET("/:kind/:id", adminHandler.GetRecord)
			admin.POST("/:kind/:id/approve", adminHandler.ApproveRecord)
			admin.POST("/:kind/:id/reject", adminHandler.RejectRecord)
			admin.DELETE("/:kind/:id", adminHandler.DeleteRecord)
		}
	}

	return router
}

// pathKinds maps URL kind segments to record kinds
var pathKinds = map[string]models.Kind{
	"ideas":         models.KindIdea,
	"idea-requests": models.KindJoinRequest,
	"features":      models.KindFeature,
	"contributions": models.KindContribution,
}

// kindFromPath resolves the :kind path segment; false for unknown kinds
func kindFromPath(c *gin.Context) (models.Kind, bool) {
	kind, ok := pathKinds[c.Param("kind")]
	return kind, ok
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "project-moderation-api",
	})
}

// metricsHandler returns per-kind record counts
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		records := gin.H{}
		for _, kind := range models.AllKinds {
			list, err := services.Moderation.List(ctx, kind, models.Filter{})
			if err != nil {
				continue
			}
			records[string(kind)] = len(list)
		}

		c.JSON(http.StatusOK, gin.H{
			"records":   records,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-Email")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
