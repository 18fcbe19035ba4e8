// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"

	"tourplan/internal/http/middleware"
	"tourplan/internal/metrics"
)

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(s.logger), middleware.Recovery(s.logger))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	api.GET("/health", s.health.Health)
	api.POST("/completions", s.completions.Complete)

	sessions := api.Group("/sessions")
	sessions.POST("", s.sessions.Create)
	sessions.GET("/:id", s.sessions.Get)
	sessions.DELETE("/:id", s.sessions.Delete)
	sessions.POST("/:id/itinerary", s.sessions.Generate)
	sessions.POST("/:id/catalog", s.sessions.ResolveCatalog)
	sessions.GET("/:id/plan", s.sessions.Plan)
	sessions.GET("/:id/interactions", s.sessions.Interactions)

	return r
}
