package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "Welcome to the POS System API!",
		"version":     s.cfg.AppVersion,
		"environment": s.cfg.Environment,
		"status":      "healthy",
		"endpoints": gin.H{
			"health":          "/health",
			"metrics":         "/metrics",
			"products_search": "/api/products/search/{barcode}",
			"products_list":   "/api/products",
			"purchase":        "/api/purchase",
		},
	})
}

func (s *Server) Health(c *gin.Context) {
	dbStatus := "connected"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "disconnected"
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		dbStatus = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": s.cfg.Environment,
		"database":    dbStatus,
		"version":     s.cfg.AppVersion,
	})
}

func (s *Server) DetailedHealth(c *gin.Context) {
	if s.cfg.IsProduction() {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"environment":  s.cfg.Environment,
		"cors_origins": s.cfg.CORSOrigins,
		"go_version":   runtime.Version(),
		"goroutines":   runtime.NumGoroutine(),
	})
}
