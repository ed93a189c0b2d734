package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"movision-server/internal/config"
	middleware "movision-server/internal/interfaces/httpserver/middlewares"
	v1 "movision-server/internal/interfaces/httpserver/routes/v1"
)

type HTTPServer struct {
	engine  *gin.Engine
	v1Route *v1.V1Route
	config  *config.Config
}

func NewHttpServer(v1Route *v1.V1Route, cfg *config.Config, logger zerolog.Logger) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		engine:  gin.New(),
		v1Route: v1Route,
		config:  cfg,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.LoggingMiddleware(logger))
	server.engine.Use(middleware.CORSMiddleware())
	server.engine.Use(middleware.MetricsMiddleware())

	// Root health checks for orchestrators.
	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	server.engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	server.engine.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(200, "ok")
	})

	server.v1Route.RegisterRouter(server.engine.Group("/"))

	return &server
}

// Engine exposes the underlying router for tests.
func (httpServer *HTTPServer) Engine() *gin.Engine {
	return httpServer.engine
}

func (httpServer *HTTPServer) Run() error {
	if err := httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort)); err != nil {
		return err
	}
	return nil
}
