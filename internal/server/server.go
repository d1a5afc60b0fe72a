package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lrucache/internal/cache"
	"lrucache/pkg/logger"
)

type Server struct {
	router   *gin.Engine
	store    cache.Store[string]
	registry *prometheus.Registry
}

// New creates a new server instance serving store
func New(store cache.Store[string]) *Server {
	s := &Server{
		store:    store,
		router:   gin.New(),
		registry: prometheus.NewRegistry(),
	}
	// match routes on the escaped path so a key may contain an encoded "/"
	s.router.UseRawPath = true
	s.router.UnescapePathValues = true
	s.registry.MustRegister(newStoreCollectors(store)...)
	s.router.Use(gin.Recovery(), requestLogger())
	s.setupRoutes()
	return s
}

// Handler exposes the router for use in an http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleHealthCheck())
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	s.router.GET("/v1/cache", s.handleStats())
	s.router.DELETE("/v1/cache", s.handleInvalidateAll())
	s.router.GET("/v1/cache/keys", s.handleKeys())
	s.router.GET("/v1/cache/lru", s.handleLRUValues())
	s.router.POST("/v1/cache/invalidate", s.handleInvalidatePrefix())

	s.router.GET("/v1/cache/entries/:key", s.handleGetEntry())
	s.router.PUT("/v1/cache/entries/:key", s.handlePutEntry())
	s.router.DELETE("/v1/cache/entries/:key", s.handleDeleteEntry())
}

// requestLogger logs one line per request through the package logger
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
