package web

import (
	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	"passwordAuditBackend/internal/config"
)

// NewRouter builds the engine with the full middleware chain. Callers pick the
// gin mode before calling it.
func NewRouter(handler *WebHandler, cfg config.ServerConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(requestLogger())
	router.Use(securityHeadersMiddleware())
	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))

	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("Failed to set trusted proxies")
	}

	SetupRoutes(router, handler, NewClientLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))
	return router
}

func SetupRoutes(r *gin.Engine, handler *WebHandler, limiter *ClientLimiter) {
	api := r.Group("/api")
	api.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))
	{
		api.POST("/analyze", handler.Analyze)
		api.POST("/advisory", limiter.Middleware(), handler.Advise)
		api.POST("/audit", handler.Audit)
		api.GET("/scenarios", handler.Scenarios)
	}
	r.GET("/healthz", handler.Health)
}
