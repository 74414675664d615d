package router

import (
	"net/http"

	"github.com/Aashish23092/ocr-currency-scanner/handler"
	"github.com/Aashish23092/ocr-currency-scanner/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"
)

// Config holds the dependencies of the HTTP API.
type Config struct {
	ScanHandler    *handler.ScanHandler
	Limiter        *limiter.Limiter
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
	MaxBodyBytes   int64
	Logger         *zap.SugaredLogger
}

func SetupRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.MaxMultipartMemory = cfg.MaxBodyBytes

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "OCR Currency Scanner",
		})
	})

	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")
	api.GET("/currencies", cfg.ScanHandler.Currencies)

	limited := api.Group("")
	if cfg.Limiter != nil {
		limited.Use(middleware.RateLimit(cfg.Limiter, cfg.Logger))
	}
	limited.Use(middleware.MaxBodySize(cfg.MaxBodyBytes))
	{
		limited.POST("/scan", cfg.ScanHandler.Scan)
		limited.POST("/extract", cfg.ScanHandler.Extract)
	}

	return r
}
