package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aashish23092/ocr-currency-scanner/client"
	"github.com/Aashish23092/ocr-currency-scanner/config"
	"github.com/Aashish23092/ocr-currency-scanner/handler"
	"github.com/Aashish23092/ocr-currency-scanner/logger"
	"github.com/Aashish23092/ocr-currency-scanner/middleware"
	"github.com/Aashish23092/ocr-currency-scanner/router"
	"github.com/Aashish23092/ocr-currency-scanner/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.GetLogger().Fatalw("Failed to load configuration", "error", err)
	}

	log := logger.Init(cfg.LogLevel, cfg.IsProduction())
	defer logger.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// OCR engines: Tesseract always, PaddleOCR only when configured
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath, cfg.OCRLanguage, cfg.OCRWhitelist)

	var fallback service.OCREngine
	if paddle := client.NewPaddleClient(cfg.PaddleOCRURL, time.Duration(cfg.PaddleOCRTimeoutSeconds)*time.Second); paddle != nil {
		fallback = paddle
		log.Infow("PaddleOCR fallback enabled", "url", cfg.PaddleOCRURL)
	}

	metrics := service.NewScanMetrics(prometheus.DefaultRegisterer)
	scanService := service.NewScanService(tesseractClient, fallback, service.NewPDFProcessor(), metrics)
	scanHandler := handler.NewScanHandler(scanService, cfg.MaxFileSize)

	rateLimiter, err := middleware.NewLimiter(cfg.RateLimit)
	if err != nil {
		log.Fatalw("Invalid rate limit", "error", err)
	}

	r := router.SetupRouter(router.Config{
		ScanHandler:    scanHandler,
		Limiter:        rateLimiter,
		Gatherer:       prometheus.DefaultGatherer,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxFileSize + 1<<20, // multipart framing
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Starting OCR Currency Scanner", "port", cfg.ServerPort, "tessdata", cfg.TesseractDataPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("Server shutdown failed", "error", err)
	}
	log.Info("Server stopped")
}
