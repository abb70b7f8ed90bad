package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"train-status-live/config"
	"train-status-live/handlers"
	"train-status-live/services"
	"train-status-live/utils"
	"train-status-live/web"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := utils.NewLogger(cfg.LogLevel)
	defer utils.SyncLogger(logger)

	logger.Infow("starting live train status server",
		"port", cfg.ServerPort,
		"upstream", cfg.UpstreamBaseURL,
		"upstream_timeout", cfg.UpstreamTimeout,
	)

	// Reference list for autocomplete, loaded once
	index := services.LoadTrainIndex(cfg.TrainListPath, logger)

	fetcher := services.NewStatusFetcher(cfg.UpstreamBaseURL, cfg.UpstreamUserAgent, cfg.UpstreamTimeout, logger)

	if cfg.GinMode != gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := setupRouter(cfg, logger, fetcher, index)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: handlers.GzipMiddleware(router),
	}

	// Start server in goroutine
	go func() {
		logger.Infow("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorw("server forced to shutdown", "error", err)
	}

	logger.Infow("server exited")
}

func setupRouter(cfg *config.Config, logger *zap.SugaredLogger, fetcher handlers.StatusFetcher, index *services.TrainIndex) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.SetHTMLTemplate(web.Templates())

	statusHandler := handlers.NewStatusHandler(fetcher, logger)
	searchHandler := handlers.NewSearchHandler(index)

	router.GET("/", statusHandler.Form)
	router.POST("/", statusHandler.Lookup)
	router.GET("/search", searchHandler.Search)

	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Static assets such as the page background
	router.Static("/public", cfg.PublicDir)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return router
}
