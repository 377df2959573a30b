// README: Entry point; loads config, wires services, serves the trip planner and image proxy API.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripbrief/internal/app"
	"tripbrief/internal/config"
	httptransport "tripbrief/internal/http"
	"tripbrief/internal/infra"
	"tripbrief/internal/obs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		logger.Fatal("redis init", zap.Error(err))
	}
	if redisClient == nil {
		logger.Info("image cache disabled (TRIP_REDIS_ADDR not set)")
	} else {
		defer redisClient.Close()
	}

	metrics := obs.NewMetrics()
	imageSvc := app.NewImageService(cfg, redisClient, logger)

	planner, err := app.NewPlanner(cfg, app.ProxyGenerators(cfg), logger, metrics)
	if err != nil {
		logger.Fatal("planner init", zap.Error(err))
	}

	if cfg.Log.Format == "json" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Planner: planner,
		Images:  imageSvc,
		Metrics: metrics,
		Logger:  logger,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown", zap.Error(err))
		}
	}()

	logger.Info("http server listening",
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("image_proxy_base", cfg.Image.PublicBaseURL),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server", zap.Error(err))
	}
}
