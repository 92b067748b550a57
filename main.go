package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"pridenomad-hub/config"
	"pridenomad-hub/internal/app"
	routes "pridenomad-hub/internal/app/http"
	"pridenomad-hub/internal/app/http/middleware"
	"pridenomad-hub/internal/pkg/logger"
	"pridenomad-hub/internal/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Level: "info"}).Fatalf("config: %v", err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg, log); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer hub.Close()

	go func() {
		if err := hub.Registry.Run(ctx, hub.AdminSource); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("admin registry stopped")
		}
	}()
	go hub.WebhookLimiter.RunCleanup(ctx, 5*time.Minute)

	jobs := cron.New()
	if _, err := jobs.AddFunc("@every 1h", func() { hub.PurgeStaleClaims(ctx, cfg.ClaimTTL) }); err != nil {
		return err
	}
	jobs.Start()
	defer jobs.Stop()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.RequestLogger(log),
		metrics.Middleware(),
		cors.New(cors.Config{
			AllowOrigins:     []string{cfg.CORSOrigin},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)
	routes.RegisterRoutes(r, hub.Handlers())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.With("port", cfg.Port).With("db", cfg.DBDriver).With("payments", cfg.PaymentProvider).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
