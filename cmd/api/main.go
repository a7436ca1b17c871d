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
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"autoshop/internal/config"
	"autoshop/internal/database"
	"autoshop/internal/domain/refund"
	"autoshop/internal/logger"
	"autoshop/internal/schema"
	"autoshop/internal/server"
	"autoshop/internal/telemetry"
)

func main() {
	// .env is optional; real deployments pass env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.AppEnv, cfg.IsProduction())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	shutdownTracing := telemetry.Setup(cfg.ServiceName, zl)

	db, err := database.Connect(cfg.DatabaseURL, zl, nil)
	if err != nil {
		zl.Fatal("database connect failed", zap.Error(err))
	}
	if err := schema.Migrate(db); err != nil {
		zl.Fatal("auto-migrate failed", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	app, err := server.New(cfg, db, zl)
	if err != nil {
		zl.Fatal("server setup failed", zap.Error(err))
	}

	scheduler := cron.New()
	if _, err := refund.ScheduleReminder(scheduler, cfg.RefundReminderSchedule, app.Refunds, cfg.RefundPendingSLA, zl.Named("reminder")); err != nil {
		zl.Fatal("invalid REFUND_REMINDER_SCHEDULE", zap.Error(err))
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(app.Router, cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server started", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	<-scheduler.Stop().Done()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		zl.Warn("tracing shutdown failed", zap.Error(err))
	}
}
