// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogRouter "github.com/festy23/fixthisbug/internal/catalog/router"
	appConfig "github.com/festy23/fixthisbug/internal/config"
	dbConfig "github.com/festy23/fixthisbug/internal/database/config"
	"github.com/festy23/fixthisbug/internal/database/database"
	"github.com/festy23/fixthisbug/internal/database/migrate"
	"github.com/festy23/fixthisbug/internal/health"
	"github.com/festy23/fixthisbug/internal/middleware"
	statisticsRouter "github.com/festy23/fixthisbug/internal/statistics/router"
	submissionRouter "github.com/festy23/fixthisbug/internal/submission/router"
	subscriberRouter "github.com/festy23/fixthisbug/internal/subscriber/router"
	"github.com/festy23/fixthisbug/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	cfg := appConfig.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = sugar.Sync() }()

	dbCfg := dbConfig.LoadConfigFromEnv()
	db, err := database.NewWithConfig(dbCfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			sugar.Warnw("close database", "error", err)
		}
	}()

	if err := migrate.Apply(db, dbCfg.Driver); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      newRouter(cfg.Server, db, sugar),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("server started", "addr", srv.Addr, "driver", dbCfg.Driver)
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

	sugar.Infow("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newRouter wires middleware and every feature's routes onto a fresh engine.
func newRouter(cfg appConfig.ServerConfig, db *gorm.DB, logger *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.FrontendURL),
		middleware.Timeout(cfg.RequestTimeout),
	)
	r.NoRoute(middleware.NotFound())

	health.RegisterRoutes(r, db, logger)
	catalogRouter.RegisterRoutes(r, db, logger)
	subscriberRouter.RegisterRoutes(r, db, logger)
	submissionRouter.RegisterRoutes(r, db, logger)
	statisticsRouter.RegisterRoutes(r, db, logger)

	return r
}
