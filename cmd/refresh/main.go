// Package main refreshes catalog star counts from the GitHub API.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	catalogRepository "github.com/festy23/fixthisbug/internal/catalog/repository"
	catalogService "github.com/festy23/fixthisbug/internal/catalog/service"
	appConfig "github.com/festy23/fixthisbug/internal/config"
	dbConfig "github.com/festy23/fixthisbug/internal/database/config"
	"github.com/festy23/fixthisbug/internal/database/database"
	"github.com/festy23/fixthisbug/internal/database/migrate"
	"github.com/festy23/fixthisbug/internal/github"
	"github.com/festy23/fixthisbug/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("refresh: %v", err)
	}
}

func run() error {
	ghCfg := appConfig.LoadGitHubConfigFromEnv()
	if err := ghCfg.Validate(); err != nil {
		return err
	}

	sugar, err := logger.New()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = sugar.Sync() }()

	client, err := github.New(ghCfg, nil)
	if err != nil {
		return err
	}

	dbCfg := dbConfig.LoadConfigFromEnv()
	db, err := database.NewWithConfig(dbCfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := migrate.Apply(db, dbCfg.Driver); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := catalogService.New(catalogRepository.New(db, sugar), db, sugar,
		catalogService.WithStarsFetcher(client))

	updated, err := svc.RefreshAllStars(ctx)
	if err != nil {
		return fmt.Errorf("refresh stars: %w", err)
	}
	sugar.Infow("star refresh complete", "updated", updated)
	return nil
}
