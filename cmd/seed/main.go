// Package main loads a catalog seed document into the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	catalogRepository "github.com/festy23/fixthisbug/internal/catalog/repository"
	"github.com/festy23/fixthisbug/internal/catalog/seed"
	catalogService "github.com/festy23/fixthisbug/internal/catalog/service"
	dbConfig "github.com/festy23/fixthisbug/internal/database/config"
	"github.com/festy23/fixthisbug/internal/database/database"
	"github.com/festy23/fixthisbug/internal/database/migrate"
	"github.com/festy23/fixthisbug/pkg/logger"
)

func main() {
	path := flag.String("file", "", "YAML seed file (defaults to the bundled sample catalog)")
	flag.Parse()

	if err := run(*path); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(path string) error {
	sugar, err := logger.New()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = sugar.Sync() }()

	file, err := loadSeed(path)
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

	svc := catalogService.New(catalogRepository.New(db, sugar), db, sugar)
	res, err := seed.Apply(ctx, svc, file, sugar)
	if err != nil {
		return err
	}

	sugar.Infow("seed complete",
		"created", res.Created,
		"updated", res.Updated,
		"issues", res.Issues,
	)
	return nil
}

func loadSeed(path string) (*seed.File, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.LoadFile(path)
}
