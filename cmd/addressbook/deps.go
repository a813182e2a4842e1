package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/yasar2385/family-address-book/internal/application/handlers"
	"github.com/yasar2385/family-address-book/internal/domain/mocks"
	"github.com/yasar2385/family-address-book/internal/domain/ports"
	"github.com/yasar2385/family-address-book/internal/domain/services"
	"github.com/yasar2385/family-address-book/internal/infrastructure/config"
	"github.com/yasar2385/family-address-book/internal/infrastructure/docstore/postgres"
	"github.com/yasar2385/family-address-book/internal/infrastructure/docstore/sqlite"
	"github.com/yasar2385/family-address-book/internal/infrastructure/logging"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed; services and stores stay internal.
type Deps struct {
	Config    *config.Config
	Log       *slog.Logger
	Members   *handlers.MemberHandler
	Relations *handlers.RelationHandler
	Directory *handlers.DirectoryHandler
	Import    *handlers.ImportHandler
}

// baseDir returns the project directory from --dir or the working directory.
func baseDir() (string, error) {
	if globalDir != "" {
		return filepath.Abs(globalDir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// withDeps loads config, opens the store and builds handlers, then calls fn.
// The store is closed when fn returns.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	dir, err := baseDir()
	if err != nil {
		return err
	}

	_ = godotenv.Load(filepath.Join(dir, envFile))

	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	store, err := openStore(ctx, dir, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	members := services.NewMemberService(store, cfg.Maps.BaseURL)
	relations := services.NewRelationService(store, log)

	return fn(&Deps{
		Config:    cfg,
		Log:       log,
		Members:   handlers.NewMemberHandler(members, cfg.Maps.BaseURL),
		Relations: handlers.NewRelationHandler(members, relations),
		Directory: handlers.NewDirectoryHandler(members, relations, cfg.Maps.BaseURL),
		Import:    handlers.NewImportHandler(services.NewImportService(store, cfg.Maps.BaseURL)),
	})
}

// openStore opens the configured document store and ensures its schema.
func openStore(ctx context.Context, dir string, cfg *config.Config, log *slog.Logger) (ports.DocumentStore, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory store, data is lost on exit")
		return mocks.NewDocumentStore(), nil

	case config.DriverPostgres:
		store, err := postgres.NewStore(ctx, cfg.Store.Postgres, log)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("ensuring postgres schema: %w", err)
		}
		return store, nil

	default:
		store, err := sqlite.NewStore(config.SQLiteConfig{Path: cfg.SQLitePath(dir)}, log)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("ensuring sqlite schema: %w", err)
		}
		return store, nil
	}
}
