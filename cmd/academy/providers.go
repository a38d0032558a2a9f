package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/academy/internal/config"
	"github.com/cory-johannsen/academy/internal/game/academy"
	"github.com/cory-johannsen/academy/internal/game/dice"
	"github.com/cory-johannsen/academy/internal/observability"
	"github.com/cory-johannsen/academy/internal/save"
	"github.com/cory-johannsen/academy/internal/storage/filestore"
	"github.com/cory-johannsen/academy/internal/storage/sqlite"
)

// App is the fully wired command-line application.
type App struct {
	Config config.Config
	Logger *zap.Logger
	Store  save.Store
	Game   *academy.Game
}

func provideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, func() { observability.Sync(logger) }, nil
}

// provideStore opens the backend named by cfg.Storage.Backend.
func provideStore(cfg config.Config, logger *zap.Logger) (save.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Debug("save store opened", zap.String("backend", "sqlite"), zap.String("path", cfg.Storage.Path))
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing sqlite store", zap.Error(err))
			}
		}, nil
	default:
		store, err := filestore.NewOS(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening file store: %w", err)
		}
		logger.Debug("save store opened", zap.String("backend", "file"), zap.String("path", cfg.Storage.Path))
		return store, func() {}, nil
	}
}

func provideManager(cfg config.Config, store save.Store, logger *zap.Logger) *save.Manager {
	return save.NewManager(store, cfg.Storage.Key, logger)
}

func provideContent(cfg config.Config, logger *zap.Logger) (*academy.Content, error) {
	content, err := academy.LoadContent(cfg.Content, cfg.Game.RestDayValues())
	if err != nil {
		return nil, err
	}
	logger.Debug("content loaded",
		zap.String("dir", cfg.Content.Dir),
		zap.Int("spells", len(content.Library.Spells())),
		zap.Int("monsters", len(content.Bestiary.Templates())),
	)
	return content, nil
}

// provideSource returns a logged roller over a seeded source when
// game.seed is set and over crypto/rand otherwise.
func provideSource(cfg config.Config, logger *zap.Logger) dice.Source {
	var src dice.Source
	if cfg.Game.Seed != 0 {
		src = dice.NewSeededSource(cfg.Game.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	return dice.NewLoggedRoller(src, logger)
}

func provideGame(ctx context.Context, cfg config.Config, content *academy.Content, saves *save.Manager, src dice.Source, logger *zap.Logger) (*academy.Game, error) {
	return academy.New(ctx, content, saves, src, logger, academy.Options{StartLocation: cfg.Game.StartLocation})
}
