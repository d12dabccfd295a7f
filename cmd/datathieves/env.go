package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"datathieves/internal/catalog"
	"datathieves/internal/config"
	"datathieves/internal/events"
	"datathieves/internal/infra"
	"datathieves/internal/store"
)

// gameEnv bundles what every subcommand needs. closeFn releases the store.
type gameEnv struct {
	cfg     config.Config
	catalog *catalog.Catalog
	repo    store.Journal
	closeFn func()
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if saveDir != "" {
		cfg.SaveDir = saveDir
	}
	if saveID != "" {
		cfg.SaveID = saveID
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	return cfg, cfg.Validate()
}

// diagLogger is the stderr logger for one-shot subcommands. It stays quiet
// unless --debug is set.
func diagLogger(w io.Writer) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}
	return infra.NewLogger("development", true, w)
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.CatalogPath)
}

func openRuntime(ctx context.Context, log zerolog.Logger) (*gameEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	rt := &gameEnv{cfg: cfg, catalog: cat, closeFn: func() {}}
	if cfg.DatabaseURL != "" {
		pg, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		rt.repo = pg
		rt.closeFn = pg.Close
		log.Debug().Msg("store.postgres")
	} else {
		rt.repo = store.NewJSONStore(cfg.SaveDir)
		log.Debug().Str("dir", cfg.SaveDir).Msg("store.json")
	}
	return rt, nil
}

func (rt *gameEnv) sinks(log zerolog.Logger) []events.Sink {
	return []events.Sink{rt.repo, events.LogSink{Log: log}}
}
