package main

import (
	"context"
	"fmt"

	"github.com/custodia-labs/cvkit/internal/adapters/driven/cache/redis"
	"github.com/custodia-labs/cvkit/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cvkit/internal/adapters/driven/llm/anthropic"
	"github.com/custodia-labs/cvkit/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cvkit/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/cvkit/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cvkit/internal/adapters/driving/cli"
	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
	"github.com/custodia-labs/cvkit/internal/core/ports/driving"
	"github.com/custodia-labs/cvkit/internal/core/services"
	"github.com/custodia-labs/cvkit/internal/extractors"
	"github.com/custodia-labs/cvkit/internal/logger"
)

// buildServices wires stores, cache and analyser from the effective settings.
func buildServices(ctx context.Context, settingsService driving.SettingsService) (*cli.Services, func(), error) {
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("loading settings: %w", err)
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	store, closeStore, err := openCVStore(ctx, settings.Storage)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeStore)

	cache, closeCache := openParseCache(ctx, settings.Cache)
	closers = append(closers, closeCache)

	registry := services.NewExtractorRegistry()
	extractors.RegisterDefaults(registry)
	parser := services.NewParserService(services.NewValidator(settings.Parser.MaxFileSize), registry, cache)
	cvService := services.NewCVService(parser, store)

	if settings.Analysis.IsConfigured() {
		analyser, err := anthropic.NewAnalyser(anthropic.Config{
			APIKey: settings.Analysis.APIKey,
			Model:  settings.Analysis.Model,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("creating analyser: %w", err)
		}
		if prompts, err := file.NewPromptStore(""); err == nil {
			analyser.SetPromptStore(prompts)
		} else {
			logger.Warn("prompt store unavailable, using built-in prompts: %v", err)
		}
		cvService.SetAnalyser(analyser, settings.Analysis.Auto)
		closers = append(closers, func() { analyser.Close() })
		logger.Debug("Analysis enabled with %s", analyser.ModelName())
	}

	return &cli.Services{
		Parser:      parser,
		CV:          cvService,
		MaxFileSize: settings.Parser.MaxFileSize,
		ServerPort:  settings.Server.Port,
	}, cleanup, nil
}

func openCVStore(ctx context.Context, cfg domain.StorageSettings) (driven.CVStore, func(), error) {
	switch cfg.Backend {
	case domain.StorageBackendMemory:
		logger.Debug("Using in-memory CV store")
		return memory.NewCVStore(), func() {}, nil

	case domain.StorageBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("%w: storage.database_url is required for the postgres backend", domain.ErrInvalidInput)
		}
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store, err := postgres.NewCVStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Debug("Using Postgres CV store")
		return store, pool.Close, nil

	default:
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Debug("Using SQLite CV store at %s", store.Path())
		return store.CVStore(), func() { store.Close() }, nil
	}
}

func openParseCache(ctx context.Context, cfg domain.CacheSettings) (driven.ParseCache, func()) {
	if cfg.RedisAddr == "" {
		return memory.NewParseCache(cfg.TTL), func() {}
	}

	cache := redis.New(ctx, redis.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		TTL:      cfg.TTL,
	})
	return cache, func() { cache.Close() }
}
