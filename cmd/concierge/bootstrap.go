package main

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/stepedge/concierge"
	"github.com/stepedge/concierge/internal/config"
	"github.com/stepedge/concierge/internal/logging"
	"github.com/stepedge/concierge/pkg/adapters/openai"
	redisadapter "github.com/stepedge/concierge/pkg/adapters/redis"
	"github.com/stepedge/concierge/pkg/catalog"
)

// loadConfig reads the config file named by --config and applies the
// --catalog override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if catalogPath, _ := cmd.Flags().GetString("catalog"); catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	return cfg, nil
}

// buildAdvisor assembles the advisor from the configuration: the catalog is
// mandatory, Redis and the AI collaborators attach only when configured.
// The returned cleanup closes any opened connections.
func buildAdvisor(ctx context.Context, cfg *config.Config, logger *slog.Logger, extra ...concierge.Option) (*concierge.Advisor, func(), error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}

	opts := []concierge.Option{concierge.WithLogger(logger)}
	opts = append(opts, extra...)
	cleanup := func() {}

	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		opts = append(opts, concierge.WithStore(redisadapter.NewFromClient(client, redisadapter.WithTTL(cfg.Redis.SessionTTL()))))
		if cfg.Redis.Lock {
			opts = append(opts, concierge.WithLocker(redisadapter.NewLocker(client, "concierge:lock:")))
		}
		cleanup = func() { _ = client.Close() }
		logger.Info("session backend: redis", "addr", cfg.Redis.Addr, "lock", cfg.Redis.Lock)
	} else {
		logger.Info("session backend: memory")
	}

	var provider *openai.Provider
	if cfg.AI.APIKey != "" {
		provider = openai.NewProvider(&openai.Config{
			BaseURL:        cfg.AI.BaseURL,
			APIKey:         cfg.AI.APIKey,
			ChatModel:      cfg.AI.ChatModel,
			EmbeddingModel: cfg.AI.EmbeddingModel,
			Timeout:        cfg.AI.RequestTimeout(),
		})
		opts = append(opts,
			concierge.WithGenerator(provider),
			concierge.WithEmbedder(provider),
		)
		logger.Info("ai collaborators enabled", "chat_model", cfg.AI.ChatModel)
	}

	advisor, err := concierge.New(cat, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	if provider != nil {
		if err := advisor.BuildIndex(ctx); err != nil {
			// Lexical search still works, keep going.
			logger.Warn("vector index build failed, using lexical search", "err", err)
		}
	}

	return advisor, cleanup, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(slog.LevelInfo, cfg.LogJSON)
}
