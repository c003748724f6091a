package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/part-describer/internal/domain/description"
	"github.com/yanqian/part-describer/internal/infra/config"
	"github.com/yanqian/part-describer/internal/infra/sessionstore"
)

func provideDescriptionConfig(cfg *config.Config) description.Config {
	return description.Config{
		HistoryLimit: cfg.Description.HistoryLimit,
		SavedLimit:   cfg.Description.SavedLimit,
		CacheSize:    cfg.Description.CacheSize,
	}
}

func provideSessionStore(cfg *config.Config, logger *slog.Logger) (description.Store, func()) {
	fallback := func() (description.Store, func()) {
		return sessionstore.NewMemoryStore(cfg.Description.SessionTTL), func() {}
	}
	if !cfg.Description.Valkey.Enabled {
		logger.Info("valkey disabled, using memory session store")
		return fallback()
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return fallback()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return fallback()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return fallback()
	}
	logger.Info("valkey session store enabled", "addr", cfg.Description.Valkey.Addr)
	store := sessionstore.NewValkeyStore(client, cfg.Description.Valkey.Prefix, cfg.Description.SessionTTL)
	return store, client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	addr := cfg.Description.Valkey.Addr
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
