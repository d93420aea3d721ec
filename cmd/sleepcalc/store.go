package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sleepcalc/internal/config"
	"sleepcalc/internal/theme"
)

// openThemes builds the theme manager for the configured backend and loads
// the saved theme. cached puts an in-memory layer in front of the store for
// long-running processes that re-read it on every page.
func openThemes(ctx context.Context, cfg config.Config, log *zap.Logger, cached bool) (*theme.Manager, func(), error) {
	var (
		store     theme.Store
		closeFunc = func() {}
	)

	switch cfg.ThemeBackend {
	case config.BackendNone:
		store = theme.NopStore{}
	case config.BackendRedis:
		attempts := uint(1)
		if cached {
			attempts = 5
		}
		rs, err := theme.NewRedisStore(ctx, theme.RedisOptions{
			Addr:            cfg.RedisAddr,
			Password:        cfg.RedisPassword,
			DB:              cfg.RedisDB,
			Prefix:          "sleepcalc:",
			ConnectAttempts: attempts,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		store = rs
		closeFunc = func() {
			if err := rs.Close(); err != nil {
				log.Warn("closing redis", zap.Error(err))
			}
		}
	default:
		path := cfg.ThemeFile
		if path == "" {
			p, err := theme.DefaultFilePath()
			if err != nil {
				return nil, nil, err
			}
			path = p
		}
		store = theme.NewFileStore(path)
	}

	if cached && cfg.ThemeCacheTTL > 0 {
		store = theme.NewCachedStore(store, cfg.ThemeCacheTTL)
	}

	m := theme.NewManager(store, log)
	if err := m.LoadSaved(ctx); err != nil {
		closeFunc()
		return nil, nil, fmt.Errorf("theme backend %s: %w", cfg.ThemeBackend, err)
	}
	return m, closeFunc, nil
}
