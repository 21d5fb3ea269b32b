package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/amenity-labs/amenity-finder/internal/search"
	"github.com/amenity-labs/amenity-finder/internal/store"
	"github.com/amenity-labs/amenity-finder/pkg/places"
)

// env bundles the wired dependencies shared by the commands.
type env struct {
	Store  store.Store
	Search *search.Service
}

// initEnv opens the configured rating store and builds the search service.
func initEnv(ctx context.Context) (*env, error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	client := places.NewClient(cfg.Places.Key,
		places.WithBaseURL(cfg.Places.BaseURL),
		places.WithAutocompleteURL(cfg.Places.AutocompleteURL),
		places.WithRateLimit(cfg.Places.RequestsPerSec),
		places.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Places.TimeoutSecs) * time.Second}),
	)

	return &env{
		Store:  st,
		Search: search.NewService(client, cfg.Search),
	}, nil
}

func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		zap.L().Debug("opening sqlite store", zap.String("path", cfg.Store.SQLitePath))
		return store.NewSQLite(cfg.Store.SQLitePath)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func (e *env) Close() {
	if err := e.Store.Close(); err != nil {
		zap.L().Warn("close store", zap.Error(err))
	}
}
