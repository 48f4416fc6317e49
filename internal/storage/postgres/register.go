package postgres

import (
	"context"

	"segprep/internal/ddl"
	"segprep/internal/storage"
)

// Dialect maps numeric columns to DOUBLE PRECISION.
var Dialect = ddl.Dialect{Name: "postgres", Numeric: "DOUBLE PRECISION", Object: "TEXT", Quote: ddl.QuoteDouble}

// newRepository is replaced in tests to avoid a live server.
var newRepository = func(ctx context.Context, cfg Config) (storage.Repository, error) {
	return NewRepository(ctx, cfg)
}

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return newRepository(ctx, Config{DSN: cfg.DSN, Table: cfg.Table})
	})
	storage.RegisterDDL("postgres", Dialect)
}
