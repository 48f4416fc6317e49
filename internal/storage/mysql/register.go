package mysql

import (
	"context"

	"segprep/internal/ddl"
	"segprep/internal/storage"
)

// Dialect maps numeric columns to DOUBLE.
var Dialect = ddl.Dialect{Name: "mysql", Numeric: "DOUBLE", Object: "TEXT", Quote: ddl.QuoteBacktick}

var newRepository = func(ctx context.Context, cfg Config) (storage.Repository, error) {
	return NewRepository(ctx, cfg)
}

func init() {
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return newRepository(ctx, Config{DSN: cfg.DSN, Table: cfg.Table})
	})
	storage.RegisterDDL("mysql", Dialect)
}
