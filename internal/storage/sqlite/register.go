package sqlite

import (
	"context"

	"segprep/internal/ddl"
	"segprep/internal/storage"
)

// Dialect stores numeric columns with REAL affinity.
var Dialect = ddl.Dialect{Name: "sqlite", Numeric: "REAL", Object: "TEXT", Quote: ddl.QuoteDouble}

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, Config{DSN: cfg.DSN, Table: cfg.Table})
	})
	storage.RegisterDDL("sqlite", Dialect)
}
