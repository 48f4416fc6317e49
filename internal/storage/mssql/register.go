package mssql

import (
	"context"
	"strings"

	"segprep/internal/ddl"
	"segprep/internal/storage"
)

// Dialect uses FLOAT (8-byte) for numeric columns and guards CREATE TABLE
// with OBJECT_ID because T-SQL has no IF NOT EXISTS.
var Dialect = ddl.Dialect{
	Name:    "mssql",
	Numeric: "FLOAT",
	Object:  "NVARCHAR(MAX)",
	Quote:   ddl.QuoteBracket,
	Guard: func(fqn, create string) string {
		return "IF OBJECT_ID(N'" + strings.ReplaceAll(fqn, "'", "''") + "', N'U') IS NULL " + create
	},
}

var newRepository = func(ctx context.Context, cfg Config) (storage.Repository, error) {
	return NewRepository(ctx, cfg)
}

func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return newRepository(ctx, Config{DSN: cfg.DSN, Table: cfg.Table})
	})
	storage.RegisterDDL("mssql", Dialect)
}
