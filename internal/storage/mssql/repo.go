// Package mssql exports to SQL Server with go-mssqldb's bulk copy API. Each
// batch is one transaction around a CopyIn statement.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"
)

// Config addresses one SQL Server table.
type Config struct {
	DSN string
	// Table may be schema qualified, e.g. "dbo.azdias_clean".
	Table string
}

// Repository writes batches with bulk copy.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository validates the DSN, opens and pings the server.
func NewRepository(ctx context.Context, cfg Config) (*Repository, error) {
	if strings.TrimSpace(cfg.Table) == "" {
		return nil, fmt.Errorf("mssql: table must not be empty")
	}
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, fmt.Errorf("mssql: dsn: %w", err)
	}
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mssql: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mssql: ping: %w", err)
	}
	return &Repository{db: db, cfg: cfg}, nil
}

// CopyFrom bulk copies rows into the table.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("mssql: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, mssql.CopyIn(bulkTable(r.cfg.Table), mssql.BulkOptions{Tablock: true}, columns...))
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("mssql: prepare bulk copy: %w", err)
	}
	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, fmt.Errorf("mssql: bulk row %d: %w", i, err)
		}
	}
	res, err := stmt.ExecContext(ctx)
	if cerr := stmt.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("mssql: bulk finalize: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("mssql: commit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return int64(len(rows)), nil
	}
	return n, nil
}

// Exec runs one statement.
func (r *Repository) Exec(ctx context.Context, stmt string) error {
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("mssql: exec: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (r *Repository) Close() error { return r.db.Close() }

// bulkTable renders the table for CopyIn, bracket quoting each segment.
func bulkTable(fqn string) string { return Dialect.QuoteFQN(fqn) }
