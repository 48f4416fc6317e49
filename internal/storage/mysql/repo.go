// Package mysql exports to MySQL with go-sql-driver/mysql. Each batch becomes
// one or more multi-row INSERT statements inside a transaction.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"segprep/internal/ddl"
)

// maxPlaceholders stays under the server's 65535 prepared-parameter limit.
const maxPlaceholders = 65000

// Config addresses one MySQL table.
type Config struct {
	// DSN uses the driver format, e.g. "user:pass@tcp(db:3306)/segprep".
	DSN   string
	Table string
}

// Repository writes batches with multi-row INSERTs.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository validates the DSN, opens and pings the server.
func NewRepository(ctx context.Context, cfg Config) (*Repository, error) {
	if strings.TrimSpace(cfg.Table) == "" {
		return nil, fmt.Errorf("mysql: table must not be empty")
	}
	mc, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql: dsn: %w", err)
	}
	conn, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, fmt.Errorf("mysql: connector: %w", err)
	}
	db := sql.OpenDB(conn)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}
	return &Repository{db: db, cfg: cfg}, nil
}

// CopyFrom inserts rows in chunks that respect the placeholder limit.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("mysql: no columns")
	}
	if len(rows) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("mysql: begin tx: %w", err)
	}
	var total int64
	for _, chunk := range chunkRows(rows, len(columns)) {
		args := make([]any, 0, len(chunk)*len(columns))
		for _, row := range chunk {
			args = append(args, row...)
		}
		res, err := tx.ExecContext(ctx, insertSQL(r.cfg.Table, columns, len(chunk)), args...)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("mysql: insert: %w", err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("mysql: commit: %w", err)
	}
	return total, nil
}

// Exec runs one statement.
func (r *Repository) Exec(ctx context.Context, stmt string) error {
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("mysql: exec: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (r *Repository) Close() error { return r.db.Close() }

func chunkRows(rows [][]any, width int) [][][]any {
	per := maxPlaceholders / width
	if per < 1 {
		per = 1
	}
	var out [][][]any
	for len(rows) > per {
		out = append(out, rows[:per])
		rows = rows[per:]
	}
	return append(out, rows)
}

func insertSQL(table string, columns []string, n int) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = ddl.QuoteBacktick(c)
	}
	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	tuples := make([]string, n)
	for i := range tuples {
		tuples[i] = tuple
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		Dialect.QuoteFQN(table), strings.Join(quoted, ", "), strings.Join(tuples, ", "))
}
