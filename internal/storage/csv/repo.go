// Package csv exports to a delimited file. The header is written by Prepare
// or, failing that, with the first batch; missing cells are empty fields.
package csv

import (
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"segprep/internal/storage"
)

// Repository appends batches to one file.
type Repository struct {
	mu     sync.Mutex
	f      *os.File
	w      *stdcsv.Writer
	header bool
}

// NewRepository creates (or truncates) path, making parent directories.
func NewRepository(path string, comma rune) (*Repository, error) {
	if path == "" {
		return nil, fmt.Errorf("csv sink: path must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("csv sink: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv sink: %w", err)
	}
	w := stdcsv.NewWriter(f)
	if comma != 0 {
		w.Comma = comma
	}
	return &Repository{f: f, w: w}, nil
}

// Prepare writes the header so that a dataset without rows still yields a
// file with one line.
func (r *Repository) Prepare(ctx context.Context, columns []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.writeHeader(columns); err != nil {
		return err
	}
	r.w.Flush()
	return r.w.Error()
}

func (r *Repository) writeHeader(columns []string) error {
	if r.header {
		return nil
	}
	if err := r.w.Write(columns); err != nil {
		return fmt.Errorf("csv sink: header: %w", err)
	}
	r.header = true
	return nil
}

// CopyFrom writes rows, preceded by the header if Prepare was not called.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.writeHeader(columns); err != nil {
		return 0, err
	}
	rec := make([]string, len(columns))
	for i, row := range rows {
		if len(row) != len(columns) {
			return int64(i), fmt.Errorf("csv sink: row has %d values for %d columns", len(row), len(columns))
		}
		for j, v := range row {
			rec[j] = format(v)
		}
		if err := r.w.Write(rec); err != nil {
			return int64(i), fmt.Errorf("csv sink: %w", err)
		}
	}
	r.w.Flush()
	return int64(len(rows)), r.w.Error()
}

// Exec is a no-op; files have no schema.
func (r *Repository) Exec(context.Context, string) error { return nil }

// Close flushes and closes the file.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.w.Flush()
	werr := r.w.Error()
	if err := r.f.Close(); err != nil {
		return err
	}
	return werr
}

func format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

var _ storage.Preparer = (*Repository)(nil)

func init() {
	storage.Register("csv", func(_ context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(cfg.Path, cfg.Comma)
	})
}
