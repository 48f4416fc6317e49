// Package storage exports cleaned datasets to sinks. Backends register a
// Factory under a kind ("csv", "sqlite", "postgres", "mssql", "mysql") from
// their init functions; callers import storage/all and stay backend agnostic.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Config describes one sink.
type Config struct {
	Kind string
	// DSN and Table address database sinks.
	DSN   string
	Table string
	// Path addresses file sinks.
	Path string
	// Comma is the delimiter for file sinks; ',' when zero.
	Comma rune

	Logger *zap.Logger
}

// Repository accepts batches of positional rows. Values are float64, string
// or nil for a missing cell.
type Repository interface {
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	// Exec runs a statement such as DDL. File sinks ignore it.
	Exec(ctx context.Context, sql string) error
	Close() error
}

// Preparer is implemented by sinks that need the column list before any row
// arrives, such as file sinks writing a header. Export calls Prepare once,
// even for an empty dataset.
type Preparer interface {
	Prepare(ctx context.Context, columns []string) error
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for kind.
func Register(kind string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = f
}

// New opens the Repository registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	f, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no backend registered for kind %q (have %v)", cfg.Kind, ListKinds())
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered kinds in sorted order.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
