package storage

import (
	"context"
	"fmt"
	"sync"

	"segprep/internal/ddl"
	"segprep/internal/frame"
)

var (
	ddlMu    sync.RWMutex
	dialects = map[string]ddl.Dialect{}
)

// RegisterDDL installs the DDL dialect for kind. Kinds without a dialect
// (file sinks) need no table.
func RegisterDDL(kind string, d ddl.Dialect) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	dialects[kind] = d
}

// EnsureTable creates table on repo from the dataset's column kinds unless
// it already exists.
func EnsureTable(ctx context.Context, kind string, repo Repository, table string, ds *frame.Dataset) error {
	ddlMu.RLock()
	d, ok := dialects[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("storage: no DDL dialect registered for kind %q", kind)
	}
	stmt, err := d.CreateTable(ddl.FromDataset(table, ds, d))
	if err != nil {
		return fmt.Errorf("storage: build DDL: %w", err)
	}
	if err := repo.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("storage: create table %s: %w", table, err)
	}
	return nil
}
