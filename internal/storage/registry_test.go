package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segprep/internal/ddl"
)

func TestRegistry(t *testing.T) {
	repo := &memRepo{}
	Register("mem-test", func(_ context.Context, cfg Config) (Repository, error) {
		assert.Equal(t, "clean", cfg.Table)
		return repo, nil
	})

	got, err := New(context.Background(), Config{Kind: "mem-test", Table: "clean"})
	require.NoError(t, err)
	assert.Same(t, repo, got)
	assert.Contains(t, ListKinds(), "mem-test")

	_, err = New(context.Background(), Config{Kind: "parquet"})
	require.Error(t, err)
}

func TestEnsureTable(t *testing.T) {
	RegisterDDL("mem-test", ddl.Dialect{Numeric: "REAL", Object: "TEXT", Quote: ddl.QuoteDouble})

	repo := &memRepo{}
	require.NoError(t, EnsureTable(context.Background(), "mem-test", repo, "azdias_clean", exportDataset(t, 2)))
	require.Len(t, repo.execs, 1)
	assert.Contains(t, repo.execs[0], `CREATE TABLE IF NOT EXISTS "azdias_clean"`)
	assert.Contains(t, repo.execs[0], `"AGER_TYP" REAL`)
	assert.Contains(t, repo.execs[0], `"OST_WEST_KZ" TEXT`)

	require.Error(t, EnsureTable(context.Background(), "no-dialect", repo, "t", exportDataset(t, 2)))
}
