package sqlite

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segprep/internal/frame"
	"segprep/internal/storage"
)

func openTemp(t *testing.T) (storage.Repository, string) {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "segprep.db")
	repo, err := storage.New(context.Background(), storage.Config{Kind: "sqlite", DSN: dsn, Table: "azdias_clean"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, dsn
}

func TestExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := openTemp(t)

	ds, err := frame.New(
		frame.NewNumeric("AGER_TYP", []float64{1, math.NaN(), 3}),
		frame.NewObject("OST_WEST_KZ", []string{"W", "O", ""}, []bool{false, false, true}),
	)
	require.NoError(t, err)

	require.NoError(t, storage.EnsureTable(ctx, "sqlite", repo, "azdias_clean", ds))
	require.NoError(t, storage.EnsureTable(ctx, "sqlite", repo, "azdias_clean", ds), "second create is a no-op")

	n, err := storage.Export(ctx, nil, "test", repo, ds, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	db := repo.(*Repository).db
	var count, nullAge, nullRegion int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*), SUM("AGER_TYP" IS NULL), SUM("OST_WEST_KZ" IS NULL) FROM "azdias_clean"`,
	).Scan(&count, &nullAge, &nullRegion))
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, nullAge)
	assert.Equal(t, 1, nullRegion)

	var age float64
	require.NoError(t, db.QueryRowContext(ctx, `SELECT "AGER_TYP" FROM "azdias_clean" WHERE "OST_WEST_KZ" = 'W'`).Scan(&age))
	assert.Equal(t, 1.0, age)
}

func TestCopyFrom_Validation(t *testing.T) {
	ctx := context.Background()
	repo, _ := openTemp(t)
	require.NoError(t, repo.Exec(ctx, `CREATE TABLE "azdias_clean" ("a" REAL)`))
	require.NoError(t, repo.Exec(ctx, "  "))

	_, err := repo.CopyFrom(ctx, nil, [][]any{{1.0}})
	require.Error(t, err)

	n, err := repo.CopyFrom(ctx, []string{"a"}, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = repo.CopyFrom(ctx, []string{"a"}, [][]any{{1.0, 2.0}})
	require.Error(t, err)

	_, err = repo.CopyFrom(ctx, []string{"missing"}, [][]any{{1.0}})
	require.Error(t, err)
}

func TestNewRepository_Validation(t *testing.T) {
	_, err := NewRepository(context.Background(), Config{Table: "t"})
	require.Error(t, err)
	_, err = NewRepository(context.Background(), Config{DSN: "file::memory:"})
	require.Error(t, err)
}

func TestInsertSQL(t *testing.T) {
	assert.Equal(t,
		`INSERT INTO "main"."t" ("a", "b") VALUES (?, ?)`,
		insertSQL("main.t", []string{"a", "b"}))
}
