package storage

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"segprep/internal/frame"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type memRepo struct {
	mu      sync.Mutex
	columns []string
	rows    [][]any
	execs   []string
	failAt  int
	closed  bool
}

func (m *memRepo) CopyFrom(_ context.Context, columns []string, rows [][]any) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAt > 0 && len(m.rows)+len(rows) >= m.failAt {
		return 0, errors.New("disk full")
	}
	m.columns = columns
	for _, r := range rows {
		m.rows = append(m.rows, append([]any(nil), r...))
	}
	return int64(len(rows)), nil
}

func (m *memRepo) Exec(_ context.Context, sql string) error {
	m.execs = append(m.execs, sql)
	return nil
}

func (m *memRepo) Close() error {
	m.closed = true
	return nil
}

func exportDataset(t *testing.T, rows int) *frame.Dataset {
	t.Helper()
	nums := make([]float64, rows)
	strs := make([]string, rows)
	miss := make([]bool, rows)
	for i := range nums {
		nums[i] = float64(i)
		strs[i] = "W"
		if i%3 == 0 {
			nums[i] = math.NaN()
			miss[i] = true
			strs[i] = ""
		}
	}
	ds, err := frame.New(frame.NewNumeric("AGER_TYP", nums), frame.NewObject("OST_WEST_KZ", strs, miss))
	require.NoError(t, err)
	return ds
}

func TestRow(t *testing.T) {
	t.Parallel()

	ds := exportDataset(t, 3)
	assert.Equal(t, []any{nil, nil}, Row(ds, 0))
	assert.Equal(t, []any{1.0, "W"}, Row(ds, 1))
}

func TestExport(t *testing.T) {
	ds := exportDataset(t, 10)
	repo := &memRepo{}

	n, err := Export(context.Background(), nil, "test", repo, ds, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 10, n)
	assert.Equal(t, []string{"AGER_TYP", "OST_WEST_KZ"}, repo.columns)
	require.Len(t, repo.rows, 10)
	assert.Equal(t, []any{2.0, "W"}, repo.rows[2])
}

func TestExport_DefaultBatchSize(t *testing.T) {
	repo := &memRepo{}
	n, err := Export(context.Background(), nil, "test", repo, exportDataset(t, 5), 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}

func TestExport_CopyErrorStopsProducer(t *testing.T) {
	repo := &memRepo{failAt: 3}

	_, err := Export(context.Background(), nil, "test", repo, exportDataset(t, 5000), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestExport_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Export(ctx, nil, "test", &memRepo{}, exportDataset(t, 100), 10)
	require.ErrorIs(t, err, context.Canceled)
}

type preparingRepo struct {
	memRepo
	prepared []string
	err      error
}

func (p *preparingRepo) Prepare(_ context.Context, columns []string) error {
	p.prepared = columns
	return p.err
}

func TestExport_PrepareSeesColumnsBeforeRows(t *testing.T) {
	t.Parallel()

	repo := &preparingRepo{}
	_, err := Export(context.Background(), nil, "test", repo, exportDataset(t, 0), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"AGER_TYP", "OST_WEST_KZ"}, repo.prepared)
	assert.Empty(t, repo.rows)

	failing := &preparingRepo{err: errors.New("read-only")}
	_, err = Export(context.Background(), nil, "test", failing, exportDataset(t, 4), 2)
	require.ErrorContains(t, err, "read-only")
	assert.Empty(t, failing.rows)
}
