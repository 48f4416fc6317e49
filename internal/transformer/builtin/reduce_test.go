package builtin

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segprep/internal/frame"
)

// withObserved returns a numeric column of n rows where the first k cells are
// observed.
func withObserved(name string, n, k int) *frame.Column {
	vals := make([]float64, n)
	for i := range vals {
		if i >= k {
			vals[i] = nan
		} else {
			vals[i] = 1
		}
	}
	return num(name, vals...)
}

func TestReduce_ColumnThresholdIsInclusive(t *testing.T) {
	t.Parallel()

	// 10 rows: threshold = floor(10 * 0.30) = 3.
	ds := dataset(t,
		withObserved("full", 10, 10),
		withObserved("at", 10, 3),
		withObserved("below", 10, 2),
		withObserved("empty", 10, 0),
	)
	require.NoError(t, NewReduce(nil).Apply(context.Background(), ds))

	if diff := cmp.Diff([]string{"full", "at"}, ds.Names()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 10, ds.Len(), "column pass never drops rows")
}

func TestReduce_ThresholdFloors(t *testing.T) {
	t.Parallel()

	// 7 rows: 7 * 0.30 = 2.1 -> 2.
	ds := dataset(t, withObserved("two", 7, 2), withObserved("one", 7, 1))
	require.NoError(t, NewReduce(nil).Apply(context.Background(), ds))
	assert.Equal(t, []string{"two"}, ds.Names())
}

func TestReduce_RowsOnlyWhenColumnsDisabled(t *testing.T) {
	t.Parallel()

	ds := dataset(t,
		num("a", 1, nan, 1),
		num("b", 1, nan, nan),
		num("c", 1, 1, nan),
	)
	r := NewReduce(nil)
	r.Columns = false
	r.RowMinObserved = 2
	require.NoError(t, r.Apply(context.Background(), ds))

	assert.Equal(t, 1, ds.Len())
	assert.Equal(t, []any{1.0}, values(t, ds, "a"))
	assert.Equal(t, 3, ds.Width())
}

func TestReduce_RowMinimumIsInclusive(t *testing.T) {
	t.Parallel()

	// Observed cells per row: 2, 1, 2.
	ds := dataset(t,
		num("a", 1, 1, nan),
		num("b", 1, nan, 1),
		num("c", nan, nan, 1),
	)
	r := NewReduce(nil)
	r.Columns = false
	r.RowMinObserved = 2
	require.NoError(t, r.Apply(context.Background(), ds))

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []any{1.0, nil}, values(t, ds, "a"))
	assert.Equal(t, []any{nil, 1.0}, values(t, ds, "c"))
}

func TestReduce_BothFlagsRunsColumnPassOnly(t *testing.T) {
	t.Parallel()

	// Every row has fewer than 50 observed cells; with both flags set the
	// row pass must not run.
	ds := dataset(t, withObserved("a", 4, 4), withObserved("b", 4, 2))
	require.NoError(t, NewReduce(nil).Apply(context.Background(), ds))
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, []string{"a", "b"}, ds.Names())
}

func TestReduce_NoPasses(t *testing.T) {
	t.Parallel()

	ds := dataset(t, withObserved("a", 4, 0))
	require.NoError(t, Reduce{}.Apply(context.Background(), ds))
	assert.Equal(t, []string{"a"}, ds.Names())
}
