package builtin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"segprep/internal/frame"
)

var nan = math.NaN()

func num(name string, vals ...float64) *frame.Column {
	return frame.NewNumeric(name, vals)
}

// obj builds an object column; nil entries are missing.
func obj(name string, vals ...any) *frame.Column {
	strs := make([]string, len(vals))
	missing := make([]bool, len(vals))
	for i, v := range vals {
		if v == nil {
			missing[i] = true
			continue
		}
		strs[i] = v.(string)
	}
	return frame.NewObject(name, strs, missing)
}

func dataset(t *testing.T, cols ...*frame.Column) *frame.Dataset {
	t.Helper()
	ds, err := frame.New(cols...)
	require.NoError(t, err)
	return ds
}

// values returns the cells of a column as any: nil for missing.
func values(t *testing.T, ds *frame.Dataset, name string) []any {
	t.Helper()
	c, ok := ds.Col(name)
	require.True(t, ok, "column %s", name)
	out := make([]any, c.Len())
	for i := range out {
		out[i] = c.Value(i)
	}
	return out
}
