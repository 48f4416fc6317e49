package builtin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpute_MeanAndMode(t *testing.T) {
	t.Parallel()

	ds := dataset(t,
		num("AGE", 1, nan, 3, nan),
		obj("CAMEO_DEU_2015", "8A", nil, "4C", "8A"),
		num("FULL", 7, 7, 7, 7),
	)
	require.NoError(t, Impute{}.Apply(context.Background(), ds))

	assert.Equal(t, []any{1.0, 2.0, 3.0, 2.0}, values(t, ds, "AGE"))
	assert.Equal(t, []any{"8A", "8A", "4C", "8A"}, values(t, ds, "CAMEO_DEU_2015"))
	assert.Equal(t, []any{7.0, 7.0, 7.0, 7.0}, values(t, ds, "FULL"))
	assert.Zero(t, ds.TotalMissing())
}

func TestImpute_ModeTieGoesToFirstSeen(t *testing.T) {
	t.Parallel()

	ds := dataset(t, obj("C", nil, "b", "a", "a", "b", nil))
	require.NoError(t, Impute{}.Apply(context.Background(), ds))
	assert.Equal(t, []any{"b", "b", "a", "a", "b", "b"}, values(t, ds, "C"))
}

func TestImpute_Constant(t *testing.T) {
	t.Parallel()

	ds := dataset(t,
		num("ALL_MISSING", nan, nan),
		obj("C", nil, nil),
	)
	m := Impute{Numeric: Constant, NumericFill: -5, Categorical: Constant, CategoricalFill: "unknown"}
	require.NoError(t, m.Apply(context.Background(), ds))
	assert.Equal(t, []any{-5.0, -5.0}, values(t, ds, "ALL_MISSING"))
	assert.Equal(t, []any{"unknown", "unknown"}, values(t, ds, "C"))
}

func TestImpute_AllMissingColumnIsAnError(t *testing.T) {
	t.Parallel()

	ds := dataset(t,
		num("AGE", 1, nan),
		num("EMPTY_NUM", nan, nan),
		obj("EMPTY_OBJ", nil, nil),
	)
	err := Impute{}.Apply(context.Background(), ds)
	require.ErrorIs(t, err, ErrAllMissingColumn)
	assert.Contains(t, err.Error(), "EMPTY_NUM")
	assert.Contains(t, err.Error(), "EMPTY_OBJ")
	assert.Equal(t, []any{1.0, nil}, values(t, ds, "AGE"), "no column is filled on failure")
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		numeric bool
		want    Strategy
		wantErr bool
	}{
		{in: "", numeric: true, want: Mean},
		{in: "", numeric: false, want: Mode},
		{in: "constant", numeric: true, want: Constant},
		{in: "mean", numeric: false, wantErr: true},
		{in: "mode", numeric: true, wantErr: true},
		{in: "median", numeric: true, wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseStrategy(tc.in, tc.numeric)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
