package builtin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segprep/internal/frame"
	"segprep/internal/schema"
)

func TestMixedTypes_ReplacesMarkersAndCoerces(t *testing.T) {
	t.Parallel()

	ds := dataset(t,
		obj("CAMEO_DEUG_2015", "X", "3", nil, "8"),
		obj("CAMEO_INTL_2015", "XX", "51", "14", nil),
	)
	stage := NewMixedTypes(schema.Default(), nil)
	require.NoError(t, stage.Apply(context.Background(), ds))

	assert.Equal(t, []any{nil, 3.0, nil, 8.0}, values(t, ds, "CAMEO_DEUG_2015"))
	assert.Equal(t, []any{nil, 51.0, 14.0, nil}, values(t, ds, "CAMEO_INTL_2015"))
	c, _ := ds.Col("CAMEO_INTL_2015")
	assert.Equal(t, frame.Numeric, c.Kind())
}

func TestMixedTypes_Idempotent(t *testing.T) {
	t.Parallel()

	ds := dataset(t,
		obj("CAMEO_DEUG_2015", "X", "3"),
		obj("CAMEO_INTL_2015", "51", "XX"),
	)
	stage := NewMixedTypes(schema.Default(), nil)
	require.NoError(t, stage.Apply(context.Background(), ds))
	first := ds.Fingerprint()
	require.NoError(t, stage.Apply(context.Background(), ds))
	assert.Equal(t, first, ds.Fingerprint())
}

func TestMixedTypes_UnparseableValue(t *testing.T) {
	t.Parallel()

	ds := dataset(t,
		obj("CAMEO_DEUG_2015", "X", "abc"),
		obj("CAMEO_INTL_2015", "12", "13"),
	)
	err := NewMixedTypes(schema.Default(), nil).Apply(context.Background(), ds)
	require.ErrorIs(t, err, frame.ErrNotNumeric)
	assert.Contains(t, err.Error(), "CAMEO_DEUG_2015")
}

func TestMixedTypes_AbsentColumn(t *testing.T) {
	t.Parallel()

	d := schema.Default()
	ds := dataset(t, obj("CAMEO_DEUG_2015", "X"))

	err := NewMixedTypes(d, nil).Apply(context.Background(), ds)
	require.ErrorIs(t, err, schema.ErrSchemaMismatch)

	d.Mode = schema.Lenient
	require.NoError(t, NewMixedTypes(d, nil).Apply(context.Background(), ds))
	assert.Equal(t, []any{nil}, values(t, ds, "CAMEO_DEUG_2015"))
}
