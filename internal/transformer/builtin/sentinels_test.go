package builtin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segprep/internal/frame"
	"segprep/internal/schema"
)

func sentinelSchema() schema.Descriptor {
	d := schema.Default()
	d.Exempt = []string{"ALTER_HH", "LP_LEBENSPHASE_FEIN"}
	return d
}

func TestSentinels_DefaultAndExemptCodes(t *testing.T) {
	t.Parallel()

	ds := dataset(t,
		num("AGE", 0, -1, 9, 5),
		obj("ALTER_HH", "9", "0", "-1", "3"),
		num("LP_LEBENSPHASE_FEIN", 9, 0, 40, nan),
		num("RESPONSE", 0, 1, 9, 0),
		obj("OST_WEST_KZ", "W", "O", "0", nil),
	)
	require.NoError(t, NewSentinels(sentinelSchema(), nil).Apply(context.Background(), ds))

	assert.Equal(t, []any{nil, nil, nil, 5.0}, values(t, ds, "AGE"))
	assert.Equal(t, []any{9.0, nil, nil, 3.0}, values(t, ds, "ALTER_HH"))
	assert.Equal(t, []any{9.0, nil, 40.0, nil}, values(t, ds, "LP_LEBENSPHASE_FEIN"))
	assert.Equal(t, []any{0.0, 1.0, 9.0, 0.0}, values(t, ds, "RESPONSE"), "label is never normalized")
	assert.Equal(t, []any{"W", "O", "0", nil}, values(t, ds, "OST_WEST_KZ"), "object columns are left alone")

	c, _ := ds.Col("ALTER_HH")
	assert.Equal(t, frame.Numeric, c.Kind())
}

func TestSentinels_Idempotent(t *testing.T) {
	t.Parallel()

	ds := dataset(t,
		num("AGE", 0, 9, 2),
		num("ALTER_HH", 9, -1, 1),
		num("LP_LEBENSPHASE_FEIN", 1, 2, 0),
	)
	stage := NewSentinels(sentinelSchema(), nil)
	require.NoError(t, stage.Apply(context.Background(), ds))
	first := ds.Fingerprint()
	require.NoError(t, stage.Apply(context.Background(), ds))
	assert.Equal(t, first, ds.Fingerprint())
}

func TestSentinels_ExemptObjectNotNumeric(t *testing.T) {
	t.Parallel()

	ds := dataset(t,
		obj("ALTER_HH", "abc"),
		num("LP_LEBENSPHASE_FEIN", 1),
	)
	err := NewSentinels(sentinelSchema(), nil).Apply(context.Background(), ds)
	require.ErrorIs(t, err, frame.ErrNotNumeric)
}

func TestSentinels_StrictRequiresExemptColumns(t *testing.T) {
	t.Parallel()

	ds := dataset(t, num("AGE", 0, 1))
	err := NewSentinels(sentinelSchema(), nil).Apply(context.Background(), ds)
	require.ErrorIs(t, err, schema.ErrSchemaMismatch)
	assert.Equal(t, []any{0.0, 1.0}, values(t, ds, "AGE"), "strict failure leaves data untouched")

	d := sentinelSchema()
	d.Mode = schema.Lenient
	require.NoError(t, NewSentinels(d, nil).Apply(context.Background(), ds))
	assert.Equal(t, []any{nil, 1.0}, values(t, ds, "AGE"))
}
