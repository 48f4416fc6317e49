// Package builtin contains the cleaning stages used by the pipeline.
package builtin

import (
	"go.uber.org/zap"

	"segprep/internal/frame"
	"segprep/internal/schema"
	"segprep/internal/transformer"
)

var (
	_ transformer.Transformer = MixedTypes{}
	_ transformer.Transformer = Sentinels{}
	_ transformer.Transformer = Reduce{}
	_ transformer.Transformer = Engineer{}
	_ transformer.Transformer = Impute{}
)

// present returns the distinct names that exist in ds, preserving order. In strict
// mode any absent name fails the whole call with ErrSchemaMismatch; in
// lenient mode absent names are logged and skipped.
func present(ds *frame.Dataset, mode schema.Mode, log *zap.Logger, stage string, names ...string) ([]string, error) {
	out := make([]string, 0, len(names))
	var missing []string
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup || n == "" {
			continue
		}
		seen[n] = struct{}{}
		if ds.Has(n) {
			out = append(out, n)
			continue
		}
		missing = append(missing, n)
	}
	if len(missing) == 0 {
		return out, nil
	}
	if mode != schema.Lenient {
		return nil, schema.MismatchError(missing...)
	}
	logger(log).Warn("skipping absent columns",
		zap.String("stage", stage),
		zap.Strings("columns", missing),
	)
	return out, nil
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// blank marks every observed numeric cell equal to one of codes as missing
// and returns how many cells changed.
func blank(c *frame.Column, codes []float64) int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			continue
		}
		v := c.Float(i)
		for _, code := range codes {
			if v == code {
				c.SetMissing(i)
				n++
				break
			}
		}
	}
	return n
}
