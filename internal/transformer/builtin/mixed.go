package builtin

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"segprep/internal/frame"
	"segprep/internal/schema"
)

// MixedTypes repairs columns that carry string "unknown" markers among
// numeric codes: markers become missing and the column becomes numeric.
// Columns that are already numeric are left alone, so the stage is
// idempotent.
type MixedTypes struct {
	Columns []string
	Tokens  []string
	Mode    schema.Mode
	Logger  *zap.Logger
}

// NewMixedTypes configures the stage from a descriptor.
func NewMixedTypes(d schema.Descriptor, log *zap.Logger) MixedTypes {
	return MixedTypes{Columns: d.MixedType, Tokens: d.MixedTokens, Mode: d.Mode, Logger: log}
}

func (MixedTypes) Name() string { return "mixed_types" }

func (m MixedTypes) Apply(_ context.Context, ds *frame.Dataset) error {
	log := logger(m.Logger)
	cols, err := present(ds, m.Mode, log, m.Name(), m.Columns...)
	if err != nil {
		return err
	}
	tokens := make(map[string]struct{}, len(m.Tokens))
	for _, t := range m.Tokens {
		tokens[t] = struct{}{}
	}

	var errs []error
	for _, name := range cols {
		c, _ := ds.Col(name)
		if c.Kind() == frame.Numeric {
			continue
		}
		replaced := 0
		for i := 0; i < c.Len(); i++ {
			if c.IsMissing(i) {
				continue
			}
			if _, ok := tokens[strings.TrimSpace(c.Str(i))]; ok {
				c.SetMissing(i)
				replaced++
			}
		}
		if err := c.ToNumeric(); err != nil {
			errs = append(errs, err)
			continue
		}
		log.Debug("repaired mixed-type column",
			zap.String("column", name),
			zap.Int("markers", replaced),
		)
	}
	return errors.Join(errs...)
}
