package builtin

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"segprep/internal/frame"
	"segprep/internal/probe"
	"segprep/internal/schema"
)

// Sentinel code sets. Exempt columns use 9 as a real value.
var (
	DefaultSentinels = []float64{-1, 0, 9}
	ExemptSentinels  = []float64{-1, 0}
)

// Sentinels replaces "unknown" codes with missing. Every numeric column
// outside the exemption list and the label uses DefaultCodes; exempt columns
// are coerced to numeric when needed and use ExemptCodes.
type Sentinels struct {
	Schema       schema.Descriptor
	DefaultCodes []float64
	ExemptCodes  []float64
	Logger       *zap.Logger
}

// NewSentinels configures the stage with the standard code sets.
func NewSentinels(d schema.Descriptor, log *zap.Logger) Sentinels {
	return Sentinels{Schema: d, DefaultCodes: DefaultSentinels, ExemptCodes: ExemptSentinels, Logger: log}
}

func (Sentinels) Name() string { return "sentinels" }

func (s Sentinels) Apply(_ context.Context, ds *frame.Dataset) error {
	log := logger(s.Logger)
	defaults, exempts := s.DefaultCodes, s.ExemptCodes
	if defaults == nil {
		defaults = DefaultSentinels
	}
	if exempts == nil {
		exempts = ExemptSentinels
	}

	exemptCols, err := present(ds, s.Schema.Mode, log, s.Name(), s.Schema.Exempt...)
	if err != nil {
		return err
	}

	skip := make(map[string]struct{}, len(s.Schema.Exempt)+1)
	for _, n := range s.Schema.Exempt {
		skip[n] = struct{}{}
	}
	if s.Schema.Label != "" {
		skip[s.Schema.Label] = struct{}{}
	}

	cls := probe.Classify(ds, probe.Options{})
	total := 0
	for _, name := range cls.Numeric {
		if _, ok := skip[name]; ok {
			continue
		}
		c, _ := ds.Col(name)
		total += blank(c, defaults)
	}

	var errs []error
	for _, name := range exemptCols {
		c, _ := ds.Col(name)
		if err := c.ToNumeric(); err != nil {
			errs = append(errs, err)
			continue
		}
		total += blank(c, exempts)
	}

	log.Debug("normalized sentinel codes",
		zap.Int("cells", total),
		zap.Int("default_columns", len(cls.Numeric)),
		zap.Int("exempt_columns", len(exemptCols)),
	)
	return errors.Join(errs...)
}
