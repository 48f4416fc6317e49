package builtin

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"segprep/internal/frame"
	"segprep/internal/probe"
)

// ErrAllMissingColumn is returned when a statistic-based strategy is asked
// to fill a column that has no observed values.
var ErrAllMissingColumn = errors.New("column has no observed values")

// Strategy names how missing cells of one column class are filled.
type Strategy string

const (
	Mean     Strategy = "mean"
	Mode     Strategy = "mode"
	Constant Strategy = "constant"
)

// ParseStrategy validates s for the numeric (mean/constant) or categorical
// (mode/constant) class. Empty input selects the class default.
func ParseStrategy(s string, numeric bool) (Strategy, error) {
	switch Strategy(s) {
	case "":
		if numeric {
			return Mean, nil
		}
		return Mode, nil
	case Constant:
		return Constant, nil
	case Mean:
		if numeric {
			return Mean, nil
		}
	case Mode:
		if !numeric {
			return Mode, nil
		}
	}
	return "", fmt.Errorf("impute: strategy %q not valid here", s)
}

// Impute fills every missing cell. Numeric columns use the column mean or
// NumericFill; object columns use the most frequent observed value (ties go
// to the value seen first) or CategoricalFill.
type Impute struct {
	Numeric         Strategy
	NumericFill     float64
	Categorical     Strategy
	CategoricalFill string
	Logger          *zap.Logger
}

func (Impute) Name() string { return "impute" }

func (m Impute) Apply(_ context.Context, ds *frame.Dataset) error {
	log := logger(m.Logger)
	num, cat := m.Numeric, m.Categorical
	if num == "" {
		num = Mean
	}
	if cat == "" {
		cat = Mode
	}

	cls := probe.Classify(ds, probe.Options{})

	// Check every column before filling any, so a failure leaves ds intact.
	var errs []error
	check := func(names []string, s Strategy) {
		if s == Constant {
			return
		}
		for _, name := range names {
			c, _ := ds.Col(name)
			if c.Len() > 0 && c.Observed() == 0 {
				errs = append(errs, fmt.Errorf("%s (%s): %w", name, s, ErrAllMissingColumn))
			}
		}
	}
	check(cls.Numeric, num)
	check(cls.Categorical, cat)
	if err := errors.Join(errs...); err != nil {
		return err
	}

	filled := 0
	for _, name := range cls.Numeric {
		c, _ := ds.Col(name)
		if c.Missing() == 0 {
			continue
		}
		v := m.NumericFill
		if num == Mean {
			v = stat.Mean(c.ObservedFloats(), nil)
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsMissing(i) {
				c.SetFloat(i, v)
				filled++
			}
		}
	}
	for _, name := range cls.Categorical {
		c, _ := ds.Col(name)
		if c.Missing() == 0 {
			continue
		}
		v := m.CategoricalFill
		if cat == Mode {
			v = mostFrequent(c)
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsMissing(i) {
				c.SetStr(i, v)
				filled++
			}
		}
	}

	log.Info("imputed missing values",
		zap.Int("cells", filled),
		zap.String("numeric", string(num)),
		zap.String("categorical", string(cat)),
	)
	return nil
}

// mostFrequent returns the modal observed value of an object column.
func mostFrequent(c *frame.Column) string {
	counts := make(map[string]int)
	var order []string
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			continue
		}
		s := c.Str(i)
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}
	best, n := "", 0
	for _, s := range order {
		if counts[s] > n {
			best, n = s, counts[s]
		}
	}
	return best
}
