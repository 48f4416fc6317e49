package builtin

import (
	"context"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"segprep/internal/frame"
	"segprep/internal/schema"
)

// Engineer derives decoded features from the coded source columns and drops
// the columns that become redundant. Unmapped or missing codes produce
// missing derived values.
type Engineer struct {
	Schema schema.Descriptor
	Logger *zap.Logger
}

func (Engineer) Name() string { return "engineer" }

func (e Engineer) Apply(_ context.Context, ds *frame.Dataset) error {
	log := logger(e.Logger)
	d := e.Schema

	// Resolve everything up front so strict mode fails before any mutation.
	sources := append([]string{d.YouthCohort, d.Neighbourhood, d.LifePhase, d.RegionFlag}, d.Redundant()...)
	have, err := present(ds, d.Mode, log, e.Name(), sources...)
	if err != nil {
		return err
	}
	ok := make(map[string]bool, len(have))
	for _, n := range have {
		ok[n] = true
	}

	var derived []string
	add := func(c *frame.Column) error {
		derived = append(derived, c.Name())
		return ds.Set(c)
	}

	if ok[d.YouthCohort] {
		src, _ := ds.Col(d.YouthCohort)
		if err := add(mapCodes(src, d.YouthCohort+schema.SuffixDemography, schema.YouthDecade)); err != nil {
			return err
		}
		if err := add(mapCodes(src, d.YouthCohort+schema.SuffixReunification, schema.YouthReunification)); err != nil {
			return err
		}
	}

	if ok[d.Neighbourhood] {
		src, _ := ds.Col(d.Neighbourhood)
		if err := add(mapCodes(src, d.Neighbourhood+schema.SuffixNeighbourhood, schema.PoorNeighbourhood)); err != nil {
			return err
		}
	}

	if ok[d.LifePhase] {
		src, _ := ds.Col(d.LifePhase)
		age := d.LifePhase + schema.SuffixDemography
		aff := d.LifePhase + schema.SuffixAffluence
		if err := add(labelCodes(src, age, schema.LifePhaseAgeBand)); err != nil {
			return err
		}
		if err := add(labelCodes(src, aff, schema.LifePhaseAffluence)); err != nil {
			return err
		}
		// Intermediate labels are replaced by their ordinal in place.
		for name, table := range map[string]map[string]int{age: schema.AgeBandCode, aff: schema.AffluenceCode} {
			c, _ := ds.Col(name)
			if err := ds.Set(encodeLabels(c, table)); err != nil {
				return err
			}
		}
	}

	if ok[d.RegionFlag] {
		src, _ := ds.Col(d.RegionFlag)
		if src.Kind() == frame.Object {
			if err := ds.Set(encodeLabels(src, schema.RegionFlag)); err != nil {
				return err
			}
		}
	}

	dropped := ds.Drop(d.Redundant()...)
	log.Info("engineered features",
		zap.Strings("derived", derived),
		zap.Strings("dropped", dropped),
	)
	return nil
}

// code reads cell i as an integral code.
func code(c *frame.Column, i int) (int, bool) {
	if c.IsMissing(i) {
		return 0, false
	}
	v := c.Float(i)
	if c.Kind() == frame.Object {
		f, err := strconv.ParseFloat(strings.TrimSpace(c.Str(i)), 64)
		if err != nil {
			return 0, false
		}
		v = f
	}
	if v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}

func mapCodes(src *frame.Column, name string, table map[int]int) *frame.Column {
	out := make([]float64, src.Len())
	for i := range out {
		out[i] = math.NaN()
		if k, ok := code(src, i); ok {
			if v, ok := table[k]; ok {
				out[i] = float64(v)
			}
		}
	}
	return frame.NewNumeric(name, out)
}

func labelCodes(src *frame.Column, name string, table map[int]string) *frame.Column {
	vals := make([]string, src.Len())
	missing := make([]bool, src.Len())
	for i := range vals {
		missing[i] = true
		if k, ok := code(src, i); ok {
			if v, ok := table[k]; ok {
				vals[i], missing[i] = v, false
			}
		}
	}
	return frame.NewObject(name, vals, missing)
}

func encodeLabels(src *frame.Column, table map[string]int) *frame.Column {
	out := make([]float64, src.Len())
	for i := range out {
		out[i] = math.NaN()
		if src.IsMissing(i) {
			continue
		}
		if v, ok := table[strings.TrimSpace(src.Str(i))]; ok {
			out[i] = float64(v)
		}
	}
	return frame.NewNumeric(src.Name(), out)
}
