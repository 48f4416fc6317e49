package builtin

import (
	"context"

	"go.uber.org/zap"

	"segprep/internal/frame"
)

// Reduction defaults.
const (
	DefaultColumnRatio    = 0.30
	DefaultRowMinObserved = 50
)

// Reduce drops sparse columns or sparse rows. When Columns is set a column
// survives iff its observed count is at least floor(rows*ColumnRatio), and
// the row pass is skipped. Otherwise, when Rows is set, a row survives iff it
// has at least RowMinObserved observed cells.
type Reduce struct {
	Columns        bool
	Rows           bool
	ColumnRatio    float64
	RowMinObserved int
	Logger         *zap.Logger
}

// NewReduce returns a Reduce with both passes enabled and default thresholds.
func NewReduce(log *zap.Logger) Reduce {
	return Reduce{
		Columns:        true,
		Rows:           true,
		ColumnRatio:    DefaultColumnRatio,
		RowMinObserved: DefaultRowMinObserved,
		Logger:         log,
	}
}

func (Reduce) Name() string { return "reduce" }

func (r Reduce) Apply(_ context.Context, ds *frame.Dataset) error {
	log := logger(r.Logger)
	switch {
	case r.Columns:
		ratio := r.ColumnRatio
		if ratio <= 0 {
			ratio = DefaultColumnRatio
		}
		threshold := int(float64(ds.Len()) * ratio)
		var drop []string
		for _, c := range ds.Columns() {
			if c.Observed() < threshold {
				drop = append(drop, c.Name())
			}
		}
		ds.Drop(drop...)
		log.Info("dropped sparse columns",
			zap.Int("threshold", threshold),
			zap.Strings("columns", drop),
		)
	case r.Rows:
		min := r.RowMinObserved
		if min <= 0 {
			min = DefaultRowMinObserved
		}
		keep := make([]bool, ds.Len())
		dropped := 0
		for i := range keep {
			keep[i] = ds.RowObserved(i) >= min
			if !keep[i] {
				dropped++
			}
		}
		if err := ds.KeepRows(keep); err != nil {
			return err
		}
		log.Info("dropped sparse rows",
			zap.Int("threshold", min),
			zap.Int("rows", dropped),
		)
	}
	return nil
}
