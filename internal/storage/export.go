package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"segprep/internal/frame"
	"segprep/internal/metrics"
)

// DefaultBatchSize is used when Export is given a non-positive batch size.
const DefaultBatchSize = 1000

// Export streams every row of ds into repo. A producer goroutine feeds the
// batched loader; it exits when the loader returns, so nothing outlives the
// call. Row and batch counts are recorded under job.
func Export(ctx context.Context, log *zap.Logger, job string, repo Repository, ds *frame.Dataset, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	if p, ok := repo.(Preparer); ok {
		if err := p.Prepare(ctx, ds.Names()); err != nil {
			return 0, fmt.Errorf("storage: export: %w", err)
		}
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rows := make(chan []any, batchSize)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(rows)
		for i := 0; i < ds.Len(); i++ {
			select {
			case rows <- Row(ds, i):
			case <-ctx.Done():
				return
			}
		}
	}()

	total, batches, err := LoadBatches(ctx, log, ds.Names(), rows, batchSize, repo.CopyFrom)
	cancel()
	<-done

	metrics.RecordRow(job, "exported", total)
	metrics.RecordBatches(job, batches)
	if err != nil {
		return total, fmt.Errorf("storage: export: %w", err)
	}
	log.Info("export finished", zap.Int64("rows", total), zap.Int64("batches", batches))
	return total, nil
}

// Row returns row i of ds as positional values: float64 for numeric cells,
// string for object cells, nil when missing.
func Row(ds *frame.Dataset, i int) []any {
	cols := ds.Columns()
	out := make([]any, len(cols))
	for j, c := range cols {
		switch {
		case c.IsMissing(i):
			out[j] = nil
		case c.Kind() == frame.Numeric:
			out[j] = c.Float(i)
		default:
			out[j] = c.Str(i)
		}
	}
	return out
}
