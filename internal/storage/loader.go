package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CopyFn inserts rows aligned to columns and reports how many were written.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// LoadBatches drains in, groups rows into batches of batchSize and calls
// copyFn per non-empty batch. It returns the running total and the first
// error; a canceled ctx returns (total, ctx.Err()). Progress is logged per
// flushed batch.
func LoadBatches(
	ctx context.Context,
	log *zap.Logger,
	columns []string,
	in <-chan []any,
	batchSize int,
	copyFn CopyFn,
) (total, batches int64, err error) {
	if batchSize <= 0 {
		return 0, 0, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, 0, fmt.Errorf("copyFn must not be nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	var (
		batch     = make([][]any, 0, batchSize)
		start     = time.Now()
		lastFlush = start
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := copyFn(ctx, columns, batch)
		total += n
		batch = batch[:0]
		if err != nil {
			log.Error("batch copy failed", zap.Int64("inserted", n), zap.Int64("total", total), zap.Error(err))
			return err
		}
		batches++
		now := time.Now()
		rps := float64(0)
		if d := now.Sub(lastFlush); d > 0 {
			rps = float64(n) / d.Seconds()
		}
		log.Debug("batch flushed",
			zap.Int64("batch", batches),
			zap.Int64("inserted", n),
			zap.Int64("total", total),
			zap.Float64("rows_per_sec", rps),
			zap.Duration("elapsed", now.Sub(start)),
		)
		lastFlush = now
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return total, batches, ctx.Err()
		case row, ok := <-in:
			if !ok {
				if err := ctx.Err(); err != nil {
					return total, batches, err
				}
				return total, batches, flush()
			}
			batch = append(batch, row)
			if len(batch) >= batchSize {
				if err := flush(); err != nil {
					return total, batches, err
				}
			}
		}
	}
}
