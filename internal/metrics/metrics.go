// Package metrics records operational metrics for cleaning runs behind a
// small backend interface. The default backend is a no-op, so every call is
// safe without configuration; concrete systems live in subpackages
// (prompush, datadog) and are installed with SetBackend.
package metrics

import (
	"sync"
	"time"
)

// Metric names shared by every backend.
const (
	StageTotal           = "segprep_stage_total"
	StageDurationSeconds = "segprep_stage_duration_seconds"
	RowsTotal            = "segprep_rows_total"
	BatchesTotal         = "segprep_batches_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a duration-style value.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

// Nop returns a backend that discards everything.
func Nop() Backend { return nopBackend{} }

var (
	mu      sync.RWMutex
	backend Backend = nopBackend{}
)

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	mu.Lock()
	backend = b
	mu.Unlock()
}

func current() Backend {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// Flush delegates to the current backend.
func Flush() error {
	return current().Flush()
}

// RecordStep counts one stage execution and observes its duration.
func RecordStep(job, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{
		"job":    job,
		"stage":  stage,
		"status": status,
	}
	b := current()
	b.IncCounter(StageTotal, 1, lbls)
	b.ObserveHistogram(StageDurationSeconds, d.Seconds(), lbls)
}

// RecordRow adds delta to the row/cell counter for kind, e.g.
// "reduce_dropped", "imputed_cells" or "exported". Non-positive deltas are
// ignored.
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	current().IncCounter(RowsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordBatches counts export batches written to a sink.
func RecordBatches(job string, delta int64) {
	if delta <= 0 {
		return
	}
	current().IncCounter(BatchesTotal, float64(delta), Labels{
		"job": job,
	})
}
