// Package probe inspects a dataset and classifies its columns: numeric
// columns by storage kind, object columns by how many distinct values they
// hold. The classification is never cached; callers re-run Classify whenever
// the column set changes.
package probe

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"segprep/internal/frame"
)

// DefaultHighCardinality is the distinct-value threshold above which an
// object column is considered high-cardinality.
const DefaultHighCardinality = 100

// Bucket names the cardinality class of an object column.
type Bucket string

const (
	// BucketHigh holds more distinct values than the threshold.
	BucketHigh Bucket = "high_cardinality"
	// BucketLow holds more than two but fewer than threshold distinct values.
	BucketLow Bucket = "low_cardinality"
	// BucketBinary holds exactly two distinct values.
	BucketBinary Bucket = "binary"
	// BucketPlain covers everything else: constant or empty columns, and a
	// column whose distinct count equals the threshold exactly.
	BucketPlain Bucket = "categorical"
)

// Entry is one line of the classification report.
type Entry struct {
	Column   string
	Distinct int
	Bucket   Bucket
}

// Classification is the partition of a dataset's columns at one point in
// time.
type Classification struct {
	// Numeric lists every numeric column, in dataset order.
	Numeric []string
	// Categorical lists every object column, in dataset order.
	Categorical []string
	// LowCardinality and HighCardinality are the stored object buckets.
	// Binary and plain columns are reported only.
	LowCardinality  []string
	HighCardinality []string
	// Report has one entry per object column.
	Report []Entry
}

// Options controls Classify.
type Options struct {
	// HighCardinality is the distinct-value threshold. Zero selects
	// DefaultHighCardinality.
	HighCardinality int
	// Logger receives one line per object column. Nil disables logging.
	Logger *zap.Logger
}

// Bucketize applies the cardinality rule to a distinct count.
func Bucketize(distinct, threshold int) Bucket {
	switch {
	case distinct > threshold:
		return BucketHigh
	case distinct < threshold && distinct > 2:
		return BucketLow
	case distinct == 2:
		return BucketBinary
	default:
		return BucketPlain
	}
}

// Classify partitions the columns of ds. It never fails; an empty dataset
// yields an empty Classification.
func Classify(ds *frame.Dataset, opt Options) Classification {
	threshold := opt.HighCardinality
	if threshold <= 0 {
		threshold = DefaultHighCardinality
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var out Classification
	for _, c := range ds.Columns() {
		if c.Kind() == frame.Numeric {
			out.Numeric = append(out.Numeric, c.Name())
			continue
		}
		out.Categorical = append(out.Categorical, c.Name())

		n := c.Distinct()
		b := Bucketize(n, threshold)
		switch b {
		case BucketHigh:
			out.HighCardinality = append(out.HighCardinality, c.Name())
		case BucketLow:
			out.LowCardinality = append(out.LowCardinality, c.Name())
		}
		out.Report = append(out.Report, Entry{Column: c.Name(), Distinct: n, Bucket: b})

		log.Info(describe(c.Name(), n, b),
			zap.String("column", c.Name()),
			zap.Int("distinct", n),
			zap.String("bucket", string(b)),
		)
	}
	return out
}

// Binary returns the object columns reported as binary.
func (c Classification) Binary() []string {
	var out []string
	for _, e := range c.Report {
		if e.Bucket == BucketBinary {
			out = append(out, e.Column)
		}
	}
	return out
}

// Render returns the report as "column,distinct,bucket" lines, numeric
// columns listed with bucket "numeric" first.
func (c Classification) Render() []byte {
	var buf bytes.Buffer
	for _, n := range c.Numeric {
		fmt.Fprintf(&buf, "%s,,numeric\n", n)
	}
	for _, e := range c.Report {
		fmt.Fprintf(&buf, "%s,%d,%s\n", e.Column, e.Distinct, e.Bucket)
	}
	return buf.Bytes()
}

func describe(name string, n int, b Bucket) string {
	switch b {
	case BucketHigh:
		return fmt.Sprintf("%s has a high cardinality with %d unique values", name, n)
	case BucketLow:
		return fmt.Sprintf("%s has a relatively low cardinality with %d unique values", name, n)
	case BucketBinary:
		return fmt.Sprintf("%s is binary with %d unique values", name, n)
	default:
		return fmt.Sprintf("%s is a categorical variable with %d unique values", name, n)
	}
}
