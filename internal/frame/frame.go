// Package frame implements the in-memory table the cleaning pipeline works
// on. A Dataset is an ordered set of named, equally long columns; callers
// address columns by name and treat position as presentation only.
//
// Numeric columns store float64 with NaN as the missing marker. Object
// columns store strings and track missing cells in a bitmap, so an empty
// string and a missing cell stay distinguishable.
package frame

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/zeebo/xxh3"
)

// Dataset is a mutable table of named columns. It is not safe for concurrent
// mutation.
type Dataset struct {
	cols  []*Column
	index map[string]int
	rows  int
}

// New builds a Dataset from cols. All columns must have the same length and
// unique names.
func New(cols ...*Column) (*Dataset, error) {
	d := &Dataset{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if _, dup := d.index[c.Name()]; dup {
			return nil, fmt.Errorf("frame: duplicate column %q", c.Name())
		}
		if err := d.Set(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.rows }

// Width returns the number of columns.
func (d *Dataset) Width() int { return len(d.cols) }

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.cols))
	for i, c := range d.cols {
		out[i] = c.Name()
	}
	return out
}

// Columns returns the columns in order. The slice is a copy; the columns are
// shared.
func (d *Dataset) Columns() []*Column {
	return append([]*Column(nil), d.cols...)
}

// Col returns the column called name.
func (d *Dataset) Col(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.cols[i], true
}

// Has reports whether a column called name exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Set replaces the column with the same name, or appends c when no such
// column exists. c must match the dataset's row count unless the dataset has
// no columns yet.
func (d *Dataset) Set(c *Column) error {
	if len(d.cols) > 0 && c.Len() != d.rows {
		return fmt.Errorf("frame: column %q has %d rows, dataset has %d", c.Name(), c.Len(), d.rows)
	}
	if len(d.cols) == 0 {
		d.rows = c.Len()
	}
	if i, ok := d.index[c.Name()]; ok {
		d.cols[i] = c
		return nil
	}
	d.index[c.Name()] = len(d.cols)
	d.cols = append(d.cols, c)
	return nil
}

// Drop removes the named columns and returns the names that were present.
// Unknown names are ignored.
func (d *Dataset) Drop(names ...string) []string {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	var dropped []string
	kept := d.cols[:0]
	for _, c := range d.cols {
		if _, ok := drop[c.Name()]; ok {
			dropped = append(dropped, c.Name())
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(d.cols); i++ {
		d.cols[i] = nil
	}
	d.cols = kept
	d.reindex()
	return dropped
}

// KeepRows retains the rows whose keep flag is true, in order.
func (d *Dataset) KeepRows(keep []bool) error {
	if len(keep) != d.rows {
		return fmt.Errorf("frame: keep mask has %d entries, dataset has %d rows", len(keep), d.rows)
	}
	n := 0
	for _, k := range keep {
		if k {
			n++
		}
	}
	for _, c := range d.cols {
		c.selectRows(keep)
	}
	d.rows = n
	return nil
}

// RowObserved returns the number of non-missing cells in row i.
func (d *Dataset) RowObserved(i int) int {
	n := 0
	for _, c := range d.cols {
		if !c.IsMissing(i) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		cols:  make([]*Column, len(d.cols)),
		index: make(map[string]int, len(d.cols)),
		rows:  d.rows,
	}
	for i, c := range d.cols {
		out.cols[i] = c.clone()
		out.index[c.Name()] = i
	}
	return out
}

// MissingCounts returns the number of missing cells per column, for every
// column.
func (d *Dataset) MissingCounts() map[string]int {
	out := make(map[string]int, len(d.cols))
	for _, c := range d.cols {
		out[c.Name()] = c.Missing()
	}
	return out
}

// TotalMissing returns the number of missing cells across the dataset.
func (d *Dataset) TotalMissing() int {
	n := 0
	for _, c := range d.cols {
		n += c.Missing()
	}
	return n
}

// Fingerprint hashes column names, kinds and cell contents in column order.
// Two datasets with equal fingerprints are, for practical purposes, equal.
// All missing cells hash the same regardless of kind.
func (d *Dataset) Fingerprint() uint64 {
	h := xxh3.New()
	var buf [8]byte
	for _, c := range d.cols {
		_, _ = h.WriteString(c.Name())
		_, _ = h.Write([]byte{0, byte(c.Kind())})
		for i := 0; i < c.Len(); i++ {
			if c.IsMissing(i) {
				_, _ = h.Write([]byte{0xff})
				continue
			}
			if c.Kind() == Numeric {
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c.Float(i)))
				_, _ = h.Write(buf[:])
				continue
			}
			s := c.Str(i)
			binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
			_, _ = h.Write(buf[:])
			_, _ = h.WriteString(s)
		}
	}
	return h.Sum64()
}

func (d *Dataset) reindex() {
	d.index = make(map[string]int, len(d.cols))
	for i, c := range d.cols {
		d.index[c.Name()] = i
	}
}
