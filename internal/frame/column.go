package frame

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"segprep/internal/bitmap"
)

// ErrNotNumeric is returned when an object column holds an observed value
// that cannot be parsed as a floating-point number.
var ErrNotNumeric = errors.New("value is not numeric")

// Kind is the semantic storage type of a column.
type Kind uint8

const (
	// Numeric columns hold float64 values; NaN marks a missing cell.
	Numeric Kind = iota + 1
	// Object columns hold strings; missing cells are tracked in a bitmap.
	Object
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Column is a named, typed vector of cells.
type Column struct {
	name string
	kind Kind
	nums []float64
	strs []string
	miss *bitmap.Bitmap
}

// NewNumeric returns a numeric column that takes ownership of vals.
// NaN entries are treated as missing.
func NewNumeric(name string, vals []float64) *Column {
	return &Column{name: name, kind: Numeric, nums: vals}
}

// NewObject returns an object column that takes ownership of vals.
// missing may be nil (no missing cells) or must have len(vals) entries.
func NewObject(name string, vals []string, missing []bool) *Column {
	m := bitmap.New(len(vals))
	for i, isMissing := range missing {
		if isMissing {
			m.Add(i)
		}
	}
	return &Column{name: name, kind: Object, strs: vals, miss: m}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the column's storage kind.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of cells.
func (c *Column) Len() int {
	if c.kind == Numeric {
		return len(c.nums)
	}
	return len(c.strs)
}

// IsMissing reports whether cell i is missing.
func (c *Column) IsMissing(i int) bool {
	if c.kind == Numeric {
		return math.IsNaN(c.nums[i])
	}
	return c.miss.Has(i)
}

// SetMissing marks cell i as missing.
func (c *Column) SetMissing(i int) {
	if c.kind == Numeric {
		c.nums[i] = math.NaN()
		return
	}
	c.strs[i] = ""
	c.miss.Add(i)
}

// Float returns the numeric value of cell i; NaN when missing or when the
// column is not numeric.
func (c *Column) Float(i int) float64 {
	if c.kind != Numeric {
		return math.NaN()
	}
	return c.nums[i]
}

// SetFloat stores v in cell i of a numeric column.
func (c *Column) SetFloat(i int, v float64) {
	if c.kind == Numeric {
		c.nums[i] = v
	}
}

// Str returns cell i rendered as a string. Missing cells render as "".
func (c *Column) Str(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	if c.kind == Numeric {
		return strconv.FormatFloat(c.nums[i], 'f', -1, 64)
	}
	return c.strs[i]
}

// SetStr stores s in cell i of an object column and clears its missing bit.
func (c *Column) SetStr(i int, s string) {
	if c.kind != Object {
		return
	}
	c.strs[i] = s
	c.miss.Remove(i)
}

// Value returns cell i as a driver-friendly value: nil when missing,
// float64 for numeric columns, string for object columns.
func (c *Column) Value(i int) any {
	if c.IsMissing(i) {
		return nil
	}
	if c.kind == Numeric {
		return c.nums[i]
	}
	return c.strs[i]
}

// Missing returns the number of missing cells.
func (c *Column) Missing() int {
	if c.kind == Object {
		return c.miss.Count()
	}
	n := 0
	for _, v := range c.nums {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Observed returns the number of non-missing cells.
func (c *Column) Observed() int { return c.Len() - c.Missing() }

// Distinct returns the number of distinct observed values. Missing cells are
// not counted.
func (c *Column) Distinct() int {
	if c.kind == Numeric {
		seen := make(map[float64]struct{})
		for _, v := range c.nums {
			if !math.IsNaN(v) {
				seen[v] = struct{}{}
			}
		}
		return len(seen)
	}
	seen := make(map[string]struct{})
	for i, s := range c.strs {
		if !c.miss.Has(i) {
			seen[s] = struct{}{}
		}
	}
	return len(seen)
}

// ObservedFloats returns the non-missing values of a numeric column in row
// order. Object columns yield nil.
func (c *Column) ObservedFloats() []float64 {
	if c.kind != Numeric {
		return nil
	}
	out := make([]float64, 0, len(c.nums))
	for _, v := range c.nums {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// ToNumeric converts an object column to numeric in place. Missing cells stay
// missing; every observed value must parse as a float. On error the column is
// left unchanged.
func (c *Column) ToNumeric() error {
	if c.kind == Numeric {
		return nil
	}
	vals := make([]float64, len(c.strs))
	for i, s := range c.strs {
		if c.miss.Has(i) {
			vals[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("column %s row %d: %q: %w", c.name, i, s, ErrNotNumeric)
		}
		vals[i] = f
	}
	c.kind = Numeric
	c.nums = vals
	c.strs = nil
	c.miss = nil
	return nil
}

func (c *Column) clone() *Column {
	out := &Column{name: c.name, kind: c.kind}
	if c.kind == Numeric {
		out.nums = append([]float64(nil), c.nums...)
		return out
	}
	out.strs = append([]string(nil), c.strs...)
	out.miss = c.miss.Clone()
	return out
}

func (c *Column) selectRows(keep []bool) {
	if c.kind == Numeric {
		out := c.nums[:0:0]
		for i, k := range keep {
			if k {
				out = append(out, c.nums[i])
			}
		}
		c.nums = out
		return
	}
	out := make([]string, 0, len(c.strs))
	for i, k := range keep {
		if k {
			out = append(out, c.strs[i])
		}
	}
	c.miss = c.miss.Select(keep)
	c.strs = out
}
