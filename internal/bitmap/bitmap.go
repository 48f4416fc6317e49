// internal/bitmap/bitmap.go

// Package bitmap provides a simple, memory-efficient bitset over row indexes.
// The frame package uses it to track which cells of an object column are
// missing without paying for a []bool per column.
package bitmap

import "math/bits"

// Bitmap represents a bitset backed by a slice of uint64 words.
// Each bit corresponds to a row index in [0, Len()).
type Bitmap struct {
	data []uint64
	size int
}

// New allocates a bitmap covering the row indexes [0, size).
//
// If size <= 0, no backing storage is allocated and the bitmap behaves as
// an empty set.
func New(size int) *Bitmap {
	if size <= 0 {
		return &Bitmap{}
	}
	return &Bitmap{
		data: make([]uint64, (size+63)/64),
		size: size,
	}
}

// Len returns the number of addressable indexes.
func (b *Bitmap) Len() int { return b.size }

// Add sets the bit for id. Negative or out-of-range ids are ignored.
func (b *Bitmap) Add(id int) {
	if id < 0 || id >= b.size {
		return
	}
	b.data[id/64] |= 1 << uint(id%64)
}

// Remove clears the bit for id. Negative or out-of-range ids are ignored.
func (b *Bitmap) Remove(id int) {
	if id < 0 || id >= b.size {
		return
	}
	b.data[id/64] &^= 1 << uint(id%64)
}

// Has reports whether the bit for id is set. Out-of-range ids return false.
func (b *Bitmap) Has(id int) bool {
	if id < 0 || id >= b.size {
		return false
	}
	return b.data[id/64]&(1<<uint(id%64)) != 0
}

// Count returns the number of set bits.
func (b *Bitmap) Count() int {
	n := 0
	for _, w := range b.data {
		n += bits.OnesCount64(w)
	}
	return n
}

// Clone returns an independent copy.
func (b *Bitmap) Clone() *Bitmap {
	out := &Bitmap{size: b.size}
	if len(b.data) > 0 {
		out.data = append([]uint64(nil), b.data...)
	}
	return out
}

// Select builds a new bitmap from the rows whose keep flag is true, preserving
// their relative order. len(keep) must equal Len().
func (b *Bitmap) Select(keep []bool) *Bitmap {
	n := 0
	for _, k := range keep {
		if k {
			n++
		}
	}
	out := New(n)
	j := 0
	for i, k := range keep {
		if !k {
			continue
		}
		if b.Has(i) {
			out.Add(j)
		}
		j++
	}
	return out
}
