package bitmap

import "testing"

// TestNew verifies that New allocates enough 64-bit words to address every
// index in [0, size).
func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    int
		wantLen int
	}{
		{name: "zero size yields empty backing slice", size: 0, wantLen: 0},
		{name: "negative size yields empty backing slice", size: -3, wantLen: 0},
		{name: "single row", size: 1, wantLen: 1},
		{name: "exact word boundary", size: 64, wantLen: 1},
		{name: "one past word boundary", size: 65, wantLen: 2},
		{name: "large size", size: 150000, wantLen: (150000 + 63) / 64},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bm := New(tt.size)
			if got := len(bm.data); got != tt.wantLen {
				t.Fatalf("New(%d) data length = %d, want %d", tt.size, got, tt.wantLen)
			}
		})
	}
}

// TestAddRemoveHas verifies membership semantics, including the ignored
// negative and out-of-range ids.
func TestAddRemoveHas(t *testing.T) {
	t.Parallel()

	bm := New(200)
	if bm.Has(0) || bm.Has(63) || bm.Has(199) {
		t.Fatalf("bitmap should start empty")
	}

	for _, id := range []int{0, 63, 64, 199} {
		bm.Add(id)
	}
	bm.Add(-1)
	bm.Add(200)

	for _, id := range []int{0, 63, 64, 199} {
		if !bm.Has(id) {
			t.Fatalf("Has(%d) = false after Add", id)
		}
	}
	if bm.Has(-1) || bm.Has(200) {
		t.Fatalf("out-of-range ids must never be members")
	}
	if got := bm.Count(); got != 4 {
		t.Fatalf("Count() = %d, want 4", got)
	}

	bm.Remove(63)
	bm.Remove(500)
	if bm.Has(63) {
		t.Fatalf("Has(63) = true after Remove")
	}
	if got := bm.Count(); got != 3 {
		t.Fatalf("Count() = %d, want 3", got)
	}
}

// TestCloneIsIndependent verifies that mutating a clone leaves the original
// untouched.
func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	bm := New(10)
	bm.Add(3)
	cp := bm.Clone()
	cp.Add(4)
	cp.Remove(3)

	if !bm.Has(3) || bm.Has(4) {
		t.Fatalf("original mutated through clone")
	}
	if cp.Len() != 10 {
		t.Fatalf("clone Len() = %d, want 10", cp.Len())
	}
}

// TestSelect verifies that selected rows keep their bits in compacted order.
func TestSelect(t *testing.T) {
	t.Parallel()

	bm := New(5)
	bm.Add(1)
	bm.Add(4)

	got := bm.Select([]bool{true, true, false, false, true})
	if got.Len() != 3 {
		t.Fatalf("Select Len() = %d, want 3", got.Len())
	}
	if got.Has(0) || !got.Has(1) || !got.Has(2) {
		t.Fatalf("Select kept wrong bits: 0=%v 1=%v 2=%v", got.Has(0), got.Has(1), got.Has(2))
	}
}
