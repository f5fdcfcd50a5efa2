package solver

import "testing"

func TestBaseSumTable(t *testing.T) {
	table := NewBaseSumTable()

	// Exhaustive check against a direct bit walk.
	for mask := 0; mask < maskCount; mask++ {
		want := 0
		for v := 0; v < maskBits; v++ {
			if mask&(1<<v) != 0 {
				want += v
			}
		}
		if got := table.Sum(uint16(mask)); got != want {
			t.Fatalf("Sum(%#x) = %d, want %d", mask, got, want)
		}
	}
}

func TestBaseSumTableEdges(t *testing.T) {
	table := NewBaseSumTable()

	if got := table.Sum(0); got != 0 {
		t.Errorf("empty mask sums to %d, want 0", got)
	}
	// All 13 values held: 0+1+...+12 = 78.
	if got := table.Sum(maskCount - 1); got != 78 {
		t.Errorf("full mask sums to %d, want 78", got)
	}
}
