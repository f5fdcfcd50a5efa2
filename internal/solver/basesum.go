package solver

import (
	"math/bits"

	"github.com/lox/flipforbots/internal/deck"
)

const (
	maskBits  = deck.NumberValues
	maskCount = 1 << maskBits

	sevenUnique = 7
	sevenBonus  = 15
)

// BaseSumTable maps every 13-bit set of held number values to the sum of the
// values in the set. Built once and read-only afterwards, it turns the inner
// loop's base-sum computation into a single indexed load.
type BaseSumTable [maskCount]int

// NewBaseSumTable precomputes the table for all 2^13 masks.
func NewBaseSumTable() *BaseSumTable {
	t := &BaseSumTable{}
	for mask := 1; mask < maskCount; mask++ {
		// Lowest set bit plus the already-computed rest of the mask.
		t[mask] = bits.TrailingZeros16(uint16(mask)) + t[mask&(mask-1)]
	}
	return t
}

// Sum returns the sum of number values held in mask.
func (t *BaseSumTable) Sum(mask uint16) int {
	return t[mask]
}
