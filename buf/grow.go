package buf

import "github.com/joshuapare/memkit/internal/bits"

// minCapacity is the smallest block a growing buffer allocates.
// Matches the smallest cell class real workloads ask for; anything
// lower churns reallocations for no win.
const minCapacity = 64

// growCapacity picks the next capacity for a buffer holding cur bytes
// of storage that needs room for need bytes. Doubles until need is
// covered; falls back to exactly need when doubling would overflow.
func growCapacity(cur, need int) int {
	newCap, ok := bits.MulOverflowSafe(cur, 2)
	if !ok {
		return need
	}
	if newCap < minCapacity {
		newCap = minCapacity
	}
	if newCap < need {
		newCap = need
	}
	return newCap
}
