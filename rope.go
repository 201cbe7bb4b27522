// Package rope implements an ordered, dynamic multiset over a 6-symbol
// alphabet, backed by a B+ tree whose leaves are run-length-encoded byte
// blocks. It supports positional run insertion, two-position prefix rank
// queries, and both single-string and bulk multi-string insertion in
// reverse-lexicographic order — the core primitive behind online
// Burrows-Wheeler transform / FM-index construction.
package rope

import (
	"github.com/ldenti/ropebwt2/internal/arena"
)

// Rope is an ordered multiset over [0, NumSymbols). The zero value is not
// usable; construct one with New.
type Rope struct {
	root *bucket

	// C[a] is the total number of occurrences of symbol a across the
	// whole rope, as of the most recently completed insert.
	C [NumSymbols]int64

	MaxChildren int
	BlockBytes  int

	bucketArena arena.Arena[bucket]
	recordArena arena.Arena[record]
	leafArena   arena.Bytes
}

// New constructs an empty Rope. maxChildren is rounded up to the nearest
// even number no smaller than 4; blockBytes is rounded up to a multiple
// of 8 no smaller than 32.
func New(maxChildren, blockBytes int) *Rope {
	maxChildren = roundEvenUp(maxChildren)
	if maxChildren < 4 {
		maxChildren = 4
	}
	blockBytes = roundBlockBytes(blockBytes)

	rope := &Rope{MaxChildren: maxChildren, BlockBytes: blockBytes}
	rope.root = rope.newBucket(true)
	rope.root.records[0].childLeaf = rope.allocLeaf()
	rope.root.n = 1
	return rope
}

func roundEvenUp(n int) int {
	return ((n + 1) / 2) * 2
}

func roundBlockBytes(n int) int {
	n = ((n + 7) / 8) * 8
	if n < 32 {
		n = 32
	}
	return n
}

// Len returns the total number of symbols currently stored.
func (rope *Rope) Len() int64 {
	var t int64
	for _, c := range rope.C {
		t += c
	}
	return t
}

// Close drops the Rope's reference to its root bucket; the Rope must not be
// used afterwards. It exists for parity with the original implementation's
// explicit destructor. The arenas stay owned by the Rope value, and Go's
// garbage collector reclaims them once nothing references the Rope, so
// calling Close is optional and it is safe not to.
func (rope *Rope) Close() {
	rope.root = nil
}
