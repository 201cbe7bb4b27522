package rope

import "github.com/ldenti/ropebwt2/internal/rle"

// InsertRun inserts runLen copies of symbol at position x (0 <= x <= rope.Len())
// and returns the BWT-style rank of the inserted run: the number of
// symbols strictly less than symbol anywhere in the rope, plus the number
// of occurrences of symbol strictly before the insertion point — i.e. the
// position the run would occupy in sorted-then-stable order.
//
// Descent is top-down and split-on-the-way-down: before stepping into any
// full child, the parent splits it first, so there is always room for the
// split that an overflowing insert at a deeper level might need to
// propagate upward.
func (rope *Rope) InsertRun(x int64, symbol byte, runLen int64) int64 {
	if symbol >= NumSymbols {
		panic("rope: symbol out of range")
	}
	if runLen <= 0 {
		panic("rope: run length must be positive")
	}
	if x < 0 || x > rope.Len() {
		panic("rope: position out of range")
	}

	var z int64
	for s := byte(0); s < symbol; s++ {
		z += rope.C[s]
	}

	rope.ensureRootNotFull()
	z += rope.insertAt(rope.root, x, symbol, runLen)
	rope.C[symbol] += runLen
	return z
}

// insertAt inserts runLen copies of symbol at symbol-offset offset within
// the subtree rooted at b, and returns the prefix count of symbol
// strictly before the insertion point, local to that subtree.
func (rope *Rope) insertAt(b *bucket, offset int64, symbol byte, runLen int64) int64 {
	idx, local := locate(b, offset)

	if b.isBottom {
		rec := &b.records[idx]
		newN, delta := rle.Insert(rec.childLeaf, rec.leafN, uint64(local), symbol, uint64(runLen))
		rec.leafN = newN
		rec.len += runLen
		rec.counts[symbol] += runLen
		if rec.leafN+rle.MinSpace > rope.BlockBytes {
			rope.splitChild(b, idx)
		}
		return prefixCount(b, idx, symbol) + int64(delta)
	}

	child := b.records[idx].childBucket
	if child.n == rope.MaxChildren {
		rope.splitChild(b, idx)
		idx, local = relocateAfterSplit(b, idx, local)
		child = b.records[idx].childBucket
	}

	pre := prefixCount(b, idx, symbol)
	delta := rope.insertAt(child, local, symbol, runLen)
	b.records[idx].len += runLen
	b.records[idx].counts[symbol] += runLen
	return pre + delta
}
