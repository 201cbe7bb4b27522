package rope

import "github.com/ldenti/ropebwt2/internal/rle"

// NumSymbols is the size of the alphabet a Rope indexes over. Symbol 0 is
// the sentinel used to terminate strings in InsertStringRLO/InsertMulti.
const NumSymbols = rle.NumSymbols

// record describes one child of a bucket: either another bucket (when the
// owning bucket's isBottom is false) or a leaf RLE buffer (when true). len
// and counts are the total symbol length and per-symbol occurrence counts
// of everything reachable through this record, kept in sync by every
// mutating operation on the way back up from a descent.
type record struct {
	childBucket *bucket
	childLeaf   []byte
	leafN       int // bytes of childLeaf actually in use

	len    int64
	counts [NumSymbols]int64
}

// bucket is a node of the B+ tree: a bounded array of child records plus
// the bucket-wide fields spec.md's design notes recommend promoting off
// the first record (count, and whether the children are leaves).
type bucket struct {
	n        int
	isBottom bool
	records  []record // len == cap == Rope.MaxChildren
}

func (rope *Rope) newBucket(isBottom bool) *bucket {
	b := rope.bucketArena.Alloc()
	b.n = 0
	b.isBottom = isBottom
	b.records = rope.recordArena.AllocSlice(rope.MaxChildren)
	return b
}

func (rope *Rope) allocLeaf() []byte {
	return rope.leafArena.Alloc(rope.BlockBytes)
}

func recount(b *bucket) (length int64, counts [NumSymbols]int64) {
	for i := 0; i < b.n; i++ {
		r := &b.records[i]
		length += r.len
		for s := range counts {
			counts[s] += r.counts[s]
		}
	}
	return length, counts
}

// prefixCount sums counts[a] across records[0:idx] of b.
func prefixCount(b *bucket, idx int, a byte) int64 {
	var c int64
	for i := 0; i < idx; i++ {
		c += b.records[i].counts[a]
	}
	return c
}

// prefixCounts sums the full per-symbol count vector across records[0:idx].
func prefixCounts(b *bucket, idx int) [NumSymbols]int64 {
	var c [NumSymbols]int64
	for i := 0; i < idx; i++ {
		for s := range c {
			c[s] += b.records[i].counts[s]
		}
	}
	return c
}

// locate finds the record of b covering symbol-offset offset, searching
// from whichever end offset is closer to — the bidirectional search
// spec.md calls for within a node. It returns the chosen record index and
// the offset local to that record.
func locate(b *bucket, offset int64) (idx int, local int64) {
	var total int64
	for i := 0; i < b.n; i++ {
		total += b.records[i].len
	}
	if offset <= total-offset {
		var acc int64
		for i := 0; i < b.n; i++ {
			if offset <= acc+b.records[i].len {
				return i, offset - acc
			}
			acc += b.records[i].len
		}
	} else {
		acc := total
		for i := b.n - 1; i >= 0; i-- {
			lo := acc - b.records[i].len
			if offset >= lo {
				return i, offset - lo
			}
			acc = lo
		}
	}
	return b.n - 1, b.records[b.n-1].len
}

// ensureRootNotFull grows the tree by one level when the root is full, so
// that callers about to descend always find room to split a level below.
func (rope *Rope) ensureRootNotFull() {
	if rope.root.n < rope.MaxChildren {
		return
	}
	newRoot := rope.newBucket(false)
	length, counts := recount(rope.root)
	newRoot.n = 1
	newRoot.records[0] = record{childBucket: rope.root, len: length, counts: counts}
	rope.root = newRoot
	rope.splitChild(newRoot, 0)
}

// splitChild splits the child referenced by parent.records[idx] into two
// siblings, inserting the new sibling's record at idx+1. parent must have
// room (parent.n < rope.MaxChildren) before calling this.
//
// If parent.isBottom, the child is a leaf buffer: the split moves roughly
// the back half of its runs into a fresh buffer via the RLE codec. Else
// the child is itself a bucket, and the split moves the back half of its
// records into a freshly allocated sibling bucket.
func (rope *Rope) splitChild(parent *bucket, idx int) {
	if parent.n >= rope.MaxChildren {
		panic("rope: splitChild called on a full parent")
	}
	for i := parent.n; i > idx+1; i-- {
		parent.records[i] = parent.records[i-1]
	}
	parent.n++

	var sib record
	if parent.isBottom {
		rec := &parent.records[idx]
		right := rope.allocLeaf()
		leftN, rightN, leftC, rightC := rle.Split(rec.childLeaf, rec.leafN, right)
		rec.leafN = leftN
		rec.counts = toInt64Counts(leftC)
		rec.len = sumOf(rec.counts)

		sib.childLeaf = right
		sib.leafN = rightN
		sib.counts = toInt64Counts(rightC)
		sib.len = sumOf(sib.counts)
	} else {
		rec := &parent.records[idx]
		child := rec.childBucket
		half := child.n / 2
		moveFrom := child.n - half

		sibling := rope.newBucket(child.isBottom)
		copy(sibling.records[:half], child.records[moveFrom:child.n])
		sibling.n = half
		child.n = moveFrom

		rec.len, rec.counts = recount(child)
		sib.childBucket = sibling
		sib.len, sib.counts = recount(sibling)
	}
	parent.records[idx+1] = sib
}

func sumOf(counts [NumSymbols]int64) int64 {
	var t int64
	for _, c := range counts {
		t += c
	}
	return t
}

// relocateAfterSplit adjusts (idx, local) for a record that just had its
// child split: the content at local offset local used to live under
// records[idx] as a whole, but may now live under the newly inserted
// sibling at idx+1 if local falls past the reduced left half.
func relocateAfterSplit(b *bucket, idx int, local int64) (int, int64) {
	leftLen := b.records[idx].len
	if local <= leftLen {
		return idx, local
	}
	return idx + 1, local - leftLen
}
