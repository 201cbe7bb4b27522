package rope

import "github.com/ldenti/ropebwt2/internal/rle"

// Rank returns the per-symbol occurrence counts of the prefix of length x.
func (rope *Rope) Rank(x int64) [NumSymbols]int64 {
	if x < 0 || x > rope.Len() {
		panic("rope: position out of range")
	}
	return rankAt(rope.root, x)
}

// Rank2 returns the per-symbol occurrence counts of the prefixes of
// length x and y (x <= y) in a single descent, reusing a single leaf scan
// when x and y fall in the same leaf.
func (rope *Rope) Rank2(x, y int64) (cx, cy [NumSymbols]int64) {
	if x < 0 || y < x || y > rope.Len() {
		panic("rope: invalid Rank2 range")
	}
	return rank2At(rope.root, x, y)
}

func rankAt(b *bucket, offset int64) [NumSymbols]int64 {
	idx, local := locate(b, offset)
	pre := prefixCounts(b, idx)
	if b.isBottom {
		rec := &b.records[idx]
		leaf := rle.Rank1(rec.childLeaf, rec.leafN, uint64(local))
		return addCounts(pre, toInt64Counts(leaf))
	}
	inner := rankAt(b.records[idx].childBucket, local)
	return addCounts(pre, inner)
}

func rank2At(b *bucket, x, y int64) (cx, cy [NumSymbols]int64) {
	idxX, localX := locate(b, x)
	idxY, localY := locate(b, y)
	preX := prefixCounts(b, idxX)
	preY := prefixCounts(b, idxY)

	if b.isBottom {
		if idxX == idxY {
			leafX, leafY := rle.Rank2(b.records[idxX].childLeaf, b.records[idxX].leafN, uint64(localX), uint64(localY))
			return addCounts(preX, toInt64Counts(leafX)), addCounts(preY, toInt64Counts(leafY))
		}
		leafX := rle.Rank1(b.records[idxX].childLeaf, b.records[idxX].leafN, uint64(localX))
		leafY := rle.Rank1(b.records[idxY].childLeaf, b.records[idxY].leafN, uint64(localY))
		return addCounts(preX, toInt64Counts(leafX)), addCounts(preY, toInt64Counts(leafY))
	}

	if idxX == idxY {
		innerX, innerY := rank2At(b.records[idxX].childBucket, localX, localY)
		return addCounts(preX, innerX), addCounts(preY, innerY)
	}
	innerX := rankAt(b.records[idxX].childBucket, localX)
	innerY := rankAt(b.records[idxY].childBucket, localY)
	return addCounts(preX, innerX), addCounts(preY, innerY)
}

func addCounts(a, b [NumSymbols]int64) [NumSymbols]int64 {
	var c [NumSymbols]int64
	for i := range c {
		c[i] = a[i] + b[i]
	}
	return c
}

func toInt64Counts(c [rle.NumSymbols]uint64) [NumSymbols]int64 {
	var out [NumSymbols]int64
	for i := range c {
		out[i] = int64(c[i])
	}
	return out
}
