package rope

import (
	"fmt"

	"github.com/ldenti/ropebwt2/internal/rle"
)

// checkInvariants walks the whole tree validating the structural
// invariants a correctly maintained Rope must hold: bucket fan-out never
// exceeds MaxChildren, every leaf's encoded size stays within BlockBytes,
// decoding a leaf reproduces its parent record's counts and length
// exactly, and those counts roll up consistently to the root and to
// Rope.C. It is test-support, not a stable public API.
func (rope *Rope) checkInvariants() error {
	if err := rope.checkBucket(rope.root, true); err != nil {
		return err
	}
	length, counts := recount(rope.root)
	if counts != rope.C {
		return fmt.Errorf("root counts %v do not match rope.C %v", counts, rope.C)
	}
	if length != rope.Len() {
		return fmt.Errorf("root length %d does not match rope.Len() %d", length, rope.Len())
	}
	return nil
}

func (rope *Rope) checkBucket(b *bucket, isRoot bool) error {
	if b.n > rope.MaxChildren {
		return fmt.Errorf("bucket has n=%d exceeding max_children=%d", b.n, rope.MaxChildren)
	}
	if !isRoot && b.n == 0 {
		return fmt.Errorf("non-root bucket has zero records")
	}
	for i := 0; i < b.n; i++ {
		rec := &b.records[i]
		if b.isBottom {
			if rec.leafN > len(rec.childLeaf) {
				return fmt.Errorf("leaf %d: leafN=%d exceeds buffer length %d", i, rec.leafN, len(rec.childLeaf))
			}
			if rec.leafN > rope.BlockBytes {
				return fmt.Errorf("leaf %d: encoded size %d exceeds block_bytes %d", i, rec.leafN, rope.BlockBytes)
			}
			decoded := rle.Count(rec.childLeaf, rec.leafN)
			var total int64
			for s, c := range decoded {
				if int64(c) != rec.counts[s] {
					return fmt.Errorf("leaf %d: decoded counts %v do not match record counts %v", i, decoded, rec.counts)
				}
				total += int64(c)
			}
			if total != rec.len {
				return fmt.Errorf("leaf %d: decoded length %d does not match record len %d", i, total, rec.len)
			}
		} else {
			if err := rope.checkBucket(rec.childBucket, false); err != nil {
				return err
			}
			length, counts := recount(rec.childBucket)
			if length != rec.len {
				return fmt.Errorf("record %d: child length %d does not match record len %d", i, length, rec.len)
			}
			if counts != rec.counts {
				return fmt.Errorf("record %d: child counts %v do not match record counts %v", i, counts, rec.counts)
			}
		}
	}
	return nil
}
