package rope

import (
	"container/heap"

	"github.com/bits-and-blooms/bitset"
)

// multiTask is one pending unit of work for InsertMulti: a contiguous
// slice ptr[b:e] of strings that share a common prefix already inserted
// up to depth, waiting to be partitioned by their next character and
// inserted at tree position l (within the interval [l, u) of rows that
// currently share that prefix).
type multiTask struct {
	l, u  int64
	b, e  int64
	depth int64
}

type taskHeap []multiTask

func (h taskHeap) Len() int            { return len(h) }
func (h taskHeap) Less(i, j int) bool  { return h[i].l < h[j].l }
func (h taskHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x interface{}) { *h = append(*h, x.(multiTask)) }
func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// symbolAt returns the symbol of s at depth, or the implicit terminating
// sentinel if depth has reached the end of s.
func symbolAt(s []byte, depth int64) byte {
	if depth < int64(len(s)) {
		return s[depth]
	}
	return 0
}

// InsertMulti bulk-inserts every string in strings — each a sequence of
// symbols in [1, NumSymbols) with no embedded sentinel — interleaving
// their insertion order exactly as repeated calls to InsertStringRLO
// would, but driving all of them through a single radix-partitioned,
// min-heap-ordered pass: at each step the task with the smallest pending
// tree position is popped, its strings are counting-sorted by their next
// character, each resulting group is inserted as one run, and a new task
// is queued per nonempty non-sentinel group to process the following
// character. This computes the same interleaving online-BWT construction
// produces one string at a time, without re-walking the tree once per
// character per string.
func (rope *Rope) InsertMulti(strings [][]byte) {
	if len(strings) == 0 {
		panic("rope: InsertMulti called with an empty buffer")
	}
	m := int64(len(strings))
	ptr := make([][]byte, m)
	copy(ptr, strings)

	h := &taskHeap{{l: 0, u: rope.C[0], b: 0, e: m, depth: 0}}
	heap.Init(h)

	for h.Len() > 0 {
		top := heap.Pop(h).(multiTask)
		n := top.e - top.b

		var c [NumSymbols]int64
		oracle := make([]byte, n)
		for i := int64(0); i < n; i++ {
			oracle[i] = symbolAt(ptr[top.b+i], top.depth)
			c[oracle[i]]++
		}

		var ac [NumSymbols]int64
		for a := byte(1); a < NumSymbols; a++ {
			ac[a] = ac[a-1] + c[a-1]
		}

		place := ac
		sorted := make([][]byte, n)
		for i := int64(0); i < n; i++ {
			sym := oracle[i]
			sorted[place[sym]] = ptr[top.b+i]
			place[sym]++
		}
		copy(ptr[top.b:top.e], sorted)

		tl, tu := rope.Rank2(top.l, top.u)

		var xOff [NumSymbols]int64
		for a := byte(1); a < NumSymbols; a++ {
			xOff[a] = xOff[a-1] + (tu[a-1] - tl[a-1])
		}

		active := bitset.New(NumSymbols)
		for a := byte(0); a < NumSymbols; a++ {
			if c[a] != 0 {
				active.Set(uint(a))
			}
		}
		for idx, ok := active.NextSet(0); ok; idx, ok = active.NextSet(idx + 1) {
			a := byte(idx)
			rope.InsertRun(top.l+xOff[a], a, c[a])
		}

		var ac2 int64
		for a := byte(0); a < NumSymbols; a++ {
			if a != 0 && active.Test(uint(a)) {
				heap.Push(h, multiTask{
					l:     ac2 + tl[a] + m,
					u:     ac2 + tu[a] + m,
					b:     top.b + ac[a],
					e:     top.b + ac[a] + c[a],
					depth: top.depth + 1,
				})
			}
			ac2 += rope.C[a]
		}
		m -= c[0]
	}
}
