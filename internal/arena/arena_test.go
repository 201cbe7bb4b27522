package arena

import "testing"

func TestBytesAllocZeroedAndDistinct(t *testing.T) {
	var b Bytes
	a := b.Alloc(8)
	for i := range a {
		if a[i] != 0 {
			t.Fatalf("byte %d not zeroed: %d", i, a[i])
		}
	}
	a[0] = 0xff
	c := b.Alloc(8)
	if c[0] == 0xff {
		t.Fatalf("second allocation aliases the first")
	}
}

func TestBytesAllocAcrossChunkBoundary(t *testing.T) {
	var b Bytes
	first := b.Alloc(ChunkBytes - 4)
	second := b.Alloc(16)
	if len(first) != ChunkBytes-4 || len(second) != 16 {
		t.Fatalf("unexpected lengths: %d, %d", len(first), len(second))
	}
	if len(b.chunks) != 2 {
		t.Fatalf("expected a new chunk to be grown, got %d chunks", len(b.chunks))
	}
}

func TestBytesAllocLargerThanChunk(t *testing.T) {
	var b Bytes
	big := b.Alloc(ChunkBytes + 100)
	if len(big) != ChunkBytes+100 {
		t.Fatalf("got %d", len(big))
	}
}

type record struct {
	n int
	c [6]uint64
}

func TestArenaAllocDistinctAndZeroed(t *testing.T) {
	var a Arena[record]
	r1 := a.Alloc()
	r1.n = 7
	r2 := a.Alloc()
	if r2.n != 0 {
		t.Fatalf("second allocation aliases the first: %+v", r2)
	}
}

func TestArenaGrowsAcrossSlabs(t *testing.T) {
	var a Arena[record]
	seen := make(map[*record]bool)
	for i := 0; i < chunkElems*2+5; i++ {
		r := a.Alloc()
		if seen[r] {
			t.Fatalf("allocation %d reused a pointer", i)
		}
		seen[r] = true
	}
}
