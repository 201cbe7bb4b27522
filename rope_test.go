package rope

import (
	"math/rand"
	"testing"
)

// slowSeq is a brute-force reference model for InsertRun/Rank, checked
// against the real Rope under randomized differential testing — mirroring
// the teacher's hand-rolled "slow" reference model pattern.
type slowSeq []byte

func (s *slowSeq) insertRun(x int64, a byte, rl int64) int64 {
	run := make([]byte, rl)
	for i := range run {
		run[i] = a
	}
	head := append([]byte{}, (*s)[:x]...)
	tail := append([]byte{}, (*s)[x:]...)
	*s = append(append(head, run...), tail...)

	var z int64
	for _, sym := range *s {
		if sym < a {
			z++
		}
	}
	for i := int64(0); i < x; i++ {
		if (*s)[i] == a {
			z++
		}
	}
	return z
}

func (s slowSeq) rank(x int64) [NumSymbols]int64 {
	var c [NumSymbols]int64
	for i := int64(0); i < x; i++ {
		c[s[i]]++
	}
	return c
}

func TestInsertRunIntoEmptyRope(t *testing.T) {
	r := New(4, 32)
	z := r.InsertRun(0, 2, 1)
	if z != 0 {
		t.Fatalf("rank of first insert = %d, want 0", z)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	if err := r.checkInvariants(); err != nil {
		t.Fatal(err)
	}
}

func TestInsertRunAtStartAndEnd(t *testing.T) {
	r := New(4, 32)
	r.InsertRun(0, 1, 3)
	r.InsertRun(0, 2, 2) // prepend
	r.InsertRun(r.Len(), 3, 1) // append
	if err := r.checkInvariants(); err != nil {
		t.Fatal(err)
	}
	if r.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", r.Len())
	}
}

func TestInsertRunLongerThanBlockBytesStaysConsistent(t *testing.T) {
	// A single run's encoded size grows logarithmically with its length, so
	// one huge run need not itself force a leaf split — but the tree must
	// stay internally consistent regardless.
	r := New(4, 32)
	r.InsertRun(0, 4, 500)
	if err := r.checkInvariants(); err != nil {
		t.Fatal(err)
	}
	if r.Len() != 500 {
		t.Fatalf("Len() = %d, want 500", r.Len())
	}
	if r.C[4] != 500 {
		t.Fatalf("C[4] = %d, want 500", r.C[4])
	}
}

func TestRepeatedInsertAtSplitThreshold(t *testing.T) {
	r := New(4, 32)
	for i := 0; i < 200; i++ {
		r.InsertRun(r.Len(), byte(i%5)+1, 1)
		if err := r.checkInvariants(); err != nil {
			t.Fatalf("after insert %d: %v", i, err)
		}
	}
}

func TestInsertRunAndRankDifferential(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := New(4, 40)
	var slow slowSeq

	for i := 0; i < 500; i++ {
		x := int64(0)
		if len(slow) > 0 {
			x = int64(rng.Intn(len(slow) + 1))
		}
		a := byte(rng.Intn(NumSymbols-1)) + 1
		rl := int64(rng.Intn(3) + 1)

		gotZ := r.InsertRun(x, a, rl)
		wantZ := slow.insertRun(x, a, rl)
		if gotZ != wantZ {
			t.Fatalf("insert %d: rank = %d, want %d", i, gotZ, wantZ)
		}
		if err := r.checkInvariants(); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}

		qx := int64(rng.Intn(len(slow) + 1))
		got := r.Rank(qx)
		want := slow.rank(qx)
		if got != want {
			t.Fatalf("rank(%d) after insert %d = %v, want %v", qx, i, got, want)
		}
	}
}

func TestRank2MatchesTwoSeparateRanks(t *testing.T) {
	r := New(4, 32)
	for i := 0; i < 100; i++ {
		r.InsertRun(r.Len(), byte(i%5)+1, 1)
	}
	cx, cy := r.Rank2(10, 70)
	wx := r.Rank(10)
	wy := r.Rank(70)
	if cx != wx || cy != wy {
		t.Fatalf("Rank2(10,70) = %v/%v, want %v/%v", cx, cy, wx, wy)
	}
}

func TestInsertStringRLOProducesSentinelTerminatedLength(t *testing.T) {
	r := New(4, 32)
	s := []byte{1, 2, 3, 2, 1}
	r.InsertStringRLO(s)
	if r.Len() != int64(len(s))+1 {
		t.Fatalf("Len() = %d, want %d", r.Len(), len(s)+1)
	}
	if r.C[0] != 1 {
		t.Fatalf("C[0] = %d, want 1 sentinel", r.C[0])
	}
	if err := r.checkInvariants(); err != nil {
		t.Fatal(err)
	}
}

func TestInsertStringRLOMultipleStrings(t *testing.T) {
	r := New(4, 32)
	strs := [][]byte{
		{1, 2, 3},
		{2, 1, 1, 4},
		{3, 3, 2, 1},
	}
	for _, s := range strs {
		r.InsertStringRLO(s)
		if err := r.checkInvariants(); err != nil {
			t.Fatal(err)
		}
	}
	if r.C[0] != int64(len(strs)) {
		t.Fatalf("C[0] = %d, want %d", r.C[0], len(strs))
	}
}

func TestInsertStringIOAppendsInOrder(t *testing.T) {
	r := New(4, 32)
	r.InsertStringIO([]byte{1, 1, 1})
	r.InsertStringIO([]byte{2, 2})
	if r.C[0] != 2 {
		t.Fatalf("C[0] = %d, want 2", r.C[0])
	}
	if err := r.checkInvariants(); err != nil {
		t.Fatal(err)
	}
}

func TestCloseIsSafeAfterUse(t *testing.T) {
	r := New(4, 32)
	r.InsertRun(0, 1, 1)
	r.Close()
}
