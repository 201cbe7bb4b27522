package rope

// InsertStringRLO inserts s — a sequence of symbols in [1, NumSymbols),
// with no embedded sentinel — into the rope in reverse-lexicographic
// insertion order and terminates it with a sentinel run of length 1. This
// is the online algorithm for building a Burrows-Wheeler transform one
// string at a time: the pair (l, u) tracks the interval of existing rows
// that share the suffix of s processed so far, narrowed one character at
// a time via Rank2, until the suffix departs from every existing row, at
// which point the remainder of s is inserted directly.
func (rope *Rope) InsertStringRLO(s []byte) {
	l, u := int64(0), rope.C[0]
	for i := 0; i < len(s); i++ {
		c := s[i]
		tl, tu := rope.Rank2(l, u)
		for a := byte(0); a < c; a++ {
			l += tu[a] - tl[a]
		}
		if tl[c] < tu[c] {
			rope.InsertRun(l, c, 1)
			var cnt int64
			for a := byte(0); a < c; a++ {
				cnt += rope.C[a]
			}
			l = cnt + tl[c] + 1
			u = cnt + tu[c] + 1
		} else {
			rope.insertStringCore(s[i:], l)
			return
		}
	}
	rope.InsertRun(l, 0, 1)
}

// InsertStringIO inserts s in input order rather than in
// reverse-lexicographic order: its first symbol goes at row C[0], just past
// the sentinel rows of the strings already present, so the new string sorts
// after all of them. It is InsertStringRLO's simpler sibling, sharing the
// same underlying primitive.
func (rope *Rope) InsertStringIO(s []byte) {
	rope.insertStringCore(s, rope.C[0])
}

// insertStringCore inserts every symbol of s starting at position x; each
// following symbol goes at the rank returned by the previous insert plus
// one, and a sentinel run of length 1 ends the string.
func (rope *Rope) insertStringCore(s []byte, x int64) {
	for _, c := range s {
		x = rope.InsertRun(x, c, 1) + 1
	}
	rope.InsertRun(x, 0, 1)
}
