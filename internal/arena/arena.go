// Package arena implements bump allocation over large fixed-size chunks.
//
// Both the bucket arena and the leaf-byte arena of the rope never free a
// single object: the whole structure is released at once, or not at all,
// for the lifetime of the process. That lets allocation degrade to a
// cursor bump inside the current chunk, falling back to a fresh chunk only
// when the current one is exhausted — the same trade a C mempool makes
// when it hands out node_t slabs instead of calling malloc per node.
package arena

// ChunkBytes is the size of one underlying allocation, mirroring the
// 1 MiB mempool chunk used for rope node and leaf storage.
const ChunkBytes = 1 << 20

// Bytes is a bump allocator for byte slices of any requested length, used
// for the rope's leaf (run-length-encoded) buffers.
type Bytes struct {
	chunks [][]byte
	cur    []byte
}

// Alloc returns a zeroed slice of length n, carved from the current chunk
// or a freshly grown one. The returned slice is never resized in place by
// the caller beyond its original length; growth always goes through Alloc.
func (b *Bytes) Alloc(n int) []byte {
	if n > len(b.cur) {
		size := ChunkBytes
		if n > size {
			size = n
		}
		b.cur = make([]byte, size)
		b.chunks = append(b.chunks, b.cur)
	}
	buf := b.cur[:n:n]
	b.cur = b.cur[n:]
	return buf
}

// chunkElems bounds how many elements of T are carved from one slab
// before a new slab is grown. Bucket records are small fixed-size
// structs, so a few thousand per chunk keeps allocation rare without
// wasting much memory on partially used slabs.
const chunkElems = 4096

// Arena is a slab allocator for a fixed-size value type T. It hands out
// pointers and slices into a shared backing slice rather than one heap
// object per call, the same way the original node mempool carves node_t
// structs out of a shared 1 MiB chunk.
type Arena[T any] struct {
	slab []T
}

// Alloc returns a pointer to a freshly zeroed T, growing the arena with a
// new slab when the current one is full.
func (a *Arena[T]) Alloc() *T {
	return &a.AllocSlice(1)[0]
}

// AllocSlice returns a zeroed slice of n T values, carved from the
// current slab or a freshly grown one — the slice-valued sibling of
// Bytes.Alloc, used for payloads (such as a bucket's record array) whose
// size is fixed per arena but larger than one element.
func (a *Arena[T]) AllocSlice(n int) []T {
	if n > len(a.slab) {
		size := chunkElems
		if n > size {
			size = n
		}
		a.slab = make([]T, size)
	}
	s := a.slab[:n:n]
	a.slab = a.slab[n:]
	return s
}
