// Package pool provides the two free lists the engine needs: fixed-size
// chunk buffers for Job input/output, and codec contexts recycled across
// stream operations.
//
// Both pools are adapted from the same sync.Pool-backed design the teacher
// module uses for its payload buffers (internal/pool/byte_buffer_pool.go in
// the upstream mebo tree): lazily created on first Get, reset and returned
// on Put, discarded instead of pooled once they no longer fit the pool's
// size class.
package pool

import "sync"

// ChunkBufferPool pools fixed-capacity byte slices sized to one engine
// instance's chunk size (CHUNK_SIZE for compression input / decompression
// output, or the codec's Bound(CHUNK_SIZE) for compression output).
type ChunkBufferPool struct {
	pool sync.Pool
	size int
}

// NewChunkBufferPool creates a pool of buffers of the given size.
func NewChunkBufferPool(size int) *ChunkBufferPool {
	return &ChunkBufferPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				buf := make([]byte, size)
				return &buf
			},
		},
	}
}

// Get returns a buffer with length n, reslicing a pooled buffer when its
// capacity is at least n and allocating a fresh one otherwise. Compress
// asks for exactly the pool's configured size (a shorter final chunk is
// allocated directly by the caller, see SPEC_FULL.md §8 item 2), while
// Decompress asks for each frame's declared payload length.
func (p *ChunkBufferPool) Get(n int) []byte {
	bufp, _ := p.pool.Get().(*[]byte)
	buf := *bufp
	if cap(buf) < n {
		buf = make([]byte, n)
	} else {
		buf = buf[:n]
	}

	return buf
}

// Put returns buf to the pool. Buffers whose capacity is below this pool's
// size (for example a right-sized final chunk) are dropped rather than
// retained; larger buffers are kept.
func (p *ChunkBufferPool) Put(buf []byte) {
	if cap(buf) < p.size {
		return
	}
	buf = buf[:cap(buf)]
	p.pool.Put(&buf)
}
