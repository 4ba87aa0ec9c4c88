// Package engine implements the pipelined, ordered, bounded-concurrency
// streaming driver described in spec §4.2-§4.5: the Instance type wraps a
// Codec and a worker pool into the compress/decompress stream operations,
// keeping a sliding window of in-flight Jobs so chunks compress in
// parallel while their frames are written to the sink in input order.
package engine

import (
	"fmt"

	"github.com/arloliu/pipezip/codec"
	"github.com/arloliu/pipezip/internal/options"
	"github.com/arloliu/pipezip/internal/pool"
	"github.com/arloliu/pipezip/internal/workerpool"
)

// ChunkSize is the fixed size of an uncompressed chunk (spec §3).
const ChunkSize = 65536

// WindowSize is the fixed cap on in-flight jobs (spec §3). It bounds both
// the memory ceiling and the maximum parallelism one stream operation can
// expose, regardless of the worker pool's own size.
const WindowSize = 16

// Option configures an Instance at construction time.
type Option = options.Option[*Instance]

// WithWindowSize overrides the default WindowSize. Exposed mainly for the
// parallelism-correctness property (spec §8 item 7: round-trip must hold
// with the window reduced to 1 or raised to 64); production callers
// normally leave this at its default.
func WithWindowSize(n int) Option {
	return options.NoError(func(inst *Instance) {
		if n > 0 {
			inst.windowSize = n
		}
	})
}

// WithChunkSize overrides the default ChunkSize. Exposed for the same
// testing purpose as WithWindowSize; the spec treats CHUNK_SIZE as
// compile-time fixed, so production callers should not need this either.
func WithChunkSize(n int) Option {
	return options.NoError(func(inst *Instance) {
		if n > 0 {
			inst.chunkSize = n
		}
	})
}

// Instance holds one codec's configuration — algorithm, level, the shared
// worker pool, and the context free lists for it — and exposes the
// Compress and Decompress stream operations (spec §4.1).
type Instance struct {
	codec codec.Codec
	level codec.Level
	pool  workerpool.Pool

	chunkSize   int
	windowSize  int
	outputBound int

	compressors   *pool.ContextPool[codec.CompressorContext]
	decompressors *pool.ContextPool[codec.DecompressorContext]

	// chunkBufs holds CHUNK_SIZE buffers: compression input and
	// decompression output both need exactly that capacity.
	chunkBufs *pool.ChunkBufferPool
	// boundBufs holds Bound(CHUNK_SIZE) buffers for compression output;
	// decompression also draws its per-frame input buffers from it.
	boundBufs *pool.ChunkBufferPool
}

// New creates a codec instance wired to pool, kind, and level. New is
// infallible with respect to the codec library — it allocates no codec
// contexts — and can only fail if kind is not one of the four supported
// CodecKinds.
func New(wp workerpool.Pool, kind codec.Kind, level codec.Level, opts ...Option) (*Instance, error) {
	c, err := codec.New(kind)
	if err != nil {
		return nil, err
	}

	inst := &Instance{
		codec:      c,
		level:      level,
		pool:       wp,
		chunkSize:  ChunkSize,
		windowSize: WindowSize,
	}
	if err := options.Apply(inst, opts...); err != nil {
		return nil, fmt.Errorf("engine: applying options: %w", err)
	}

	inst.outputBound = c.Bound(inst.chunkSize)

	inst.compressors = pool.NewContextPool(
		func() (codec.CompressorContext, error) { return c.NewCompressor(level) },
		func(ctx codec.CompressorContext) { ctx.Close() },
	)
	inst.decompressors = pool.NewContextPool(
		func() (codec.DecompressorContext, error) { return c.NewDecompressor() },
		func(ctx codec.DecompressorContext) { ctx.Close() },
	)
	inst.chunkBufs = pool.NewChunkBufferPool(inst.chunkSize)
	inst.boundBufs = pool.NewChunkBufferPool(inst.outputBound)

	return inst, nil
}

// Kind returns the instance's configured algorithm family.
func (inst *Instance) Kind() codec.Kind { return inst.codec.Kind() }

// Destroy releases every pooled codec context and internal buffer.
// Destroy must not be called while a stream operation is in flight.
func (inst *Instance) Destroy() {
	inst.compressors.Close()
	inst.decompressors.Close()
}
