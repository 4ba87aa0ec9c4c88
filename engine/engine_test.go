package engine

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pipezip/codec"
	"github.com/arloliu/pipezip/errs"
	"github.com/arloliu/pipezip/internal/workerpool"
)

func newTestInstance(t *testing.T, kind codec.Kind, opts ...Option) (*Instance, *workerpool.FixedPool) {
	t.Helper()
	wp := workerpool.NewFixedPool(4)
	inst, err := New(wp, kind, codec.Fast(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		inst.Destroy()
		wp.Close()
	})

	return inst, wp
}

func randBytes(n int, seed int64) []byte {
	b := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(b)

	return b
}

func roundTrip(t *testing.T, inst *Instance, src []byte) []byte {
	t.Helper()

	var compressed bytes.Buffer
	require.NoError(t, inst.Compress(bytes.NewReader(src), &compressed))

	var out bytes.Buffer
	require.NoError(t, inst.Decompress(bytes.NewReader(compressed.Bytes()), &out))

	return out.Bytes()
}

func TestEngine_RoundTrip_AllKinds(t *testing.T) {
	for _, kind := range []codec.Kind{codec.Deflate, codec.Gzip, codec.Zlib, codec.Zstd} {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			inst, _ := newTestInstance(t, kind)
			src := randBytes(500_000, 42)
			require.Equal(t, src, roundTrip(t, inst, src))
		})
	}
}

func TestEngine_RoundTrip_EmptyInput(t *testing.T) {
	inst, _ := newTestInstance(t, codec.Zstd)
	got := roundTrip(t, inst, nil)
	require.Empty(t, got)
}

func TestEngine_RoundTrip_ChunkBoundarySizes(t *testing.T) {
	inst, _ := newTestInstance(t, codec.Gzip, WithChunkSize(256))
	sizes := []int{0, 1, 255, 256, 257, 256*3 - 1, 256 * 3}

	for _, n := range sizes {
		n := n
		t.Run("", func(t *testing.T) {
			src := randBytes(n, int64(n)+1)
			require.Equal(t, src, roundTrip(t, inst, src))
		})
	}
}

func TestEngine_RoundTrip_WindowSizeVariants(t *testing.T) {
	for _, window := range []int{1, 2, 8, 64} {
		window := window
		t.Run("", func(t *testing.T) {
			inst, _ := newTestInstance(t, codec.Deflate, WithWindowSize(window), WithChunkSize(1024))
			src := randBytes(64*1024, int64(window))
			require.Equal(t, src, roundTrip(t, inst, src))
		})
	}
}

func TestEngine_Decompress_DetectsTruncation(t *testing.T) {
	inst, _ := newTestInstance(t, codec.Zlib)

	var compressed bytes.Buffer
	require.NoError(t, inst.Compress(bytes.NewReader(randBytes(10_000, 7)), &compressed))

	truncated := compressed.Bytes()[:compressed.Len()-3]

	var out bytes.Buffer
	err := inst.Decompress(bytes.NewReader(truncated), &out)
	require.Error(t, err)
}

func TestEngine_Decompress_DetectsCorruption(t *testing.T) {
	inst, _ := newTestInstance(t, codec.Zstd)

	var compressed bytes.Buffer
	require.NoError(t, inst.Compress(bytes.NewReader(randBytes(10_000, 9)), &compressed))

	corrupt := append([]byte(nil), compressed.Bytes()...)
	// Flip a byte inside the first frame's payload, past the 4-byte length
	// prefix, so the corruption lands inside codec-owned data.
	corrupt[6] ^= 0xFF

	var out bytes.Buffer
	err := inst.Decompress(bytes.NewReader(corrupt), &out)
	require.Error(t, err)
}

func TestEngine_ContextPoolReuse_BoundedByWindow(t *testing.T) {
	inst, _ := newTestInstance(t, codec.Gzip, WithChunkSize(64), WithWindowSize(4))
	src := randBytes(64*40, 11)

	var compressed bytes.Buffer
	require.NoError(t, inst.Compress(bytes.NewReader(src), &compressed))

	require.LessOrEqual(t, inst.compressors.Len(), 4)
}

// failAfterWriter returns ErrSinkIO-worthy failure after n successful
// writes, simulating a sink that dies mid-stream (spec §8 item 9).
type failAfterWriter struct {
	n int
}

func (w *failAfterWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, errors.New("simulated sink failure")
	}
	w.n--

	return len(p), nil
}

func TestEngine_Compress_SinkFailureCleansUpWithNoLeak(t *testing.T) {
	inst, _ := newTestInstance(t, codec.Gzip, WithChunkSize(64), WithWindowSize(4))
	src := randBytes(64*40, 13)

	sink := &failAfterWriter{n: 2}
	err := inst.Compress(bytes.NewReader(src), sink)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrSinkIO)

	// Every job spawned before the failure was still drained and its
	// context released rather than leaked, so the free list never grows
	// past the window.
	require.LessOrEqual(t, inst.compressors.Len(), 4)
}

func TestEngine_Decompress_SinkFailureCleansUpWithNoLeak(t *testing.T) {
	inst, _ := newTestInstance(t, codec.Gzip, WithChunkSize(64), WithWindowSize(4))
	src := randBytes(64*40, 17)

	var compressed bytes.Buffer
	require.NoError(t, inst.Compress(bytes.NewReader(src), &compressed))

	sink := &failAfterWriter{n: 2}
	err := inst.Decompress(bytes.NewReader(compressed.Bytes()), sink)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrSinkIO)

	require.LessOrEqual(t, inst.decompressors.Len(), 4)
}

func TestEngine_Compress_ParallelismAtPoolSizes(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		workers := workers
		t.Run("", func(t *testing.T) {
			wp := workerpool.NewFixedPool(workers)
			defer wp.Close()

			inst, err := New(wp, codec.Deflate, codec.Fast(), WithChunkSize(512))
			require.NoError(t, err)
			defer inst.Destroy()

			src := randBytes(512*50, int64(workers))
			require.Equal(t, src, roundTrip(t, inst, src))
		})
	}
}
