package codec

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func allKinds() []Kind { return []Kind{Deflate, Gzip, Zlib, Zstd} }

func TestCodec_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":     {},
		"small":     []byte("hello, pipezip"),
		"repeated":  bytes.Repeat([]byte("abcabcabc "), 4096),
		"random_4k": randomBytes(4096),
	}

	for _, kind := range allKinds() {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			c, err := New(kind)
			require.NoError(t, err)

			for name, src := range payloads {
				src := src
				t.Run(name, func(t *testing.T) {
					cctx, err := c.NewCompressor(DefaultLevel())
					require.NoError(t, err)
					defer cctx.Close()

					dst := make([]byte, c.Bound(len(src)))
					n, err := cctx.Compress(dst, src)
					require.NoError(t, err)

					dctx, err := c.NewDecompressor()
					require.NoError(t, err)
					defer dctx.Close()

					out := make([]byte, len(src)+1024)
					m, err := dctx.Decompress(out, dst[:n])
					require.NoError(t, err)
					require.Equal(t, src, out[:m])
				})
			}
		})
	}
}

func TestCodec_ContextReuseAcrossCalls(t *testing.T) {
	for _, kind := range allKinds() {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			c, err := New(kind)
			require.NoError(t, err)

			cctx, err := c.NewCompressor(Fast())
			require.NoError(t, err)
			defer cctx.Close()

			dctx, err := c.NewDecompressor()
			require.NoError(t, err)
			defer dctx.Close()

			for i := 0; i < 5; i++ {
				src := randomBytes(256 * (i + 1))
				dst := make([]byte, c.Bound(len(src)))
				n, err := cctx.Compress(dst, src)
				require.NoError(t, err)

				out := make([]byte, len(src)+64)
				m, err := dctx.Decompress(out, dst[:n])
				require.NoError(t, err)
				require.Equal(t, src, out[:m])
			}
		})
	}
}

func TestCodec_DecompressRejectsCorruptInput(t *testing.T) {
	for _, kind := range allKinds() {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			c, err := New(kind)
			require.NoError(t, err)

			dctx, err := c.NewDecompressor()
			require.NoError(t, err)
			defer dctx.Close()

			garbage := randomBytes(64)
			out := make([]byte, 4096)
			_, err = dctx.Decompress(out, garbage)
			require.Error(t, err)
		})
	}
}

func TestNew_UnsupportedKind(t *testing.T) {
	_, err := New(Kind(99))
	require.Error(t, err)
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	rand.New(rand.NewSource(1)).Read(b)

	return b
}
