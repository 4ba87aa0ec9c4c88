package codec

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/arloliu/pipezip/errs"
)

// zstdCodec implements Codec for Zstandard using valyala/gozstd's one-shot
// CompressLevel/Decompress functions — the same entry points the teacher
// package's zstd_cgo.go calls directly. gozstd maintains its own internal
// pool of cgo ZSTD_CCtx/ZSTD_DCtx handles (see the mhr3-gozstd reference
// implementation's cctxWrapper/dctxWrapper sync.Pool), so the
// CompressorContext/DecompressorContext this module pools is a lightweight
// Go-level handle that remembers the configured level; the expensive
// native context lives one layer further down, inside gozstd itself.
type zstdCodec struct{}

var _ Codec = (*zstdCodec)(nil)

func (zstdCodec) Kind() Kind { return Zstd }

// Bound mirrors zstd.h's ZSTD_COMPRESSBOUND macro (source size plus n>>8,
// plus a block-header margin that shrinks to zero once the input reaches
// 128 KiB) and adds a further 64 bytes of slack.
func (zstdCodec) Bound(n int) int {
	bound := n + (n >> 8)
	if n < 128<<10 {
		bound += (128<<10 - n) >> 11
	}

	return bound + 64
}

func (zstdCodec) NewCompressor(level Level) (CompressorContext, error) {
	return &zstdCompressorCtx{level: level.zstdLevel()}, nil
}

func (zstdCodec) NewDecompressor() (DecompressorContext, error) {
	return &zstdDecompressorCtx{}, nil
}

type zstdCompressorCtx struct {
	level int
}

var _ CompressorContext = (*zstdCompressorCtx)(nil)

func (c *zstdCompressorCtx) Compress(dst, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}

	out := gozstd.CompressLevel(dst[:0], src, c.level)
	n := copy(dst, out)
	if n < len(out) {
		return 0, fmt.Errorf("%w: output buffer too small (bound was wrong)", errs.ErrCompressFailed)
	}

	return n, nil
}

func (c *zstdCompressorCtx) Close() {}

type zstdDecompressorCtx struct{}

var _ DecompressorContext = (*zstdDecompressorCtx)(nil)

func (c *zstdDecompressorCtx) Decompress(dst, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}

	out, err := gozstd.Decompress(dst[:0], src)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrBadData, err)
	}

	n := copy(dst, out)
	if n < len(out) {
		return 0, fmt.Errorf("%w: output buffer too small for decompressed frame", errs.ErrBadData)
	}

	return n, nil
}

func (c *zstdDecompressorCtx) Close() {}
