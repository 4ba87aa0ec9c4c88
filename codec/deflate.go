package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/arloliu/pipezip/errs"
)

// deflateCodec implements Codec for the three framings that share a single
// klauspost/compress/flate engine underneath: raw Deflate, Gzip, and Zlib.
// Framing is selected at call time from the Kind recorded at construction,
// per spec §9's "tagged variant + single interface" design note.
type deflateCodec struct {
	kind Kind
}

var _ Codec = (*deflateCodec)(nil)

func (c *deflateCodec) Kind() Kind { return c.kind }

// Bound mirrors the zlib_strategy formula from the wider compress.strategy
// family in the example corpus: source length plus worst-case stored-block
// overhead, plus framing bytes for whichever container this instance adds.
func (c *deflateCodec) Bound(n int) int {
	bound := n + (n >> 12) + (n >> 14) + (n >> 25) + 11
	switch c.kind {
	case Gzip:
		return bound + 18 // 10-byte header + 8-byte CRC32/ISIZE trailer
	case Zlib:
		return bound + 6 // 2-byte header + 4-byte Adler32 trailer
	default:
		return bound
	}
}

func (c *deflateCodec) NewCompressor(level Level) (CompressorContext, error) {
	nativeLevel := level.deflateLevel()

	ctx := &deflateCompressorCtx{kind: c.kind, level: nativeLevel}

	var err error
	switch c.kind {
	case Deflate:
		ctx.fw, err = flate.NewWriter(io.Discard, nativeLevel)
	case Gzip:
		ctx.gw, err = gzip.NewWriterLevel(io.Discard, nativeLevel)
	case Zlib:
		ctx.zw, err = zlib.NewWriterLevel(io.Discard, nativeLevel)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s writer: %v", errs.ErrCodecInit, c.kind, err)
	}

	return ctx, nil
}

func (c *deflateCodec) NewDecompressor() (DecompressorContext, error) {
	return &deflateDecompressorCtx{kind: c.kind}, nil
}

// deflateCompressorCtx holds exactly one of fw/gw/zw, selected by kind at
// construction. Invariant the pool relies on: the context is used by at
// most one job at a time, so Reset-between-calls never races.
type deflateCompressorCtx struct {
	kind  Kind
	level int
	fw    *flate.Writer
	gw    *gzip.Writer
	zw    *zlib.Writer
}

var _ CompressorContext = (*deflateCompressorCtx)(nil)

// sliceWriter is an io.Writer over a fixed, caller-owned buffer. Writes
// past capacity mean the caller's Bound() was wrong, which this module
// treats as a compression failure rather than growing the slice — the
// engine never expects a chunk's output buffer to need resizing.
type sliceWriter struct {
	buf []byte
	n   int
}

func (w *sliceWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > len(w.buf) {
		return 0, fmt.Errorf("%w: output buffer too small (bound was wrong)", errs.ErrCompressFailed)
	}
	copy(w.buf[w.n:], p)
	w.n += len(p)

	return len(p), nil
}

func (c *deflateCompressorCtx) Compress(dst, src []byte) (int, error) {
	w := &sliceWriter{buf: dst}

	var err error
	switch c.kind {
	case Deflate:
		c.fw.Reset(w)
		if _, err = c.fw.Write(src); err == nil {
			err = c.fw.Close()
		}
	case Gzip:
		c.gw.Reset(w)
		if _, err = c.gw.Write(src); err == nil {
			err = c.gw.Close()
		}
	case Zlib:
		c.zw.Reset(w)
		if _, err = c.zw.Write(src); err == nil {
			err = c.zw.Close()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrCompressFailed, err)
	}

	return w.n, nil
}

func (c *deflateCompressorCtx) Close() {
	c.fw, c.gw, c.zw = nil, nil, nil
}

// deflateDecompressorCtx lazily creates its reader on the first Decompress
// call: gzip.NewReader and zlib.NewReader both validate a header eagerly,
// so unlike the compressor side there is no header-less "empty" reader to
// construct ahead of having real frame bytes. Every call after the first
// reuses the reader via its Resetter interface.
type deflateDecompressorCtx struct {
	kind    Kind
	fr      io.ReadCloser
	gr      *gzip.Reader
	zr      io.ReadCloser
	copyBuf []byte
}

var _ DecompressorContext = (*deflateDecompressorCtx)(nil)

func (c *deflateDecompressorCtx) Decompress(dst, src []byte) (int, error) {
	if c.copyBuf == nil {
		c.copyBuf = make([]byte, 32*1024)
	}

	sr := bytes.NewReader(src)
	w := &sliceWriter{buf: dst}

	var (
		r   io.Reader
		err error
	)
	switch c.kind {
	case Deflate:
		if c.fr == nil {
			c.fr = flate.NewReader(sr)
		} else {
			err = c.fr.(flate.Resetter).Reset(sr, nil)
		}
		r = c.fr
	case Gzip:
		if c.gr == nil {
			c.gr, err = gzip.NewReader(sr)
		} else {
			err = c.gr.Reset(sr)
		}
		r = c.gr
	case Zlib:
		if c.zr == nil {
			c.zr, err = zlib.NewReader(sr)
		} else {
			err = c.zr.(zlib.Resetter).Reset(sr, nil)
		}
		r = c.zr
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrBadData, err)
	}

	n, err := io.CopyBuffer(w, r, c.copyBuf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrBadData, err)
	}

	return int(n), nil
}

func (c *deflateDecompressorCtx) Close() {
	if c.gr != nil {
		_ = c.gr.Close()
	}
	if c.zr != nil {
		_ = c.zr.Close()
	}
	c.fr, c.gr, c.zr = nil, nil, nil
}
