// Package codec implements the compression capability boundary described by
// the engine's design: a narrow, uniform interface implemented once per
// algorithm family, with no streaming state crossing calls.
//
// Two families are provided: the DEFLATE family (Deflate, Gzip, Zlib —
// selecting framing at call time on a single implementation) and Zstandard.
// Both are built on libraries already pulled in by this module's teacher
// package: klauspost/compress for the DEFLATE family, valyala/gozstd for
// Zstandard.
package codec

import "fmt"

// Kind identifies an algorithm family. It is a closed set: adding a fifth
// value requires a corresponding Codec implementation and is deliberately
// not supported by New.
type Kind uint8

const (
	// Deflate produces a raw DEFLATE stream (no zlib/gzip framing).
	Deflate Kind = iota + 1
	// Gzip produces a gzip-framed DEFLATE stream.
	Gzip
	// Zlib produces a zlib-framed DEFLATE stream.
	Zlib
	// Zstd produces a Zstandard frame.
	Zstd
)

// String returns a human-readable name for k.
func (k Kind) String() string {
	switch k {
	case Deflate:
		return "deflate"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case Zstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// CompressorContext is a codec-family-specific compression handle. It is
// created at a fixed level (the engine never varies the level of a
// long-lived context across calls) and is safe to reuse across many
// Compress calls as long as only one caller uses it at a time.
type CompressorContext interface {
	// Compress compresses src into dst and returns the number of bytes
	// written. The caller guarantees len(dst) >= Codec.Bound(len(src)).
	Compress(dst, src []byte) (int, error)
	// Close releases any resources held by the context. Close is called
	// at most once, and never while a Compress call is in flight.
	Close()
}

// DecompressorContext is a codec-family-specific decompression handle.
type DecompressorContext interface {
	// Decompress decompresses src into dst and returns the number of
	// bytes written. The caller guarantees dst is large enough to hold
	// the frame's original content.
	Decompress(dst, src []byte) (int, error)
	Close()
}

// Codec is implemented once per algorithm family. An engine instance holds
// exactly one Codec, fixed when the instance is created, and calls it (and
// the contexts it returns) through these interfaces, i.e. by dynamic
// dispatch.
type Codec interface {
	Kind() Kind
	// Bound returns an upper bound on the compressed size of an input of
	// length n. It never fails and requires no context.
	Bound(n int) int
	NewCompressor(level Level) (CompressorContext, error)
	NewDecompressor() (DecompressorContext, error)
}

// New returns the Codec implementation for kind.
func New(kind Kind) (Codec, error) {
	switch kind {
	case Deflate, Gzip, Zlib:
		return &deflateCodec{kind: kind}, nil
	case Zstd:
		return &zstdCodec{}, nil
	default:
		return nil, fmt.Errorf("codec: unsupported kind %d", kind)
	}
}
