// Package pipezip provides a parallel block-compression engine: a uniform
// streaming interface wrapping two codec families — a DEFLATE family (raw
// deflate, gzip, zlib framings) and Zstandard — that splits a byte stream
// into fixed-size chunks, compresses or decompresses them concurrently on
// a caller-supplied worker pool, and writes a length-prefixed framed
// container that lets the reverse operation recover the original bytes
// exactly.
//
// # Basic Usage
//
// Compressing a stream:
//
//	import "github.com/arloliu/pipezip"
//	import "github.com/arloliu/pipezip/internal/workerpool"
//
//	wp := workerpool.NewFixedPool(0) // 0 = runtime.GOMAXPROCS(0)
//	defer wp.Close()
//
//	gz, err := pipezip.New(wp, pipezip.Gzip, pipezip.DefaultLevel())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gz.Destroy()
//
//	if err := gz.Compress(sourceFile, sinkFile); err != nil {
//	    log.Fatal(err)
//	}
//
// Decompressing the result uses the same Instance shape:
//
//	if err := gz.Decompress(compressedFile, outFile); err != nil {
//	    log.Fatal(err)
//	}
//
// # Package Structure
//
// This package is a thin façade over engine, codec, and
// internal/workerpool, mirroring the root façade file this module's
// teacher repository keeps over its own packages. For custom worker pool implementations or
// fine-grained control over window and chunk sizing, use those packages
// directly.
package pipezip

import (
	"io"

	"github.com/arloliu/pipezip/codec"
	"github.com/arloliu/pipezip/engine"
	"github.com/arloliu/pipezip/internal/workerpool"
)

// Re-exported codec kinds, so callers need only import this package for
// the common case.
const (
	Deflate = codec.Deflate
	Gzip    = codec.Gzip
	Zlib    = codec.Zlib
	Zstd    = codec.Zstd
)

// Kind identifies which codec family an Instance wraps.
type Kind = codec.Kind

// Level is a codec-independent compression level.
type Level = codec.Level

// Fastest, Fast, DefaultLevel, Good, and Best are preset Levels; Explicit
// bypasses the presets for a specific native codec level.
var (
	Fastest      = codec.Fastest
	Fast         = codec.Fast
	DefaultLevel = codec.DefaultLevel
	Good         = codec.Good
	Best         = codec.Best
	Explicit     = codec.Explicit
)

// Option configures an Instance at construction time.
type Option = engine.Option

// WithWindowSize and WithChunkSize override the engine's default window
// and chunk sizes. Exposed mainly for tests that need to exercise the
// pipeline at non-default sizes; production callers normally leave these
// at their defaults.
var (
	WithWindowSize = engine.WithWindowSize
	WithChunkSize  = engine.WithChunkSize
)

// Instance is a configured codec ready to compress or decompress streams.
// One Instance wraps exactly one (Kind, Level) pair and owns its own
// pooled codec contexts and chunk buffers; it does not own the worker
// pool it runs on, which a caller may share across many Instances.
type Instance = engine.Instance

// New creates an Instance of the given Kind and Level, running its stream
// operations on wp. The returned Instance must be Destroyed when no
// longer needed; wp's lifetime must strictly contain every Instance built
// on it, and wp itself must outlive any in-flight Compress or Decompress
// call.
func New(wp workerpool.Pool, kind Kind, level Level, opts ...Option) (*Instance, error) {
	return engine.New(wp, kind, level, opts...)
}

// Compress reads source in full, compressing it with inst onto sink. It
// is a convenience wrapper identical to inst.Compress(source, sink).
func Compress(inst *Instance, source io.Reader, sink io.Writer) error {
	return inst.Compress(source, sink)
}

// Decompress reads a pipezip container from source and writes the
// original bytes to sink. It is a convenience wrapper identical to
// inst.Decompress(source, sink).
func Decompress(inst *Instance, source io.Reader, sink io.Writer) error {
	return inst.Decompress(source, sink)
}
