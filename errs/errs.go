// Package errs defines the sentinel error kinds shared by the pipezip
// codec, pool, and engine packages.
//
// Callers identify a failure's kind with errors.Is against the sentinels
// below; call sites that need additional context wrap a sentinel with
// fmt.Errorf("...: %w", errs.ErrBadData) rather than inventing new error
// values, so errors.Is keeps working across package boundaries.
package errs

import "errors"

var (
	// ErrSourceIO is returned when a read from the input source fails for
	// a reason other than a truncated frame (see ErrTruncatedFrame).
	ErrSourceIO = errors.New("pipezip: source read failed")

	// ErrSinkIO is returned when a write to the output sink fails.
	ErrSinkIO = errors.New("pipezip: sink write failed")

	// ErrTruncatedFrame is returned when a decompression stream ends
	// partway through a length prefix or a declared payload.
	ErrTruncatedFrame = errors.New("pipezip: truncated frame")

	// ErrCodecInit is returned when the underlying codec library fails to
	// allocate a compression or decompression context.
	ErrCodecInit = errors.New("pipezip: codec context allocation failed")

	// ErrCompressFailed is returned when a codec's one-shot compress call
	// reports a non-recoverable encoding error.
	ErrCompressFailed = errors.New("pipezip: compression failed")

	// ErrBadData is returned when a codec's one-shot decompress call
	// rejects its input as corrupt or foreign.
	ErrBadData = errors.New("pipezip: decompression rejected input")

	// ErrOutOfMemory is returned when a buffer or queue allocation fails.
	ErrOutOfMemory = errors.New("pipezip: allocation failed")
)

// Kind classifies an error for the engine's context-recycling policy
// (spec §7): CompressFailed and BadData taint their codec context because
// the underlying library's internal state may be inconsistent after such a
// failure; every other kind leaves the context eligible for reuse.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindSourceIO
	KindSinkIO
	KindTruncatedFrame
	KindCodecInit
	KindCompressFailed
	KindBadData
	KindOutOfMemory
)

// TaintsContext reports whether an error of this kind should cause the
// engine to destroy the codec context involved rather than return it to
// the free pool.
func (k Kind) TaintsContext() bool {
	return k == KindCompressFailed || k == KindBadData
}

// KindOf classifies err by the sentinel it wraps. Errors that wrap none of
// the sentinels above classify as KindUnknown.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrSourceIO):
		return KindSourceIO
	case errors.Is(err, ErrSinkIO):
		return KindSinkIO
	case errors.Is(err, ErrTruncatedFrame):
		return KindTruncatedFrame
	case errors.Is(err, ErrCodecInit):
		return KindCodecInit
	case errors.Is(err, ErrCompressFailed):
		return KindCompressFailed
	case errors.Is(err, ErrBadData):
		return KindBadData
	case errors.Is(err, ErrOutOfMemory):
		return KindOutOfMemory
	default:
		return KindUnknown
	}
}
