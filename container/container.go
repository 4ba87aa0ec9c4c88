// Package container implements the wire format the engine reads and
// writes: a sequence of length-prefixed frames, terminated by a clean EOF
// on the underlying stream (spec §6).
//
//	frame  := length:u32-LE  payload:byte[length]
//	stream := frame*  EOF
//
// The format carries no magic number, codec tag, checksum, or total
// length — it is private to this engine and not interchangeable with any
// standard single-stream codec output (spec §1 Non-goals).
package container

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/arloliu/pipezip/errs"
)

// WriteFrame writes one frame to w. payload must be non-empty; a
// zero-length frame is ill-formed per the container invariant in spec §6.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: refusing to write a zero-length frame", errs.ErrSinkIO)
	}

	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(payload)))

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrSinkIO, err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrSinkIO, err)
	}

	return nil
}

// ReadFrameLength reads the next frame's length prefix from r.
//
// ok is false with a nil error on a clean end of stream (no bytes of a new
// prefix were read). A read that stops partway through the 4-byte prefix
// is a TruncatedFrame error, never a silent success. A zero length prefix
// is rejected as BadData: the format requires every frame to carry at
// least one payload byte.
func ReadFrameLength(r io.Reader) (length uint32, ok bool, err error) {
	var hdr [4]byte

	n, err := io.ReadFull(r, hdr[:])
	switch {
	case err == nil:
		// fall through to validation below
	case err == io.EOF && n == 0:
		return 0, false, nil
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return 0, false, fmt.Errorf("%w: length prefix cut short: %v", errs.ErrTruncatedFrame, err)
	default:
		return 0, false, fmt.Errorf("%w: %v", errs.ErrSourceIO, err)
	}

	length = binary.LittleEndian.Uint32(hdr[:])
	if length == 0 {
		return 0, false, fmt.Errorf("%w: zero-length frame", errs.ErrBadData)
	}

	return length, true, nil
}

// ReadFramePayload reads exactly length bytes into a freshly allocated
// buffer. Any short read here is a TruncatedFrame error: ReadFrameLength
// has already succeeded, so the stream ending before the declared payload
// arrives always means truncation, never a clean EOF.
func ReadFramePayload(r io.Reader, length uint32) ([]byte, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: payload cut short: %v", errs.ErrTruncatedFrame, err)
	}

	return buf, nil
}

// ReadFramePayloadInto reads exactly len(dst) bytes into a caller-owned
// buffer, avoiding the per-frame allocation ReadFramePayload makes. The
// engine uses this to read compressed frames straight into a pooled
// buffer during decompression.
func ReadFramePayloadInto(r io.Reader, dst []byte) error {
	if _, err := io.ReadFull(r, dst); err != nil {
		return fmt.Errorf("%w: payload cut short: %v", errs.ErrTruncatedFrame, err)
	}

	return nil
}
