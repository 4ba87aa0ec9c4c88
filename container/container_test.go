package container

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pipezip/errs"
)

func TestWriteFrame_RejectsEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFrame(&buf, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrSinkIO)
}

func TestWriteAndReadFrame_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payloads := [][]byte{[]byte("one"), []byte("two-longer-payload"), {0x00, 0x01, 0x02}}

	for _, p := range payloads {
		require.NoError(t, WriteFrame(&buf, p))
	}

	for _, want := range payloads {
		length, ok, err := ReadFrameLength(&buf)
		require.NoError(t, err)
		require.True(t, ok)

		got, err := ReadFramePayload(&buf, length)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, ok, err := ReadFrameLength(&buf)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReadFrameLength_CleanEOF(t *testing.T) {
	_, ok, err := ReadFrameLength(bytes.NewReader(nil))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReadFrameLength_TruncatedPrefix(t *testing.T) {
	_, ok, err := ReadFrameLength(bytes.NewReader([]byte{0x01, 0x02}))
	require.False(t, ok)
	require.ErrorIs(t, err, errs.ErrTruncatedFrame)
}

func TestReadFrameLength_ZeroLengthIsBadData(t *testing.T) {
	_, ok, err := ReadFrameLength(bytes.NewReader([]byte{0, 0, 0, 0}))
	require.False(t, ok)
	require.ErrorIs(t, err, errs.ErrBadData)
}

func TestReadFramePayload_TruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("hello")))

	length, ok, err := ReadFrameLength(&buf)
	require.NoError(t, err)
	require.True(t, ok)

	truncated := io.LimitReader(&buf, int64(length)-1)
	_, err = ReadFramePayload(truncated, length)
	require.ErrorIs(t, err, errs.ErrTruncatedFrame)
}

type errSource struct{}

func (errSource) Read([]byte) (int, error) { return 0, errors.New("disk exploded") }

func TestReadFrameLength_SourceIOError(t *testing.T) {
	_, ok, err := ReadFrameLength(errSource{})
	require.False(t, ok)
	require.ErrorIs(t, err, errs.ErrSourceIO)
}
