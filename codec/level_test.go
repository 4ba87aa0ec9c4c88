package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevel_DeflatePresets(t *testing.T) {
	cases := []struct {
		level Level
		want  int
	}{
		{Fastest(), 1},
		{Fast(), 3},
		{DefaultLevel(), 6},
		{Good(), 9},
		{Best(), 9}, // clamped: deflate family caps at klauspost's 1-9 range
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.level.deflateLevel())
	}
}

func TestLevel_ZstdPresets(t *testing.T) {
	cases := []struct {
		level Level
		want  int
	}{
		{Fastest(), 1},
		{Fast(), 3},
		{DefaultLevel(), 9},
		{Good(), 19},
		{Best(), 22},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.level.zstdLevel())
	}
}

func TestLevel_ExplicitClamps(t *testing.T) {
	require.Equal(t, 9, Explicit(50).deflateLevel())
	require.Equal(t, 1, Explicit(-5).deflateLevel())
	require.Equal(t, 22, Explicit(50).zstdLevel())
	require.Equal(t, 1, Explicit(0).zstdLevel())
}
