package codec

// Level is a codec-independent compression level: one of five symbolic
// presets, or an explicit numeric escape hatch. Each Codec maps a Level to
// its own native range when a context is allocated (spec §3); the mapping
// is codec-private and happens once, at NewCompressor time.
type Level struct {
	preset      preset
	explicit    int
	explicitSet bool
}

type preset uint8

const (
	presetFastest preset = iota
	presetFast
	presetDefault
	presetGood
	presetBest
)

// Fastest favors speed over ratio.
func Fastest() Level { return Level{preset: presetFastest} }

// Fast is quicker than Default at some ratio cost.
func Fast() Level { return Level{preset: presetFast} }

// DefaultLevel is each codec's recommended balance of speed and ratio.
func DefaultLevel() Level { return Level{preset: presetDefault} }

// Good favors ratio over speed.
func Good() Level { return Level{preset: presetGood} }

// Best favors ratio over speed further still.
func Best() Level { return Level{preset: presetBest} }

// Explicit bypasses the presets and requests a specific native level. The
// value is clamped into the target codec's valid range rather than
// rejected, so the same Level works across families.
func Explicit(n int) Level { return Level{explicit: n, explicitSet: true} }

var deflatePresets = map[preset]int{
	presetFastest: 1,
	presetFast:    3,
	presetDefault: 6,
	presetGood:    9,
	presetBest:    12,
}

var zstdPresets = map[preset]int{
	presetFastest: 1,
	presetFast:    3,
	presetDefault: 9,
	presetGood:    19,
	presetBest:    22,
}

func (l Level) resolve(presets map[preset]int, min, max int) int {
	if l.explicitSet {
		n := l.explicit
		if n < min {
			n = min
		}
		if n > max {
			n = max
		}

		return n
	}

	return presets[l.preset]
}

// deflateLevel maps l onto the DEFLATE family's native 1-12 range. The
// DEFLATE family accepts 1-12 with presets 1/3/6/9/12 (spec §4.4); this
// module further maps 10-12 onto klauspost/compress's best-compression
// level (9, its ceiling) since the stdlib-compatible flate levels only run
// 1-9; levels 10-12 therefore resolve to 9 instead of being rejected.
func (l Level) deflateLevel() int {
	n := l.resolve(deflatePresets, 1, 12)
	if n > 9 {
		n = 9
	}

	return n
}

// zstdLevel maps l onto zstd's native 1-22 range.
func (l Level) zstdLevel() int {
	return l.resolve(zstdPresets, 1, 22)
}
