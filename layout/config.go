// Package layout derives drawable geometry from a transit map: it
// routes octolinear segments between stations, bundles lines that
// share a segment into parallel offset strokes, composes smoothed
// per-line paths and classifies station shapes. Every function here is
// a pure derivation from the current map state; nothing is persisted.
package layout

// Config holds the tunable layout parameters. The thresholds are
// deliberately configuration rather than literals; their exact values
// are tuning, not semantics.
type Config struct {
	// LineSpacing is the lateral distance between parallel bundled
	// lines sharing a segment.
	LineSpacing float64

	// CornerRadius is the maximum rounding radius applied at path
	// corners. Rounding is clamped to half of either adjacent
	// segment, so short segments are never overshot.
	CornerRadius float64

	// StationRadius is the base radius of standard station markers and
	// the half-height of pill shapes.
	StationRadius float64

	// OvershootRatio rejects elbow candidates whose total length
	// exceeds this multiple of the direct endpoint distance.
	OvershootRatio float64

	// AlignTolerance decides when two points count as already aligned
	// horizontally, vertically or on a 45-degree diagonal.
	AlignTolerance float64

	// LengthTolerance is the relative tolerance used when comparing
	// candidate path lengths for ties.
	LengthTolerance float64

	// StraightThreshold is the minimum dot product between incoming
	// and outgoing unit directions for a line to count as passing
	// straight through a station.
	StraightThreshold float64

	// MinSegmentLength is the length below which a segment is treated
	// as degenerate and excluded from bundling.
	MinSegmentLength float64
}

// DefaultConfig returns the standard layout parameters.
func DefaultConfig() Config {
	return Config{
		LineSpacing:       12,
		CornerRadius:      10,
		StationRadius:     8,
		OvershootRatio:    1.5,
		AlignTolerance:    1e-6,
		LengthTolerance:   1e-6,
		StraightThreshold: 0.99,
		MinSegmentLength:  0.01,
	}
}
