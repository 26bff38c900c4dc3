package layout

import (
	"sort"

	"metromap/core"
	"metromap/geometry"
)

// Router derives the octolinear polyline between two station points.
type Router struct {
	cfg Config
}

// NewRouter creates a router with the given configuration.
func NewRouter(cfg Config) *Router {
	return &Router{cfg: cfg}
}

// elbowCandidate is one possible intermediate point splitting a hop
// into an axis-aligned and a diagonal sub-segment.
type elbowCandidate struct {
	point  core.Point
	length float64
	// horizontalFirst is true when the horizontal displacement of the
	// hop is completed before the vertical one, either by an initial
	// horizontal segment or by an initial diagonal followed by a
	// vertical segment.
	horizontalFirst bool
}

// Route returns the polyline from p1 to p2 using only horizontal,
// vertical and 45-degree segments: the two endpoints when they are
// already aligned, otherwise the endpoints plus a single elbow point.
// The alternate flag flips the tie-break between the two symmetric
// minimal elbows, which is how a line's alternateRoute setting changes
// its shape without moving any station.
//
// Route never fails: when no acceptable elbow exists the direct
// two-point segment is returned even if it is not octolinear.
func (r *Router) Route(p1, p2 core.Point, alternate bool) []core.Point {
	tol := r.cfg.AlignTolerance
	d := geometry.Sub(p2, p1)
	if geometry.IsOctolinear(d, tol) {
		return []core.Point{p1, p2}
	}

	direct := geometry.Length(d)
	candidates := r.elbowCandidates(p1, p2)

	// Reject absurd overshoots.
	maxLen := r.cfg.OvershootRatio * direct
	survivors := candidates[:0]
	for _, c := range candidates {
		if c.length <= maxLen {
			survivors = append(survivors, c)
		}
	}
	if len(survivors) == 0 {
		return []core.Point{p1, p2}
	}

	// Keep only the candidates within tolerance of the minimum length.
	minLen := survivors[0].length
	for _, c := range survivors[1:] {
		if c.length < minLen {
			minLen = c.length
		}
	}
	lenTol := r.cfg.LengthTolerance * (direct + 1)
	shortest := survivors[:0]
	for _, c := range survivors {
		if c.length <= minLen+lenTol {
			shortest = append(shortest, c)
		}
	}

	// Tie-break by routing family.
	preferred := shortest[:0:0]
	for _, c := range shortest {
		if c.horizontalFirst != alternate {
			preferred = append(preferred, c)
		}
	}
	if len(preferred) == 0 {
		preferred = shortest
	}

	sort.Slice(preferred, func(i, j int) bool {
		if preferred[i].point.X != preferred[j].point.X {
			return preferred[i].point.X < preferred[j].point.X
		}
		return preferred[i].point.Y < preferred[j].point.Y
	})

	return []core.Point{p1, preferred[0].point, p2}
}

// elbowCandidates enumerates the intersections of an axis-aligned line
// through one endpoint with a 45-degree diagonal through the other.
// Up to 8 raw candidates exist (symmetric formulations of 4 distinct
// elbow shapes); duplicates and candidates with a degenerate
// sub-segment are dropped.
func (r *Router) elbowCandidates(p1, p2 core.Point) []elbowCandidate {
	elbows := []core.Point{}
	for _, s := range []float64{1, -1} {
		// Horizontal through p1, diagonal through p2.
		elbows = append(elbows, core.Point{X: p2.X - s*(p2.Y-p1.Y), Y: p1.Y})
		// Vertical through p1, diagonal through p2.
		elbows = append(elbows, core.Point{X: p1.X, Y: p2.Y - s*(p2.X-p1.X)})
		// Horizontal through p2, diagonal through p1.
		elbows = append(elbows, core.Point{X: p1.X + s*(p2.Y-p1.Y), Y: p2.Y})
		// Vertical through p2, diagonal through p1.
		elbows = append(elbows, core.Point{X: p2.X, Y: p1.Y + s*(p2.X-p1.X)})
	}

	candidates := make([]elbowCandidate, 0, len(elbows))
	for _, e := range elbows {
		first := geometry.Sub(e, p1)
		second := geometry.Sub(p2, e)
		l1 := geometry.Length(first)
		l2 := geometry.Length(second)
		if l1 < r.cfg.MinSegmentLength || l2 < r.cfg.MinSegmentLength {
			continue
		}
		if duplicateElbow(candidates, e) {
			continue
		}
		candidates = append(candidates, elbowCandidate{
			point:           e,
			length:          l1 + l2,
			horizontalFirst: r.horizontalFirst(first, second),
		})
	}
	return candidates
}

// horizontalFirst classifies a candidate's routing family by which
// axis displacement completes first along the path.
func (r *Router) horizontalFirst(first, second core.Point) bool {
	tol := r.cfg.AlignTolerance
	switch {
	case geometry.IsHorizontal(first, tol):
		return true
	case geometry.IsVertical(first, tol):
		return false
	default:
		// The first sub-segment is diagonal: the displacement finished
		// during it is the one absent from the remaining axis segment.
		return geometry.IsVertical(second, tol)
	}
}

func duplicateElbow(candidates []elbowCandidate, e core.Point) bool {
	for _, c := range candidates {
		if geometry.Distance(c.point, e) < geometry.Epsilon {
			return true
		}
	}
	return false
}
