package layout

import (
	"math"
	"sort"

	"metromap/core"
	"metromap/geometry"
)

// SegmentKey is the order-independent identity of a straight segment
// between two rounded-to-integer points. It is derived on demand as a
// lookup key and never stored in the document.
type SegmentKey struct {
	X1, Y1, X2, Y2 int
}

// MakeSegmentKey normalizes (p1, p2) into a canonical undirected key.
func MakeSegmentKey(p1, p2 core.Point) SegmentKey {
	x1, y1 := roundCoord(p1.X), roundCoord(p1.Y)
	x2, y2 := roundCoord(p2.X), roundCoord(p2.Y)
	if x2 < x1 || (x2 == x1 && y2 < y1) {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	return SegmentKey{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func roundCoord(v float64) int {
	return int(math.Round(v))
}

// forward reports whether the traversal p1 -> p2 matches the key's
// canonical point order.
func (k SegmentKey) forward(p1 core.Point) bool {
	return roundCoord(p1.X) == k.X1 && roundCoord(p1.Y) == k.Y1
}

// Registry maps every shared geometric segment to the lines that
// traverse it. It must be rebuilt whenever station positions or line
// memberships change; BuildRegistry is cheap enough to run per render.
type Registry struct {
	cfg      Config
	segments map[SegmentKey][]string
}

// BuildRegistry routes every line in the document and records which
// lines traverse each geometric segment. Station IDs that do not
// resolve are skipped, segments shorter than the negligible-length
// threshold are not registered, and each bundle is sorted by line ID
// so lateral ordering is stable across recomputation.
func BuildRegistry(doc *core.Map, cfg Config) *Registry {
	reg := &Registry{
		cfg:      cfg,
		segments: make(map[SegmentKey][]string),
	}
	router := NewRouter(cfg)

	for i := range doc.Lines {
		line := &doc.Lines[i]
		pts := resolveStationPoints(doc, line)
		if len(pts) < 2 {
			continue
		}
		for _, hop := range hopPairs(pts, line.ClosedLoop) {
			route := router.Route(hop[0], hop[1], line.AlternateRoute)
			for j := 0; j+1 < len(route); j++ {
				reg.register(route[j], route[j+1], line.ID)
			}
		}
	}

	for key := range reg.segments {
		sort.Strings(reg.segments[key])
	}
	return reg
}

func (r *Registry) register(p1, p2 core.Point, lineID string) {
	if geometry.Distance(p1, p2) < r.cfg.MinSegmentLength {
		return
	}
	key := MakeSegmentKey(p1, p2)
	for _, id := range r.segments[key] {
		if id == lineID {
			return
		}
	}
	r.segments[key] = append(r.segments[key], lineID)
}

// Lines returns the sorted line IDs sharing the segment (p1, p2).
func (r *Registry) Lines(p1, p2 core.Point) []string {
	return r.segments[MakeSegmentKey(p1, p2)]
}

// OffsetFor returns the signed lateral offset of lineID on the
// directed segment p1 -> p2, measured along the segment's left
// normal. The bundle is centered symmetrically on the true
// centerline; a segment or line unknown to the registry yields 0.
func (r *Registry) OffsetFor(p1, p2 core.Point, lineID string) float64 {
	key := MakeSegmentKey(p1, p2)
	ids := r.segments[key]
	rank := -1
	for i, id := range ids {
		if id == lineID {
			rank = i
			break
		}
	}
	if rank < 0 {
		return 0
	}
	offset := (float64(rank) - float64(len(ids)-1)/2) * r.cfg.LineSpacing
	// A line traversing the segment against the canonical key order
	// sees a flipped normal; flip the offset so both directions stack
	// on the same side in world space.
	if !key.forward(p1) {
		offset = -offset
	}
	return offset
}

// resolveStationPoints maps a line's station IDs to positions,
// silently skipping IDs that do not resolve. Partial rendering of a
// line beats refusing to draw it.
func resolveStationPoints(doc *core.Map, line *core.Line) []core.Point {
	pts := make([]core.Point, 0, len(line.StationIDs))
	for _, id := range line.StationIDs {
		if st := doc.StationByID(id); st != nil {
			pts = append(pts, st.Pos())
		}
	}
	return pts
}

// hopPairs lists the consecutive station pairs to route, including the
// wrap-around pair for closed loops.
func hopPairs(pts []core.Point, closed bool) [][2]core.Point {
	if len(pts) < 2 {
		return nil
	}
	hops := make([][2]core.Point, 0, len(pts))
	for i := 0; i+1 < len(pts); i++ {
		hops = append(hops, [2]core.Point{pts[i], pts[i+1]})
	}
	if closed {
		hops = append(hops, [2]core.Point{pts[len(pts)-1], pts[0]})
	}
	return hops
}
