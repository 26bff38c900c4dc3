package layout

import (
	"math"

	"metromap/core"
	"metromap/geometry"
)

// Shape describes how a station should be drawn. It is a closed union:
// StandardShape or PillShape.
type Shape interface {
	isShape()
}

// StandardShape is the default marker, keyed by station type.
type StandardShape struct {
	Type   core.StationType
	Radius float64
}

func (StandardShape) isShape() {}

// PillShape is the elongated capsule drawn where several lines pass
// straight through a station in a common direction. Its long axis is
// the perpendicular of the shared flow direction.
type PillShape struct {
	LineCount int
	Angle     float64 // Degrees, in [0, 180)
	Width     float64
	Height    float64
}

func (PillShape) isShape() {}

// Classifier decides between standard and pill rendering per station.
type Classifier struct {
	cfg    Config
	router *Router
}

// NewClassifier creates a classifier with the given configuration.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg, router: NewRouter(cfg)}
}

// Classify inspects every line through the station. When at least two
// lines pass straight through it in a common direction the station is
// a pill sized to the bundle width; otherwise it renders as the
// standard marker for its type. Stations at an open line's end are
// never pills.
func (c *Classifier) Classify(station *core.Station, doc *core.Map) Shape {
	standard := StandardShape{Type: station.Type, Radius: c.cfg.StationRadius}

	touching := doc.LinesThrough(station.ID)
	if len(touching) < 2 {
		return standard
	}

	var ref core.Point
	count := 0
	for _, line := range touching {
		before, after, ok := c.routedNeighbors(line, station, doc)
		if !ok {
			return standard
		}
		dirIn := geometry.Normalize(geometry.Sub(station.Pos(), before))
		dirOut := geometry.Normalize(geometry.Sub(after, station.Pos()))
		if geometry.Length(dirIn) < geometry.Epsilon || geometry.Length(dirOut) < geometry.Epsilon {
			return standard
		}
		// The line must pass straight through, not bend here.
		if geometry.Dot(dirIn, dirOut) < c.cfg.StraightThreshold {
			return standard
		}
		if count == 0 {
			ref = dirIn
		} else if math.Abs(geometry.Dot(ref, dirIn)) < c.cfg.StraightThreshold {
			// Straight through, but not co-linear with the bundle.
			return standard
		}
		count++
	}

	normal := geometry.Normal(ref)
	angle := math.Atan2(normal.Y, normal.X) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	return PillShape{
		LineCount: count,
		Angle:     angle,
		Width:     float64(count-1)*c.cfg.LineSpacing + 2*c.cfg.StationRadius,
		Height:    2 * c.cfg.StationRadius,
	}
}

// routedNeighbors finds the routed points immediately before and after
// the station along the line, including elbow points introduced by the
// router. ok is false when either neighbor is missing, which happens
// at the ends of an open line or when the sequence does not resolve.
func (c *Classifier) routedNeighbors(line *core.Line, station *core.Station, doc *core.Map) (before, after core.Point, ok bool) {
	var resolved []*core.Station
	for _, id := range line.StationIDs {
		if st := doc.StationByID(id); st != nil {
			resolved = append(resolved, st)
		}
	}

	idx := -1
	for i, st := range resolved {
		if st.ID == station.ID {
			idx = i
			break
		}
	}
	if idx < 0 || len(resolved) < 2 {
		return core.Point{}, core.Point{}, false
	}

	n := len(resolved)
	prevIdx, nextIdx := idx-1, idx+1
	if line.ClosedLoop {
		prevIdx = (idx - 1 + n) % n
		nextIdx = (idx + 1) % n
	}
	if prevIdx < 0 || nextIdx >= n {
		return core.Point{}, core.Point{}, false
	}

	pos := station.Pos()
	in := c.router.Route(resolved[prevIdx].Pos(), pos, line.AlternateRoute)
	out := c.router.Route(pos, resolved[nextIdx].Pos(), line.AlternateRoute)
	if len(in) < 2 || len(out) < 2 {
		return core.Point{}, core.Point{}, false
	}
	return in[len(in)-2], out[1], true
}
