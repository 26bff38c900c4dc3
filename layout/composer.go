package layout

import (
	"math"

	"metromap/core"
	"metromap/geometry"
	"metromap/render"
)

// Composer builds the smoothed, offset path geometry for a line.
type Composer struct {
	cfg    Config
	router *Router
}

// NewComposer creates a composer with the given configuration.
func NewComposer(cfg Config) *Composer {
	return &Composer{cfg: cfg, router: NewRouter(cfg)}
}

// Compose walks the line's station sequence, routes every hop, shifts
// each vertex laterally by its bundle offset and emits a rounded-corner
// path. A line with fewer than two resolvable stations composes to an
// empty path.
func (c *Composer) Compose(line *core.Line, doc *core.Map, reg *Registry) render.Path {
	pts := resolveStationPoints(doc, line)
	if len(pts) < 2 {
		return render.Path{}
	}

	verts := c.rawPolyline(pts, line)
	offset := c.offsetVertices(verts, line, reg)
	return c.roundedPath(offset)
}

// rawPolyline concatenates the router output across every hop. For a
// closed loop the wrap-around hop is routed too and the polyline is
// returned without the duplicated closing point; the vertex list is
// treated as cyclic downstream.
func (c *Composer) rawPolyline(pts []core.Point, line *core.Line) []core.Point {
	verts := []core.Point{pts[0]}
	for _, hop := range hopPairs(pts, line.ClosedLoop) {
		route := c.router.Route(hop[0], hop[1], line.AlternateRoute)
		verts = append(verts, route[1:]...)
	}
	if line.ClosedLoop && len(verts) > 1 {
		verts = verts[:len(verts)-1]
	}
	return verts
}

// offsetVertices shifts every vertex of the centerline polyline by its
// parallel-bundle offset. Interior vertices are placed at the
// intersection of the two offset-shifted infinite lines through the
// adjacent segments, which keeps bundled lines from crossing or
// gapping at corners. A closed loop wraps its indices and repeats the
// first offset point to close the ring.
func (c *Composer) offsetVertices(verts []core.Point, line *core.Line, reg *Registry) []core.Point {
	n := len(verts)
	if n < 2 {
		return verts
	}

	out := make([]core.Point, 0, n+1)
	for i := 0; i < n; i++ {
		v := verts[i]
		var prev, next *core.Point
		if line.ClosedLoop {
			p := verts[(i-1+n)%n]
			nx := verts[(i+1)%n]
			prev, next = &p, &nx
		} else {
			if i > 0 {
				prev = &verts[i-1]
			}
			if i < n-1 {
				next = &verts[i+1]
			}
		}
		out = append(out, c.offsetVertex(v, prev, next, line.ID, reg))
	}
	if line.ClosedLoop {
		out = append(out, out[0])
	}
	return out
}

// offsetVertex resolves the offset position of a single vertex given
// its neighbors on either side (nil at an open line's ends).
func (c *Composer) offsetVertex(v core.Point, prev, next *core.Point, lineID string, reg *Registry) core.Point {
	switch {
	case prev == nil && next == nil:
		return v
	case prev == nil:
		// Open start: shift along the outgoing segment's normal only.
		dir := geometry.Sub(*next, v)
		if geometry.Length(dir) < geometry.Epsilon {
			return v
		}
		off := reg.OffsetFor(v, *next, lineID)
		return geometry.Add(v, geometry.Scale(geometry.Normal(dir), off))
	case next == nil:
		dir := geometry.Sub(v, *prev)
		if geometry.Length(dir) < geometry.Epsilon {
			return v
		}
		off := reg.OffsetFor(*prev, v, lineID)
		return geometry.Add(v, geometry.Scale(geometry.Normal(dir), off))
	}

	dirIn := geometry.Sub(v, *prev)
	dirOut := geometry.Sub(*next, v)
	if geometry.Length(dirIn) < geometry.Epsilon || geometry.Length(dirOut) < geometry.Epsilon {
		// Degenerate adjacent segment: leave the vertex untouched.
		return v
	}

	offIn := reg.OffsetFor(*prev, v, lineID)
	offOut := reg.OffsetFor(v, *next, lineID)
	shiftedIn := geometry.Add(*prev, geometry.Scale(geometry.Normal(dirIn), offIn))
	shiftedOut := geometry.Add(v, geometry.Scale(geometry.Normal(dirOut), offOut))

	ip, ok := geometry.LineIntersection(shiftedIn, dirIn, shiftedOut, dirOut)
	if !ok {
		// Parallel adjacent directions (a straight-through vertex):
		// a plain lateral shift is exact.
		return geometry.Add(v, geometry.Scale(geometry.Normal(dirIn), offIn))
	}
	return ip
}

// roundedPath turns an offset vertex sequence into draw commands,
// replacing each interior vertex with a quadratic corner whose radius
// never exceeds half of either adjacent segment.
func (c *Composer) roundedPath(pts []core.Point) render.Path {
	var path render.Path
	if len(pts) < 2 {
		return path
	}

	path.MoveTo(pts[0])
	for i := 1; i < len(pts)-1; i++ {
		v := pts[i]
		in := geometry.Sub(v, pts[i-1])
		out := geometry.Sub(pts[i+1], v)
		lenIn := geometry.Length(in)
		lenOut := geometry.Length(out)
		if lenIn < geometry.Epsilon || lenOut < geometry.Epsilon {
			path.LineTo(v)
			continue
		}
		radius := math.Min(c.cfg.CornerRadius, math.Min(lenIn/2, lenOut/2))
		entry := geometry.Add(v, geometry.Scale(geometry.Normalize(in), -radius))
		exit := geometry.Add(v, geometry.Scale(geometry.Normalize(out), radius))
		path.LineTo(entry)
		path.QuadTo(v, exit)
	}
	path.LineTo(pts[len(pts)-1])
	return path
}
