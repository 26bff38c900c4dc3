// Package render holds the drawable path model produced by the layout
// engine: move/line/quadratic commands plus SVG path data emission.
package render

import (
	"strconv"
	"strings"

	"metromap/core"
)

// Op identifies a path drawing command.
type Op int

const (
	OpMove Op = iota
	OpLine
	OpQuad
)

// Command is a single drawing instruction. Control is only meaningful
// for OpQuad.
type Command struct {
	Op      Op
	To      core.Point
	Control core.Point
}

// Path is an ordered sequence of drawing commands.
type Path struct {
	Commands []Command
}

// MoveTo appends a move command.
func (p *Path) MoveTo(pt core.Point) {
	p.Commands = append(p.Commands, Command{Op: OpMove, To: pt})
}

// LineTo appends a straight-line command.
func (p *Path) LineTo(pt core.Point) {
	p.Commands = append(p.Commands, Command{Op: OpLine, To: pt})
}

// QuadTo appends a quadratic curve command through the given control
// point.
func (p *Path) QuadTo(control, pt core.Point) {
	p.Commands = append(p.Commands, Command{Op: OpQuad, To: pt, Control: control})
}

// IsEmpty returns true if the path has no commands.
func (p Path) IsEmpty() bool {
	return len(p.Commands) == 0
}

// Start returns the first point of the path.
func (p Path) Start() core.Point {
	if len(p.Commands) == 0 {
		return core.Point{}
	}
	return p.Commands[0].To
}

// End returns the last point of the path.
func (p Path) End() core.Point {
	if len(p.Commands) == 0 {
		return core.Point{}
	}
	return p.Commands[len(p.Commands)-1].To
}

// Data renders the path as SVG path data ("M x y L x y Q cx cy x y").
func (p Path) Data() string {
	var b strings.Builder
	for i, cmd := range p.Commands {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch cmd.Op {
		case OpMove:
			b.WriteString("M ")
			writePoint(&b, cmd.To)
		case OpLine:
			b.WriteString("L ")
			writePoint(&b, cmd.To)
		case OpQuad:
			b.WriteString("Q ")
			writePoint(&b, cmd.Control)
			b.WriteByte(' ')
			writePoint(&b, cmd.To)
		}
	}
	return b.String()
}

func writePoint(b *strings.Builder, pt core.Point) {
	b.WriteString(formatCoord(pt.X))
	b.WriteByte(' ')
	b.WriteString(formatCoord(pt.Y))
}

// formatCoord trims coordinates to two decimal places, dropping the
// fraction entirely for whole values.
func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" || s == "-0" {
		return "0"
	}
	return s
}

// Flatten approximates the path as a polyline, subdividing each
// quadratic curve into the given number of straight segments.
func (p Path) Flatten(curveSegments int) []core.Point {
	if curveSegments < 1 {
		curveSegments = 1
	}
	var pts []core.Point
	var cur core.Point
	for _, cmd := range p.Commands {
		switch cmd.Op {
		case OpMove:
			cur = cmd.To
			pts = append(pts, cur)
		case OpLine:
			cur = cmd.To
			pts = append(pts, cur)
		case OpQuad:
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / float64(curveSegments)
				pts = append(pts, quadPoint(cur, cmd.Control, cmd.To, t))
			}
			cur = cmd.To
		}
	}
	return pts
}

// quadPoint evaluates a quadratic Bezier at parameter t.
func quadPoint(start, control, end core.Point, t float64) core.Point {
	u := 1 - t
	return core.Point{
		X: u*u*start.X + 2*u*t*control.X + t*t*end.X,
		Y: u*u*start.Y + 2*u*t*control.Y + t*t*end.Y,
	}
}
