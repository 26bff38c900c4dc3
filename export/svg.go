package export

import (
	"fmt"
	"math"
	"strings"

	"metromap/core"
	"metromap/layout"
)

// SVGExporter draws the laid-out schematic as an SVG document.
type SVGExporter struct {
	engine *layout.Engine
}

// NewSVGExporter creates an SVG exporter backed by the given layout
// engine (a default engine when nil).
func NewSVGExporter(engine *layout.Engine) *SVGExporter {
	if engine == nil {
		engine = layout.NewEngine(layout.DefaultConfig())
	}
	return &SVGExporter{engine: engine}
}

// FileExtension returns the file extension for SVG.
func (e *SVGExporter) FileExtension() string { return ".svg" }

// FormatName returns the format name.
func (e *SVGExporter) FormatName() string { return "SVG" }

const svgPadding = 40.0

// Export lays out the document and renders lines, stations and labels.
func (e *SVGExporter) Export(doc *core.Map) ([]byte, error) {
	res := e.engine.Layout(doc)
	cfg := e.engine.Config()

	minX, minY, maxX, maxY := bounds(doc, res)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f">`+"\n",
		minX-svgPadding, minY-svgPadding,
		maxX-minX+2*svgPadding, maxY-minY+2*svgPadding)

	// Lines first so stations draw on top of them.
	for i := range doc.Lines {
		line := &doc.Lines[i]
		path := res.Paths[line.ID]
		if path.IsEmpty() {
			continue
		}
		color := line.Color
		if color == "" {
			color = "#000000"
		}
		width := line.Width
		if width <= 0 {
			width = 4
		}
		fmt.Fprintf(&b, `  <path d="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linecap="round"/>`+"\n",
			path.Data(), color, width)
	}

	for i := range doc.Stations {
		st := &doc.Stations[i]
		e.writeStation(&b, st, res.Shapes[st.ID])
	}

	for i := range doc.Stations {
		writeLabel(&b, &doc.Stations[i], cfg)
	}

	b.WriteString("</svg>\n")
	return []byte(b.String()), nil
}

func (e *SVGExporter) writeStation(b *strings.Builder, st *core.Station, shape layout.Shape) {
	switch s := shape.(type) {
	case layout.PillShape:
		fmt.Fprintf(b, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="#ffffff" stroke="#000000" stroke-width="2" transform="rotate(%.1f %.2f %.2f)"/>`+"\n",
			st.X-s.Width/2, st.Y-s.Height/2, s.Width, s.Height, s.Height/2, s.Angle, st.X, st.Y)
	case layout.StandardShape:
		switch s.Type {
		case core.StationInterchange:
			fmt.Fprintf(b, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="#ffffff" stroke="#000000" stroke-width="3"/>`+"\n",
				st.X, st.Y, s.Radius)
		case core.StationSquare:
			fmt.Fprintf(b, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#ffffff" stroke="#000000" stroke-width="2"/>`+"\n",
				st.X-s.Radius, st.Y-s.Radius, 2*s.Radius, 2*s.Radius)
		case core.StationWaypoint:
			fmt.Fprintf(b, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="#000000"/>`+"\n",
				st.X, st.Y, s.Radius/2.5)
		default:
			fmt.Fprintf(b, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="#ffffff" stroke="#000000" stroke-width="2"/>`+"\n",
				st.X, st.Y, s.Radius)
		}
	}
}

func writeLabel(b *strings.Builder, st *core.Station, cfg layout.Config) {
	if st.Name == "" || st.Type == core.StationWaypoint {
		return
	}
	ox, oy := cfg.StationRadius+4, -cfg.StationRadius
	if st.LabelOffset != nil {
		ox, oy = st.LabelOffset.X, st.LabelOffset.Y
	}
	fmt.Fprintf(b, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="12">%s</text>`+"\n",
		st.X+ox, st.Y+oy, escapeText(st.Name))
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// bounds computes the extent of everything drawable, defaulting to a
// small region for empty documents.
func bounds(doc *core.Map, res *layout.Result) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	grow := func(p core.Point) {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	for i := range doc.Stations {
		grow(doc.Stations[i].Pos())
	}
	for _, path := range res.Paths {
		for _, p := range path.Flatten(8) {
			grow(p)
		}
	}

	if math.IsInf(minX, 1) {
		return 0, 0, 100, 100
	}
	return minX, minY, maxX, maxY
}
