package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"metromap/core"
	"metromap/geometry"
	"metromap/layout"
)

// PNGExporter rasterizes the laid-out schematic.
type PNGExporter struct {
	engine   *layout.Engine
	fontSize float64
}

// NewPNGExporter creates a PNG exporter backed by the given layout
// engine (a default engine when nil).
func NewPNGExporter(engine *layout.Engine) *PNGExporter {
	if engine == nil {
		engine = layout.NewEngine(layout.DefaultConfig())
	}
	return &PNGExporter{engine: engine, fontSize: 13}
}

// FileExtension returns the file extension for PNG.
func (e *PNGExporter) FileExtension() string { return ".png" }

// FormatName returns the format name.
func (e *PNGExporter) FormatName() string { return "PNG" }

const pngPadding = 50.0

// Export lays out the document and draws it into an RGBA image.
func (e *PNGExporter) Export(doc *core.Map) ([]byte, error) {
	res := e.engine.Layout(doc)
	cfg := e.engine.Config()

	minX, minY, maxX, maxY := bounds(doc, res)
	origin := core.Point{X: minX - pngPadding, Y: minY - pngPadding}
	w := int(math.Ceil(maxX-minX+2*pngPadding)) + 1
	h := int(math.Ceil(maxY-minY+2*pngPadding)) + 1

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(img, color.White)

	for i := range doc.Lines {
		line := &doc.Lines[i]
		path := res.Paths[line.ID]
		if path.IsEmpty() {
			continue
		}
		width := line.Width
		if width <= 0 {
			width = 4
		}
		pts := path.Flatten(12)
		c := parseColor(line.Color)
		for j := 0; j+1 < len(pts); j++ {
			drawThickSegment(img, shift(pts[j], origin), shift(pts[j+1], origin), width/2, c)
		}
	}

	for i := range doc.Stations {
		st := &doc.Stations[i]
		drawStation(img, shift(st.Pos(), origin), res.Shapes[st.ID])
	}

	face, err := opentype.NewFace(mustParseFont(), &opentype.FaceOptions{
		Size: e.fontSize, DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()
	for i := range doc.Stations {
		st := &doc.Stations[i]
		if st.Name == "" || st.Type == core.StationWaypoint {
			continue
		}
		ox, oy := cfg.StationRadius+4, -cfg.StationRadius
		if st.LabelOffset != nil {
			ox, oy = st.LabelOffset.X, st.LabelOffset.Y
		}
		p := shift(core.Point{X: st.X + ox, Y: st.Y + oy}, origin)
		drawer := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.Black),
			Face: face,
			Dot:  fixed.P(int(p.X), int(p.Y)),
		}
		drawer.DrawString(st.Name)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var (
	parsedFont    *opentype.Font
	parseFontOnce sync.Once
)

func mustParseFont() *opentype.Font {
	parseFontOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			// goregular is a compiled-in asset; parsing it cannot fail.
			panic(err)
		}
		parsedFont = f
	})
	return parsedFont
}

func shift(p, origin core.Point) core.Point {
	return core.Point{X: p.X - origin.X, Y: p.Y - origin.Y}
}

func fill(img *image.RGBA, c color.Color) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func parseColor(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.Black
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// drawThickSegment stamps disks along the segment; crude but exact
// enough at stroke widths of a few pixels.
func drawThickSegment(img *image.RGBA, p1, p2 core.Point, radius float64, c color.Color) {
	length := geometry.Distance(p1, p2)
	steps := int(length*2) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		drawDisk(img, geometry.Add(p1, geometry.Scale(geometry.Sub(p2, p1), t)), radius, c)
	}
}

func drawDisk(img *image.RGBA, center core.Point, radius float64, c color.Color) {
	r := int(math.Ceil(radius))
	cx, cy := int(math.Round(center.X)), int(math.Round(center.Y))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= radius*radius {
				img.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

func drawRing(img *image.RGBA, center core.Point, radius, stroke float64, c color.Color) {
	r := int(math.Ceil(radius + stroke))
	cx, cy := int(math.Round(center.X)), int(math.Round(center.Y))
	inner := radius - stroke
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			d := math.Sqrt(float64(dx*dx + dy*dy))
			if d <= radius+stroke/2 && d >= inner {
				img.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

func drawStation(img *image.RGBA, p core.Point, shape layout.Shape) {
	switch s := shape.(type) {
	case layout.PillShape:
		// A capsule is the set of points within Height/2 of the long
		// axis segment; stamping disks along that axis draws it.
		angle := s.Angle * math.Pi / 180
		axis := core.Point{X: math.Cos(angle), Y: math.Sin(angle)}
		half := (s.Width - s.Height) / 2
		a := geometry.Add(p, geometry.Scale(axis, -half))
		b := geometry.Add(p, geometry.Scale(axis, half))
		drawThickSegment(img, a, b, s.Height/2, color.Black)
		drawThickSegment(img, a, b, s.Height/2-2, color.White)
	case layout.StandardShape:
		switch s.Type {
		case core.StationInterchange:
			drawDisk(img, p, s.Radius, color.White)
			drawRing(img, p, s.Radius, 1.5, color.Black)
		case core.StationSquare:
			r := int(s.Radius)
			cx, cy := int(math.Round(p.X)), int(math.Round(p.Y))
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					onEdge := dx == -r || dx == r || dy == -r || dy == r
					if onEdge {
						img.Set(cx+dx, cy+dy, color.Black)
					} else {
						img.Set(cx+dx, cy+dy, color.White)
					}
				}
			}
		case core.StationWaypoint:
			drawDisk(img, p, s.Radius/2.5, color.Black)
		default:
			drawDisk(img, p, s.Radius, color.White)
			drawRing(img, p, s.Radius, 1, color.Black)
		}
	}
}
