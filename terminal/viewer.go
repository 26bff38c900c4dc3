// Package terminal renders a read-only preview of a map in the
// terminal. It is a quick way to sanity-check a layout without
// exporting an image: lines are drawn with box-drawing runes, stations
// with markers and their names alongside.
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"metromap/canvas"
	"metromap/core"
	"metromap/layout"
)

// Terminal cells are roughly twice as tall as they are wide, so world
// Y coordinates are compressed to keep diagonals near 45 degrees.
const cellAspect = 0.5

// flattening detail for curved path segments
const previewCurveSegments = 4

// color tags for non-line cells
const (
	markerColor = "marker"
	labelColor  = "label"
)

// Viewer displays a single map document until the user quits.
type Viewer struct {
	doc    *core.Map
	engine *layout.Engine

	scale float64
	panX  float64
	panY  float64
}

// NewViewer creates a viewer for doc using the given engine. A nil
// engine gets the default configuration.
func NewViewer(doc *core.Map, engine *layout.Engine) *Viewer {
	if engine == nil {
		engine = layout.NewEngine(layout.DefaultConfig())
	}
	return &Viewer{doc: doc, engine: engine, scale: 0.25}
}

// Run opens the terminal screen and blocks until the user quits with
// q, Escape or Ctrl-C. Arrow keys pan, + and - zoom.
func (v *Viewer) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	for {
		v.draw(screen)
		screen.Show()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		}
	}
}

// handleKey applies one key event and reports whether to quit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	panStep := 20 / v.scale
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.panX -= panStep
	case tcell.KeyRight:
		v.panX += panStep
	case tcell.KeyUp:
		v.panY -= panStep
	case tcell.KeyDown:
		v.panY += panStep
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case '+', '=':
			v.scale *= 1.25
		case '-', '_':
			if v.scale > 0.02 {
				v.scale /= 1.25
			}
		}
	}
	return false
}

func (v *Viewer) draw(screen tcell.Screen) {
	screen.Clear()
	w, h := screen.Size()

	cv := v.render(w, h)
	cv.Each(func(x, y int, cell canvas.Cell) {
		screen.SetContent(x, y, cell.Rune, nil, cellStyle(cell.Color))
	})

	v.drawStatus(screen)
}

// render draws the whole document onto a canvas of the given size.
func (v *Viewer) render(w, h int) *canvas.Canvas {
	cv := canvas.New(w, h)
	res := v.engine.Layout(v.doc)

	for i := range v.doc.Lines {
		line := &v.doc.Lines[i]
		v.drawPolyline(cv, res.Paths[line.ID].Flatten(previewCurveSegments), line.Color)
	}
	for i := range v.doc.Stations {
		v.drawStation(cv, &v.doc.Stations[i], res.Shapes[v.doc.Stations[i].ID])
	}
	return cv
}

// toCell projects a world point onto the canvas grid.
func (v *Viewer) toCell(cv *canvas.Canvas, p core.Point) (int, int) {
	w, h := cv.Size()
	x := (p.X-v.panX)*v.scale + float64(w)/2
	y := (p.Y-v.panY)*v.scale*cellAspect + float64(h)/2
	return int(math.Round(x)), int(math.Round(y))
}

func (v *Viewer) drawPolyline(cv *canvas.Canvas, pts []core.Point, color string) {
	for i := 1; i < len(pts); i++ {
		x1, y1 := v.toCell(cv, pts[i-1])
		x2, y2 := v.toCell(cv, pts[i])
		cv.DrawSegment(x1, y1, x2, y2, color)
	}
}

func (v *Viewer) drawStation(cv *canvas.Canvas, st *core.Station, shape layout.Shape) {
	x, y := v.toCell(cv, st.Pos())

	marker := stationRune(st.Type)
	if _, ok := shape.(layout.PillShape); ok {
		marker = '◉'
	}
	cv.Set(x, y, marker, markerColor)

	if st.Type == core.StationWaypoint {
		return
	}
	cv.DrawText(x+2, y, st.Name, labelColor)
}

func stationRune(t core.StationType) rune {
	switch t {
	case core.StationSquare:
		return '■'
	case core.StationInterchange:
		return '◉'
	case core.StationWaypoint:
		return '·'
	default:
		return '●'
	}
}

func (v *Viewer) drawStatus(screen tcell.Screen) {
	_, h := screen.Size()
	msg := "arrows pan · +/- zoom · q quit"
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range msg {
		screen.SetContent(i, h-1, r, nil, style)
	}
}

// cellStyle maps a canvas color tag to a terminal style. Line cells
// carry a hex color; markers and labels use fixed styles; anything
// unparseable falls back to the default foreground.
func cellStyle(color string) tcell.Style {
	switch color {
	case markerColor:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	case labelColor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
	c, err := colorful.Hex(color)
	if err != nil {
		return tcell.StyleDefault
	}
	r, g, b := c.RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}
