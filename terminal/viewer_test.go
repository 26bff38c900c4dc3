package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"metromap/canvas"
	"metromap/core"
)

func TestCellStyle(t *testing.T) {
	if got := cellStyle("not-a-color"); got != tcell.StyleDefault {
		t.Errorf("bad hex should fall back to the default style")
	}
	if got := cellStyle("#e32017"); got == tcell.StyleDefault {
		t.Errorf("valid hex should produce a colored style")
	}
	if got := cellStyle(markerColor); got == tcell.StyleDefault {
		t.Errorf("marker tag should produce a distinct style")
	}
}

func TestRenderProducesGeometry(t *testing.T) {
	doc := &core.Map{
		Stations: []core.Station{
			{ID: "s1", Name: "Alpha", X: -100, Y: 0, Type: core.StationCircle},
			{ID: "s2", Name: "Beta", X: 100, Y: 0, Type: core.StationCircle},
		},
		Lines: []core.Line{
			{ID: "l1", Color: "#0019a8", Width: 4, StationIDs: []string{"s1", "s2"}},
		},
	}

	v := NewViewer(doc, nil)
	cv := v.render(80, 24)

	lineCells, markers, labels := 0, 0, 0
	cv.Each(func(x, y int, cell canvas.Cell) {
		switch cell.Color {
		case markerColor:
			markers++
		case labelColor:
			labels++
		default:
			lineCells++
			if cell.Color != "#0019a8" {
				t.Errorf("line cell carries color %q", cell.Color)
			}
		}
	})
	if lineCells == 0 {
		t.Error("no line cells drawn")
	}
	if markers != 2 {
		t.Errorf("drew %d station markers, want 2", markers)
	}
	if labels == 0 {
		t.Error("no label cells drawn")
	}
}

func TestWaypointHasNoLabel(t *testing.T) {
	doc := &core.Map{
		Stations: []core.Station{
			{ID: "w1", Name: "Hidden", X: 0, Y: 0, Type: core.StationWaypoint},
		},
	}

	cv := NewViewer(doc, nil).render(80, 24)
	cv.Each(func(x, y int, cell canvas.Cell) {
		if cell.Color == labelColor {
			t.Fatal("waypoint grew a label")
		}
	})
}

func TestPanAndZoomKeys(t *testing.T) {
	v := NewViewer(&core.Map{}, nil)
	startX, startScale := v.panX, v.scale

	if v.handleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)) {
		t.Fatal("pan key should not quit")
	}
	if v.panX <= startX {
		t.Error("right arrow should pan right")
	}
	if v.handleKey(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone)) {
		t.Fatal("zoom key should not quit")
	}
	if v.scale <= startScale {
		t.Error("plus should zoom in")
	}
	if !v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
}
