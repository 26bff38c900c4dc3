package layout

import (
	"math"
	"testing"

	"metromap/core"
)

func testDoc(lines ...core.Line) *core.Map {
	return &core.Map{
		Stations: []core.Station{
			{ID: "a", Name: "Alpha", X: 0, Y: 0, Type: core.StationCircle},
			{ID: "b", Name: "Bravo", X: 100, Y: 0, Type: core.StationCircle},
			{ID: "c", Name: "Charlie", X: 200, Y: 0, Type: core.StationCircle},
			{ID: "d", Name: "Delta", X: 0, Y: 100, Type: core.StationCircle},
			{ID: "e", Name: "Echo", X: 200, Y: 100, Type: core.StationCircle},
		},
		Lines: lines,
	}
}

func TestSegmentKeyNormalization(t *testing.T) {
	p1 := core.Point{X: 10, Y: 20}
	p2 := core.Point{X: -5, Y: 30}

	if MakeSegmentKey(p1, p2) != MakeSegmentKey(p2, p1) {
		t.Error("segment key should be order-independent")
	}
	if MakeSegmentKey(p1, p2) == MakeSegmentKey(p1, core.Point{X: -5, Y: 31}) {
		t.Error("distinct segments should produce distinct keys")
	}
}

func TestRegistrySharedSegment(t *testing.T) {
	doc := testDoc(
		core.Line{ID: "l2", Color: "#0019a8", Width: 4, StationIDs: []string{"a", "b"}},
		core.Line{ID: "l1", Color: "#e32017", Width: 4, StationIDs: []string{"a", "b"}},
	)
	reg := BuildRegistry(doc, DefaultConfig())

	ids := reg.Lines(core.Point{X: 0, Y: 0}, core.Point{X: 100, Y: 0})
	if len(ids) != 2 {
		t.Fatalf("expected 2 lines on shared segment, got %d", len(ids))
	}
	// Sorted by ID regardless of document order.
	if ids[0] != "l1" || ids[1] != "l2" {
		t.Errorf("bundle order = %v, want [l1 l2]", ids)
	}
}

func TestOffsetSymmetry(t *testing.T) {
	cfg := DefaultConfig()
	a := core.Point{X: 0, Y: 0}
	b := core.Point{X: 100, Y: 0}

	tests := []struct {
		n    int
		want []float64
	}{
		{2, []float64{-cfg.LineSpacing / 2, cfg.LineSpacing / 2}},
		{3, []float64{-cfg.LineSpacing, 0, cfg.LineSpacing}},
	}

	for _, tt := range tests {
		var lines []core.Line
		ids := []string{"l1", "l2", "l3"}[:tt.n]
		for _, id := range ids {
			lines = append(lines, core.Line{ID: id, StationIDs: []string{"a", "b"}})
		}
		reg := BuildRegistry(testDoc(lines...), cfg)

		for i, id := range ids {
			got := reg.OffsetFor(a, b, id)
			if math.Abs(got-tt.want[i]) > 1e-9 {
				t.Errorf("n=%d: offset for %s = %f, want %f", tt.n, id, got, tt.want[i])
			}
		}
	}
}

func TestOffsetOppositeTraversal(t *testing.T) {
	// A line traversing the shared segment backwards must land on the
	// same side in world space, so offsets seen from opposite
	// directions are negatives of each other.
	doc := testDoc(
		core.Line{ID: "l1", StationIDs: []string{"a", "b"}},
		core.Line{ID: "l2", StationIDs: []string{"b", "a"}},
	)
	reg := BuildRegistry(doc, DefaultConfig())

	a := core.Point{X: 0, Y: 0}
	b := core.Point{X: 100, Y: 0}
	forward := reg.OffsetFor(a, b, "l1")
	backward := reg.OffsetFor(b, a, "l1")
	if math.Abs(forward+backward) > 1e-9 {
		t.Errorf("opposite traversals should negate the offset: %f vs %f", forward, backward)
	}
}

func TestOffsetSoloSegment(t *testing.T) {
	doc := testDoc(
		core.Line{ID: "l1", StationIDs: []string{"a", "b", "c"}},
		core.Line{ID: "l2", StationIDs: []string{"d", "b", "e"}},
	)
	reg := BuildRegistry(doc, DefaultConfig())

	// The two lines only meet at station b; no geometric segment is
	// shared, so neither is offset anywhere.
	if off := reg.OffsetFor(core.Point{X: 0, Y: 0}, core.Point{X: 100, Y: 0}, "l1"); off != 0 {
		t.Errorf("solo segment offset = %f, want 0", off)
	}
	if off := reg.OffsetFor(core.Point{X: 100, Y: 0}, core.Point{X: 0, Y: 0}, "l2"); off != 0 {
		t.Errorf("non-member line offset = %f, want 0", off)
	}
}

func TestRegistrySkipsDanglingStations(t *testing.T) {
	doc := testDoc(
		core.Line{ID: "l1", StationIDs: []string{"a", "ghost", "b"}},
	)
	reg := BuildRegistry(doc, DefaultConfig())

	// The dangling ID is skipped and a-b is routed as one hop.
	ids := reg.Lines(core.Point{X: 0, Y: 0}, core.Point{X: 100, Y: 0})
	if len(ids) != 1 || ids[0] != "l1" {
		t.Errorf("expected a-b registered for l1, got %v", ids)
	}
}

func TestRegistrySkipsDegenerateSegments(t *testing.T) {
	doc := &core.Map{
		Stations: []core.Station{
			{ID: "a", X: 0, Y: 0},
			{ID: "a2", X: 0, Y: 0},
			{ID: "b", X: 100, Y: 0},
		},
		Lines: []core.Line{
			{ID: "l1", StationIDs: []string{"a", "a2", "b"}},
		},
	}
	reg := BuildRegistry(doc, DefaultConfig())

	if ids := reg.Lines(core.Point{}, core.Point{}); len(ids) != 0 {
		t.Errorf("zero-length segment should not be registered, got %v", ids)
	}
	if ids := reg.Lines(core.Point{X: 0, Y: 0}, core.Point{X: 100, Y: 0}); len(ids) != 1 {
		t.Errorf("real segment missing from registry: %v", ids)
	}
}
