package layout

import (
	"testing"

	"metromap/core"
)

func TestEngineLayoutProducesAllLinesAndStations(t *testing.T) {
	doc := testDoc(
		core.Line{ID: "l1", StationIDs: []string{"a", "b", "c"}},
		core.Line{ID: "l2", StationIDs: []string{"d", "b", "e"}},
	)
	engine := NewEngine(DefaultConfig())

	res := engine.Layout(doc)
	if len(res.Paths) != 2 {
		t.Errorf("expected 2 paths, got %d", len(res.Paths))
	}
	if len(res.Shapes) != len(doc.Stations) {
		t.Errorf("expected %d shapes, got %d", len(doc.Stations), len(res.Shapes))
	}
	for id, path := range res.Paths {
		if path.IsEmpty() {
			t.Errorf("line %q composed to an empty path", id)
		}
	}
}

func TestEngineMemoizesUnchangedDocuments(t *testing.T) {
	doc := testDoc(
		core.Line{ID: "l1", StationIDs: []string{"a", "b", "c"}},
	)
	engine := NewEngine(DefaultConfig())

	first := engine.Layout(doc)
	second := engine.Layout(doc)
	if first != second {
		t.Error("unchanged document should reuse the cached result")
	}

	doc.Stations[0].X += 10
	third := engine.Layout(doc)
	if third == second {
		t.Error("moving a station must invalidate the cached result")
	}

	// Selection is transient and must not bust the cache.
	doc.Stations[0].Selected = true
	fourth := engine.Layout(doc)
	if fourth != third {
		t.Error("selection change should not invalidate the cached result")
	}
}
