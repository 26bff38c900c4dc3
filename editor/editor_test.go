package editor

import (
	"errors"
	"testing"

	"metromap/core"
)

func TestDeleteStationCascade(t *testing.T) {
	e := New(nil)
	a := e.AddStation("Alpha", 0, 0, core.StationCircle)
	b := e.AddStation("Bravo", 100, 0, core.StationCircle)
	c := e.AddStation("Charlie", 200, 0, core.StationCircle)

	l1, err := e.NewLine("Central", "#e32017", 4, a.ID)
	if err != nil {
		t.Fatalf("NewLine: %v", err)
	}
	if err := e.AppendStation(l1.ID, b.ID); err != nil {
		t.Fatalf("AppendStation: %v", err)
	}
	if err := e.AppendStation(l1.ID, c.ID); err != nil {
		t.Fatalf("AppendStation: %v", err)
	}

	l2, err := e.NewLine("Shuttle", "#0019a8", 4, b.ID)
	if err != nil {
		t.Fatalf("NewLine: %v", err)
	}

	if err := e.DeleteStation(b.ID); err != nil {
		t.Fatalf("DeleteStation: %v", err)
	}

	doc := e.Doc()
	if doc.StationByID(b.ID) != nil {
		t.Error("deleted station still present")
	}
	if line := doc.LineByID(l1.ID); line == nil {
		t.Error("line with remaining stations was deleted")
	} else if len(line.StationIDs) != 2 || line.Contains(b.ID) {
		t.Errorf("cascade left wrong sequence: %v", line.StationIDs)
	}
	// l2 only contained the deleted station and must be gone.
	if doc.LineByID(l2.ID) != nil {
		t.Error("line left with zero stations was not deleted")
	}
}

func TestSingleStationLineRetained(t *testing.T) {
	e := New(nil)
	a := e.AddStation("Alpha", 0, 0, core.StationCircle)
	b := e.AddStation("Bravo", 100, 0, core.StationCircle)

	line, err := e.NewLine("Stub", "#000000", 4, a.ID)
	if err != nil {
		t.Fatalf("NewLine: %v", err)
	}
	if err := e.AppendStation(line.ID, b.ID); err != nil {
		t.Fatalf("AppendStation: %v", err)
	}

	if err := e.DeleteStation(a.ID); err != nil {
		t.Fatalf("DeleteStation: %v", err)
	}
	if got := e.Doc().LineByID(line.ID); got == nil {
		t.Fatal("one-station line should be retained")
	} else if len(got.StationIDs) != 1 {
		t.Errorf("sequence = %v, want single station", got.StationIDs)
	}
}

func TestAppendStationRejectsAdjacentDuplicate(t *testing.T) {
	e := New(nil)
	a := e.AddStation("Alpha", 0, 0, core.StationCircle)
	b := e.AddStation("Bravo", 100, 0, core.StationCircle)

	line, _ := e.NewLine("Loop", "#ffffff", 4, a.ID)
	if err := e.AppendStation(line.ID, a.ID); !errors.Is(err, ErrAdjacentDuplicate) {
		t.Errorf("adjacent duplicate accepted: %v", err)
	}
	if err := e.AppendStation(line.ID, b.ID); err != nil {
		t.Fatalf("AppendStation: %v", err)
	}
	// Non-adjacent repetition is legal (figure-of-eight routes).
	if err := e.AppendStation(line.ID, a.ID); err != nil {
		t.Errorf("non-adjacent repeat rejected: %v", err)
	}
}

func TestUndoRedo(t *testing.T) {
	e := New(nil)
	e.AddStation("Alpha", 0, 0, core.StationCircle)
	e.AddStation("Bravo", 100, 0, core.StationCircle)

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if len(e.Doc().Stations) != 1 {
		t.Errorf("after undo: %d stations, want 1", len(e.Doc().Stations))
	}

	if err := e.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if len(e.Doc().Stations) != 2 {
		t.Errorf("after redo: %d stations, want 2", len(e.Doc().Stations))
	}

	// A new mutation truncates the redo branch.
	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	e.AddStation("Charlie", 50, 50, core.StationCircle)
	if e.CanRedo() {
		t.Error("redo should be impossible after a fresh mutation")
	}
}

func TestSelectionIsExclusive(t *testing.T) {
	e := New(nil)
	a := e.AddStation("Alpha", 0, 0, core.StationCircle)
	b := e.AddStation("Bravo", 100, 0, core.StationCircle)

	e.SelectStation(a.ID)
	e.SelectStation(b.ID)

	if e.Doc().StationByID(a.ID).Selected {
		t.Error("previous selection not cleared")
	}
	if !e.Doc().StationByID(b.ID).Selected {
		t.Error("station not selected")
	}
}

func TestIDsAreUnique(t *testing.T) {
	e := New(nil)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		st := e.AddStation("S", float64(i), 0, core.StationCircle)
		if seen[st.ID] {
			t.Fatalf("duplicate station ID %q", st.ID)
		}
		seen[st.ID] = true
	}
}
