// Package editor holds the mutable application state around the layout
// engine: station and line mutation with its cascade rules, selection,
// and undo/redo. The layout engine itself never mutates anything; all
// changes to the document go through here.
package editor

import (
	"errors"
	"fmt"

	"metromap/core"
)

var (
	ErrStationNotFound   = errors.New("station not found")
	ErrLineNotFound      = errors.New("line not found")
	ErrAdjacentDuplicate = errors.New("station already at the end of the line")
)

// Editor owns a map document and records every mutation in history.
type Editor struct {
	doc     *core.Map
	history *History
	nextID  int
}

// New creates an editor around the given document (an empty map when
// nil) with the initial state already recorded.
func New(doc *core.Map) *Editor {
	if doc == nil {
		doc = &core.Map{}
	}
	e := &Editor{
		doc:     doc,
		history: NewHistory(50),
	}
	e.history.Push(doc)
	return e
}

// Doc returns the current document.
func (e *Editor) Doc() *core.Map {
	return e.doc
}

// snapshot records the document after a successful mutation.
func (e *Editor) snapshot() {
	e.history.Push(e.doc)
}

// newID generates a document-unique identifier with the given prefix.
func (e *Editor) newID(prefix string) string {
	for {
		e.nextID++
		id := fmt.Sprintf("%s%d", prefix, e.nextID)
		if e.doc.StationByID(id) == nil && e.doc.LineByID(id) == nil {
			return id
		}
	}
}

// AddStation places a new station and returns it.
func (e *Editor) AddStation(name string, x, y float64, typ core.StationType) *core.Station {
	if typ == "" {
		typ = core.StationCircle
	}
	st := core.Station{
		ID:   e.newID("s"),
		Name: name,
		X:    x,
		Y:    y,
		Type: typ,
	}
	e.doc.Stations = append(e.doc.Stations, st)
	e.snapshot()
	return e.doc.StationByID(st.ID)
}

// MoveStation repositions a station.
func (e *Editor) MoveStation(id string, x, y float64) error {
	st := e.doc.StationByID(id)
	if st == nil {
		return ErrStationNotFound
	}
	st.X, st.Y = x, y
	e.snapshot()
	return nil
}

// RenameStation changes a station's display name.
func (e *Editor) RenameStation(id, name string) error {
	st := e.doc.StationByID(id)
	if st == nil {
		return ErrStationNotFound
	}
	st.Name = name
	e.snapshot()
	return nil
}

// SetStationType changes a station's marker type.
func (e *Editor) SetStationType(id string, typ core.StationType) error {
	st := e.doc.StationByID(id)
	if st == nil {
		return ErrStationNotFound
	}
	st.Type = typ
	e.snapshot()
	return nil
}

// SetLabelOffset moves a station's name label, clamped to the maximum
// label radius.
func (e *Editor) SetLabelOffset(id string, offset core.Point) error {
	st := e.doc.StationByID(id)
	if st == nil {
		return ErrStationNotFound
	}
	st.SetLabelOffset(offset)
	e.snapshot()
	return nil
}

// SelectStation marks a single station as selected, clearing any other
// selection. Selection is transient state and is not recorded in
// history.
func (e *Editor) SelectStation(id string) {
	for i := range e.doc.Stations {
		e.doc.Stations[i].Selected = e.doc.Stations[i].ID == id
	}
}

// DeleteStation removes a station. Its ID is removed from every line's
// sequence; lines left with zero stations are deleted too. Lines left
// with a single station are retained (they simply render nothing).
func (e *Editor) DeleteStation(id string) error {
	idx := -1
	for i := range e.doc.Stations {
		if e.doc.Stations[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrStationNotFound
	}
	e.doc.Stations = append(e.doc.Stations[:idx], e.doc.Stations[idx+1:]...)

	kept := e.doc.Lines[:0]
	for i := range e.doc.Lines {
		line := &e.doc.Lines[i]
		ids := line.StationIDs[:0]
		for _, sid := range line.StationIDs {
			if sid != id {
				ids = append(ids, sid)
			}
		}
		line.StationIDs = ids
		if len(line.StationIDs) > 0 {
			kept = append(kept, *line)
		}
	}
	e.doc.Lines = kept

	e.snapshot()
	return nil
}

// NewLine begins a line at the given station, as when line drawing
// starts with a click.
func (e *Editor) NewLine(name, color string, width float64, firstStationID string) (*core.Line, error) {
	if e.doc.StationByID(firstStationID) == nil {
		return nil, ErrStationNotFound
	}
	line := core.Line{
		ID:         e.newID("l"),
		Name:       name,
		Color:      color,
		Width:      width,
		StationIDs: []string{firstStationID},
	}
	e.doc.Lines = append(e.doc.Lines, line)
	e.snapshot()
	return e.doc.LineByID(line.ID), nil
}

// AppendStation extends a line with another station. A station may
// appear on the line more than once, but not in two adjacent slots.
func (e *Editor) AppendStation(lineID, stationID string) error {
	line := e.doc.LineByID(lineID)
	if line == nil {
		return ErrLineNotFound
	}
	if e.doc.StationByID(stationID) == nil {
		return ErrStationNotFound
	}
	if n := len(line.StationIDs); n > 0 && line.StationIDs[n-1] == stationID {
		return ErrAdjacentDuplicate
	}
	line.StationIDs = append(line.StationIDs, stationID)
	e.snapshot()
	return nil
}

// UpdateLine edits a line's display properties.
func (e *Editor) UpdateLine(id, name, color string, width float64, closedLoop, alternateRoute bool) error {
	line := e.doc.LineByID(id)
	if line == nil {
		return ErrLineNotFound
	}
	line.Name = name
	line.Color = color
	line.Width = width
	line.ClosedLoop = closedLoop
	line.AlternateRoute = alternateRoute
	e.snapshot()
	return nil
}

// DeleteLine removes a line. Stations are untouched.
func (e *Editor) DeleteLine(id string) error {
	for i := range e.doc.Lines {
		if e.doc.Lines[i].ID == id {
			e.doc.Lines = append(e.doc.Lines[:i], e.doc.Lines[i+1:]...)
			e.snapshot()
			return nil
		}
	}
	return ErrLineNotFound
}

// Replace swaps in a whole new document, as when a layout suggestion
// or import lands. The replacement is recorded as a single undoable
// step.
func (e *Editor) Replace(doc *core.Map) {
	if doc == nil {
		return
	}
	e.doc = doc
	e.snapshot()
}

// CanUndo reports whether an undo step exists.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether a redo step exists.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Undo restores the previous document state.
func (e *Editor) Undo() error {
	doc, err := e.history.Undo()
	if err != nil {
		return err
	}
	if doc != nil {
		e.doc = doc
	}
	return nil
}

// Redo restores the next document state.
func (e *Editor) Redo() error {
	doc, err := e.history.Redo()
	if err != nil {
		return err
	}
	if doc != nil {
		e.doc = doc
	}
	return nil
}
