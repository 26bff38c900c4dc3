package editor

import (
	"encoding/json"

	"metromap/core"
)

// History manages undo/redo state as a bounded list of JSON document
// snapshots. Snapshots are cheap at this document scale and make undo
// trivially correct: restoring is just unmarshalling.
type History struct {
	states   []string
	current  int // Index of the state the editor is at
	capacity int
}

// NewHistory creates a history with the given capacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 50
	}
	return &History{current: -1, capacity: capacity}
}

// Push records the document as the newest state, discarding any redo
// states beyond the current position and the oldest state once the
// capacity is exceeded.
func (h *History) Push(doc *core.Map) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	h.states = append(h.states[:h.current+1], string(data))
	if len(h.states) > h.capacity {
		h.states = h.states[len(h.states)-h.capacity:]
	}
	h.current = len(h.states) - 1
	return nil
}

// CanUndo returns true when an older state exists.
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true when a newer state exists.
func (h *History) CanRedo() bool {
	return h.current >= 0 && h.current < len(h.states)-1
}

// Undo returns the previous document state, or nil when at the oldest.
func (h *History) Undo() (*core.Map, error) {
	if !h.CanUndo() {
		return nil, nil
	}
	h.current--
	return h.load()
}

// Redo returns the next document state, or nil when at the newest.
func (h *History) Redo() (*core.Map, error) {
	if !h.CanRedo() {
		return nil, nil
	}
	h.current++
	return h.load()
}

func (h *History) load() (*core.Map, error) {
	var doc core.Map
	if err := json.Unmarshal([]byte(h.states[h.current]), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Stats returns the current position and total number of states.
func (h *History) Stats() (current, total int) {
	return h.current + 1, len(h.states)
}

// Clear drops all recorded states.
func (h *History) Clear() {
	h.states = nil
	h.current = -1
}
