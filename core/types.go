// Package core contains the fundamental types used throughout the metromap editor.
package core

import "math"

// Point represents a 2D coordinate on the schematic plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StationType selects the standard marker drawn for a station.
type StationType string

const (
	StationCircle      StationType = "circle"
	StationSquare      StationType = "square"
	StationInterchange StationType = "interchange"
	StationWaypoint    StationType = "waypoint"
)

// MaxLabelRadius is the furthest a name label may sit from its station.
const MaxLabelRadius = 60.0

// Station is a named point on the map.
type Station struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Type        StationType `json:"type"`
	LabelOffset *Point      `json:"labelOffset,omitempty"`
	Selected    bool        `json:"-"` // Transient UI state, never persisted
}

// Pos returns the station's position as a Point.
func (s *Station) Pos() Point {
	return Point{X: s.X, Y: s.Y}
}

// SetLabelOffset positions the name label relative to the station,
// clamped to MaxLabelRadius.
func (s *Station) SetLabelOffset(p Point) {
	d := math.Hypot(p.X, p.Y)
	if d > MaxLabelRadius {
		scale := MaxLabelRadius / d
		p = Point{X: p.X * scale, Y: p.Y * scale}
	}
	s.LabelOffset = &p
}

// Line is an ordered run of stations drawn as a single colored stroke.
type Line struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Color          string   `json:"color"` // Hex, e.g. "#e32017"
	Width          float64  `json:"width"`
	StationIDs     []string `json:"stationIds"`
	ClosedLoop     bool     `json:"closedLoop,omitempty"`
	AlternateRoute bool     `json:"alternateRoute,omitempty"`
}

// Contains reports whether the line's sequence includes the station.
func (l *Line) Contains(stationID string) bool {
	for _, id := range l.StationIDs {
		if id == stationID {
			return true
		}
	}
	return false
}

// Metadata carries optional document metadata, populated on export.
type Metadata struct {
	Name    string `json:"name,omitempty"`
	App     string `json:"app,omitempty"`
	Created string `json:"created,omitempty"`
	Version string `json:"version,omitempty"`
}

// Map is a complete transit map document.
type Map struct {
	Stations []Station `json:"stations"`
	Lines    []Line    `json:"lines"`
	Metadata Metadata  `json:"metadata,omitempty"`
}

// StationByID returns the station with the given ID, or nil.
func (m *Map) StationByID(id string) *Station {
	for i := range m.Stations {
		if m.Stations[i].ID == id {
			return &m.Stations[i]
		}
	}
	return nil
}

// LineByID returns the line with the given ID, or nil.
func (m *Map) LineByID(id string) *Line {
	for i := range m.Lines {
		if m.Lines[i].ID == id {
			return &m.Lines[i]
		}
	}
	return nil
}

// LinesThrough returns every line whose sequence includes the station,
// in document order.
func (m *Map) LinesThrough(stationID string) []*Line {
	var lines []*Line
	for i := range m.Lines {
		if m.Lines[i].Contains(stationID) {
			lines = append(lines, &m.Lines[i])
		}
	}
	return lines
}

// Clone creates a deep copy of the map.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}

	clone := &Map{
		Stations: make([]Station, len(m.Stations)),
		Lines:    make([]Line, len(m.Lines)),
		Metadata: m.Metadata,
	}

	for i, st := range m.Stations {
		clone.Stations[i] = st
		if st.LabelOffset != nil {
			offset := *st.LabelOffset
			clone.Stations[i].LabelOffset = &offset
		}
	}

	for i, ln := range m.Lines {
		clone.Lines[i] = ln
		clone.Lines[i].StationIDs = make([]string, len(ln.StationIDs))
		copy(clone.Lines[i].StationIDs, ln.StationIDs)
	}

	return clone
}
