package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"metromap/core"
	"metromap/db"
	"metromap/layout"
)

// LinePath is the drawable geometry of one line.
type LinePath struct {
	LineID string  `json:"lineId"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
	D      string  `json:"d"` // SVG path data
}

// StationShape is the drawable descriptor of one station. Kind is
// either "standard" or "pill"; the remaining fields depend on it.
type StationShape struct {
	StationID string  `json:"stationId"`
	Kind      string  `json:"kind"`
	Type      string  `json:"type,omitempty"`
	Radius    float64 `json:"radius,omitempty"`
	LineCount int     `json:"lineCount,omitempty"`
	Angle     float64 `json:"angle,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
}

// layoutHandler runs the layout engine over a posted document and
// returns the derived geometry. It has no side effects.
func (s *Server) layoutHandler(c *gin.Context) {
	var doc core.Map
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid map document"})
		return
	}

	res := s.engine.Layout(&doc)

	paths := make([]LinePath, 0, len(doc.Lines))
	for i := range doc.Lines {
		line := &doc.Lines[i]
		paths = append(paths, LinePath{
			LineID: line.ID,
			Color:  line.Color,
			Width:  line.Width,
			D:      res.Paths[line.ID].Data(),
		})
	}

	shapes := make([]StationShape, 0, len(doc.Stations))
	for i := range doc.Stations {
		st := &doc.Stations[i]
		shapes = append(shapes, describeShape(st.ID, res.Shapes[st.ID]))
	}

	c.JSON(http.StatusOK, gin.H{"paths": paths, "stations": shapes})
}

func describeShape(stationID string, shape layout.Shape) StationShape {
	switch sh := shape.(type) {
	case layout.PillShape:
		return StationShape{
			StationID: stationID,
			Kind:      "pill",
			LineCount: sh.LineCount,
			Angle:     sh.Angle,
			Width:     sh.Width,
			Height:    sh.Height,
		}
	case layout.StandardShape:
		return StationShape{
			StationID: stationID,
			Kind:      "standard",
			Type:      string(sh.Type),
			Radius:    sh.Radius,
		}
	default:
		return StationShape{StationID: stationID, Kind: "standard"}
	}
}

type suggestRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) suggestTheme(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(http.StatusOK, s.suggester.Theme(c.Request.Context(), req.Prompt))
}

func (s *Server) suggestLayout(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	doc := s.suggester.Layout(c.Request.Context(), req.Prompt)
	if doc == nil {
		// No change: the client keeps its current document.
		c.JSON(http.StatusOK, gin.H{"map": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"map": doc})
}

type saveMapRequest struct {
	Name    string   `json:"name" binding:"required"`
	Map     core.Map `json:"map"`
	Palette []string `json:"palette"`
}

func (s *Server) requireDB(c *gin.Context) bool {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence is not available"})
		return false
	}
	return true
}

func (s *Server) listMaps(c *gin.Context) {
	if !s.requireDB(c) {
		return
	}
	claims := currentClaims(c)

	var maps []db.SavedMap
	if err := s.db.Where("owner_id = ?", claims.UserID).Order("updated_at desc").Find(&maps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing maps failed"})
		return
	}
	c.JSON(http.StatusOK, maps)
}

func (s *Server) createMap(c *gin.Context) {
	if !s.requireDB(c) {
		return
	}
	claims := currentClaims(c)

	var req saveMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	data, err := json.Marshal(req.Map)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid map document"})
		return
	}

	saved := db.SavedMap{
		OwnerID: claims.UserID,
		Name:    req.Name,
		Data:    string(data),
		Palette: pq.StringArray(req.Palette),
	}
	if err := s.db.Create(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "saving map failed"})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// ownedMap loads a saved map and enforces owner scoping.
func (s *Server) ownedMap(c *gin.Context) (*db.SavedMap, bool) {
	claims := currentClaims(c)

	var saved db.SavedMap
	if err := s.db.First(&saved, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "map not found"})
		return nil, false
	}
	if saved.OwnerID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your map"})
		return nil, false
	}
	return &saved, true
}

func (s *Server) getMap(c *gin.Context) {
	if !s.requireDB(c) {
		return
	}
	saved, ok := s.ownedMap(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) updateMap(c *gin.Context) {
	if !s.requireDB(c) {
		return
	}
	saved, ok := s.ownedMap(c)
	if !ok {
		return
	}

	var req saveMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	data, err := json.Marshal(req.Map)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid map document"})
		return
	}

	saved.Name = req.Name
	saved.Data = string(data)
	saved.Palette = pq.StringArray(req.Palette)
	if err := s.db.Save(saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "updating map failed"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) deleteMap(c *gin.Context) {
	if !s.requireDB(c) {
		return
	}
	saved, ok := s.ownedMap(c)
	if !ok {
		return
	}
	if err := s.db.Delete(saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "deleting map failed"})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
