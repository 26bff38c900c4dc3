package export

import (
	"encoding/json"
	"fmt"
	"time"

	"metromap/core"
)

// JSONExporter serializes the document verbatim, plus export metadata.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a document to indented JSON. The document itself is
// untouched; metadata is stamped on a copy.
func (e *JSONExporter) Export(doc *core.Map) ([]byte, error) {
	out := doc.Clone()
	out.Metadata.App = AppName
	out.Metadata.Version = Version
	out.Metadata.Created = time.Now().UTC().Format(time.RFC3339)
	return json.MarshalIndent(out, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string { return ".json" }

// FormatName returns the format name.
func (e *JSONExporter) FormatName() string { return "JSON" }

// ImportJSON parses a previously exported document.
func ImportJSON(data []byte) (*core.Map, error) {
	var doc core.Map
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing map document: %w", err)
	}
	return &doc, nil
}
