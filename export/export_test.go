package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"metromap/core"
)

func sampleDoc() *core.Map {
	return &core.Map{
		Stations: []core.Station{
			{ID: "s1", Name: "Alpha", X: 0, Y: 0, Type: core.StationCircle},
			{ID: "s2", Name: "Bravo", X: 100, Y: 0, Type: core.StationInterchange},
			{ID: "s3", Name: "Charlie", X: 200, Y: 80, Type: core.StationSquare},
		},
		Lines: []core.Line{
			{ID: "l1", Name: "Central", Color: "#e32017", Width: 4, StationIDs: []string{"s1", "s2", "s3"}},
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	doc := sampleDoc()
	data, err := NewJSONExporter().Export(doc)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	back, err := ImportJSON(data)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if len(back.Stations) != 3 || len(back.Lines) != 1 {
		t.Errorf("round trip lost records: %d stations, %d lines", len(back.Stations), len(back.Lines))
	}
	if back.Lines[0].StationIDs[2] != "s3" {
		t.Errorf("round trip mangled sequence: %v", back.Lines[0].StationIDs)
	}
	if back.Metadata.App != AppName || back.Metadata.Created == "" {
		t.Errorf("export metadata missing: %+v", back.Metadata)
	}
	// The exporter must not mutate the source document.
	if doc.Metadata.App != "" {
		t.Error("export stamped metadata onto the source document")
	}
}

func TestImportJSONMalformed(t *testing.T) {
	if _, err := ImportJSON([]byte("{not json")); err == nil {
		t.Error("malformed input should fail")
	}
}

func TestSVGExport(t *testing.T) {
	data, err := NewSVGExporter(nil).Export(sampleDoc())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	svg := string(data)

	if !strings.HasPrefix(svg, "<svg") {
		t.Errorf("output does not start with an svg element")
	}
	if !strings.Contains(svg, `stroke="#e32017"`) {
		t.Error("line color missing from output")
	}
	if strings.Count(svg, "<path") != 1 {
		t.Errorf("expected one path element, got %d", strings.Count(svg, "<path"))
	}
	if !strings.Contains(svg, ">Bravo</text>") {
		t.Error("station label missing from output")
	}
}

func TestSVGExportEmptyDocument(t *testing.T) {
	data, err := NewSVGExporter(nil).Export(&core.Map{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(string(data), "viewBox") {
		t.Error("empty document should still produce a valid svg")
	}
}

func TestPNGExportDecodes(t *testing.T) {
	data, err := NewPNGExporter(nil).Export(sampleDoc())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	if img.Bounds().Dx() < 200 || img.Bounds().Dy() < 80 {
		t.Errorf("image too small for the map extent: %v", img.Bounds())
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "svg", "png"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("unknown format accepted")
	}
}
