// Package export serializes transit maps: JSON documents, SVG
// drawings and rasterized PNG images.
package export

import (
	"fmt"

	"metromap/core"
	"metromap/layout"
)

// AppName is stamped into export metadata.
const AppName = "metromap"

// Version is stamped into export metadata.
const Version = "1.0"

// Format represents an export format.
type Format string

const (
	// FormatJSON exports the raw document (lossless).
	FormatJSON Format = "json"
	// FormatSVG exports the laid-out schematic as an SVG drawing.
	FormatSVG Format = "svg"
	// FormatPNG exports the laid-out schematic as a raster image.
	FormatPNG Format = "png"
)

// Exporter converts a map document to a target format.
type Exporter interface {
	// Export converts the document to the target format.
	Export(doc *core.Map) ([]byte, error)
	// FileExtension returns the recommended file extension.
	FileExtension() string
	// FormatName returns a human-readable name for this format.
	FormatName() string
}

// NewExporter creates an exporter for the specified format. Formats
// that draw geometry run the given layout engine.
func NewExporter(format Format, engine *layout.Engine) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatSVG:
		return NewSVGExporter(engine), nil
	case FormatPNG:
		return NewPNGExporter(engine), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}
