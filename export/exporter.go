// Package export converts element lists to interchange formats.
package export

import (
	"fmt"

	"inkling/core"
)

// Exporter converts an element list to a textual format.
type Exporter interface {
	Export(elements []core.Element) (string, error)
	GetFileExtension() string
	GetFormatName() string
}

// ForFormat returns the exporter for a format name.
func ForFormat(format string) (Exporter, error) {
	switch format {
	case "json":
		return NewJSONExporter(), nil
	case "mermaid":
		return NewMermaidExporter(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
