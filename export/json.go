package export

import (
	"encoding/json"

	"inkling/core"
)

// JSONExporter exports element lists as indented JSON.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts the non-deleted elements to JSON.
func (e *JSONExporter) Export(elements []core.Element) (string, error) {
	data, err := json.MarshalIndent(core.Alive(elements), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetFileExtension returns the file extension for JSON.
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name.
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
