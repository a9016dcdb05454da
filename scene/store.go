package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"inkling/core"
)

// Document is the on-disk file format for a saved diagram.
type Document struct {
	Type     string         `json:"type"`
	Version  int            `json:"version"`
	Name     string         `json:"name,omitempty"`
	Elements []core.Element `json:"elements"`
}

// docType and docVersion identify the file format.
const (
	docType    = "inkling"
	docVersion = 1
)

// Load reads an element list from a diagram file.
func Load(path string) ([]core.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if doc.Type != "" && doc.Type != docType {
		return nil, fmt.Errorf("%s is not a diagram file (type %q)", path, doc.Type)
	}
	if doc.Elements == nil {
		doc.Elements = []core.Element{}
	}
	return doc.Elements, nil
}

// Save writes an element list to a diagram file.
func Save(path string, elements []core.Element) error {
	doc := Document{
		Type:     docType,
		Version:  docVersion,
		Elements: elements,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal diagram: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
