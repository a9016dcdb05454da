package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"inkling/core"
)

// ShadowModel is one module's logical node/edge view of a diagram.
type ShadowModel struct {
	Nodes []core.ShadowNode `json:"nodes"`
	Edges []core.ShadowEdge `json:"edges"`
}

// ShadowStore persists shadow models across sessions, keyed by module
// id. The default edit flow derives shadow nodes on demand and never
// touches this store; it exists for hosts that want logical-node
// continuity between sessions.
type ShadowStore struct {
	path   string
	models map[string]*ShadowModel
}

// OpenShadowStore loads (or initializes) a shadow store file.
func OpenShadowStore(path string) (*ShadowStore, error) {
	s := &ShadowStore{
		path:   path,
		models: make(map[string]*ShadowModel),
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read shadow store: %w", err)
	}
	if err := json.Unmarshal(data, &s.models); err != nil {
		return nil, fmt.Errorf("failed to parse shadow store: %w", err)
	}
	return s, nil
}

// Get returns the shadow model for a module, or nil.
func (s *ShadowStore) Get(moduleID string) *ShadowModel {
	return s.models[moduleID]
}

// Put replaces the shadow model for a module.
func (s *ShadowStore) Put(moduleID string, model *ShadowModel) {
	s.models[moduleID] = model
}

// Flush writes the store back to disk.
func (s *ShadowStore) Flush() error {
	data, err := json.MarshalIndent(s.models, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal shadow store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write shadow store: %w", err)
	}
	return nil
}
