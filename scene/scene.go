// Package scene provides the rendering-engine contract the editor
// talks to, plus JSON persistence for element lists and the optional
// shadow-model store.
package scene

import (
	"inkling/core"
)

// Scene is the rendering engine wrapper contract: read the current
// element list, write a new one. The engine treats the scene as the
// authoritative current state and never caches a copy across calls.
type Scene interface {
	GetElements() []core.Element
	UpdateScene(elements []core.Element)
}

// Memory is an in-process scene, used by the TUI and by tests.
type Memory struct {
	elements []core.Element
}

// NewMemory creates an in-memory scene seeded with elements.
func NewMemory(elements []core.Element) *Memory {
	return &Memory{elements: elements}
}

// GetElements returns the current element list.
func (m *Memory) GetElements() []core.Element {
	return m.elements
}

// UpdateScene replaces the element list wholesale.
func (m *Memory) UpdateScene(elements []core.Element) {
	m.elements = elements
}
