// Package core contains the fundamental types used throughout the inkling diagram engine.
package core

// Kind identifies what a visual element is.
type Kind string

// Element kinds understood by the rendering engines.
const (
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindDiamond   Kind = "diamond"
	KindText      Kind = "text"
	KindArrow     Kind = "arrow"
	KindLine      Kind = "line"
)

// IsShape returns true for closed shape kinds that can carry a label.
func (k Kind) IsShape() bool {
	return k == KindRectangle || k == KindEllipse || k == KindDiamond
}

// IsLinear returns true for point-based kinds (arrows and lines).
func (k Kind) IsLinear() bool {
	return k == KindArrow || k == KindLine
}

// BoundRef is a back-reference from one element to another element
// attached to it, such as a shape referencing its label or its arrows.
type BoundRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Binding attaches one endpoint of an arrow to a shape.
type Binding struct {
	ElementID string  `json:"elementId"`
	Focus     float64 `json:"focus"`
	Gap       float64 `json:"gap"`
}

// Element is one drawable primitive in the rendering engine's native
// format. The set of meaningful fields depends on Kind: shapes use the
// common geometry plus CustomData, text elements add the text fields,
// arrows and lines add Points and the endpoint bindings.
type Element struct {
	ID            string         `json:"id"`
	Kind          Kind           `json:"type"`
	X             float64        `json:"x"`
	Y             float64        `json:"y"`
	Width         float64        `json:"width"`
	Height        float64        `json:"height"`
	IsDeleted     bool           `json:"isDeleted,omitempty"`
	GroupIDs      []string       `json:"groupIds,omitempty"`
	Version       int            `json:"version"`
	BoundElements []BoundRef     `json:"boundElements,omitempty"`
	StrokeColor   string         `json:"strokeColor,omitempty"`
	BackgroundColor string       `json:"backgroundColor,omitempty"`
	CustomData    map[string]any `json:"customData,omitempty"`

	// Text elements only.
	Text         string  `json:"text,omitempty"`
	OriginalText string  `json:"originalText,omitempty"`
	ContainerID  string  `json:"containerId,omitempty"`
	FontSize     float64 `json:"fontSize,omitempty"`
	FontFamily   string  `json:"fontFamily,omitempty"`

	// Arrows and lines only. Points are offsets from (X, Y).
	Points       [][2]float64 `json:"points,omitempty"`
	StartBinding *Binding     `json:"startBinding,omitempty"`
	EndBinding   *Binding     `json:"endBinding,omitempty"`
}

// Clone creates a deep copy of the element.
func (e Element) Clone() Element {
	clone := e
	if e.GroupIDs != nil {
		clone.GroupIDs = make([]string, len(e.GroupIDs))
		copy(clone.GroupIDs, e.GroupIDs)
	}
	if e.BoundElements != nil {
		clone.BoundElements = make([]BoundRef, len(e.BoundElements))
		copy(clone.BoundElements, e.BoundElements)
	}
	if e.CustomData != nil {
		clone.CustomData = make(map[string]any, len(e.CustomData))
		for k, v := range e.CustomData {
			clone.CustomData[k] = v
		}
	}
	if e.Points != nil {
		clone.Points = make([][2]float64, len(e.Points))
		copy(clone.Points, e.Points)
	}
	if e.StartBinding != nil {
		b := *e.StartBinding
		clone.StartBinding = &b
	}
	if e.EndBinding != nil {
		b := *e.EndBinding
		clone.EndBinding = &b
	}
	return clone
}

// PrimaryGroup returns the first group id, which is treated as the
// element's owning group, or "" when the element is ungrouped.
func (e Element) PrimaryGroup() string {
	if len(e.GroupIDs) == 0 {
		return ""
	}
	return e.GroupIDs[0]
}

// CenterX returns the horizontal center of the element.
func (e Element) CenterX() float64 { return e.X + e.Width/2 }

// CenterY returns the vertical center of the element.
func (e Element) CenterY() float64 { return e.Y + e.Height/2 }

// HasBound reports whether the element's boundElements list contains a
// reference of the given type to the given id.
func (e Element) HasBound(id, typ string) bool {
	for _, ref := range e.BoundElements {
		if ref.ID == id && ref.Type == typ {
			return true
		}
	}
	return false
}

// NodeID returns the logical node id stashed in customData, or "".
func (e Element) NodeID() string {
	if e.CustomData == nil {
		return ""
	}
	if id, ok := e.CustomData["nodeId"].(string); ok {
		return id
	}
	return ""
}

// ByID finds the element with the given id, deleted or not.
// Returns nil if no element has that id.
func ByID(elements []Element, id string) *Element {
	for i := range elements {
		if elements[i].ID == id {
			return &elements[i]
		}
	}
	return nil
}

// AliveByID finds the non-deleted element with the given id.
func AliveByID(elements []Element, id string) *Element {
	el := ByID(elements, id)
	if el == nil || el.IsDeleted {
		return nil
	}
	return el
}

// Alive returns the non-deleted elements, preserving order.
func Alive(elements []Element) []Element {
	out := make([]Element, 0, len(elements))
	for _, el := range elements {
		if !el.IsDeleted {
			out = append(out, el)
		}
	}
	return out
}

// Shapes returns the non-deleted closed shapes, preserving order.
func Shapes(elements []Element) []Element {
	out := make([]Element, 0, len(elements))
	for _, el := range elements {
		if !el.IsDeleted && el.Kind.IsShape() {
			out = append(out, el)
		}
	}
	return out
}
