package core

// Bounds is an axis-aligned rectangle in canvas coordinates.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the width of the bounds.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the height of the bounds.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// CenterX returns the horizontal center of the bounds.
func (b Bounds) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }

// CenterY returns the vertical center of the bounds.
func (b Bounds) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }

// Union expands the bounds to include other.
func (b Bounds) Union(other Bounds) Bounds {
	out := b
	if other.MinX < out.MinX {
		out.MinX = other.MinX
	}
	if other.MinY < out.MinY {
		out.MinY = other.MinY
	}
	if other.MaxX > out.MaxX {
		out.MaxX = other.MaxX
	}
	if other.MaxY > out.MaxY {
		out.MaxY = other.MaxY
	}
	return out
}

// BoundsOf computes the union bounding box of the given elements.
// Returns nil when no element contributes geometry.
func BoundsOf(elements []Element) *Bounds {
	var out *Bounds
	for _, el := range elements {
		if el.IsDeleted {
			continue
		}
		eb := Bounds{MinX: el.X, MinY: el.Y, MaxX: el.X + el.Width, MaxY: el.Y + el.Height}
		if out == nil {
			b := eb
			out = &b
		} else {
			b := out.Union(eb)
			out = &b
		}
	}
	return out
}
