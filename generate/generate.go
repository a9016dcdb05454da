// Package generate lays out a logical node/edge listing into visual
// elements on a deterministic grid.
package generate

import (
	"time"

	"inkling/core"
	"inkling/logger"
	"inkling/protocol"
)

// Grid layout constants. Positions are a pure function of row and
// column; there is no overlap avoidance beyond the grid itself.
const (
	NodeWidth  = 160.0
	NodeHeight = 70.0
	HSpacing   = 60.0
	VSpacing   = 80.0
	StartX     = 100.0
	StartY     = 100.0

	DefaultFontSize = 20.0
	DefaultFont     = "helvetica"
)

// style pairs a shape kind with its stroke and fill colors.
type style struct {
	kind   core.Kind
	stroke string
	fill   string
}

// typeStyles maps logical node types to shape kinds and colors.
// Unknown types fall back to the "" entry rather than failing.
var typeStyles = map[string]style{
	"process":  {core.KindRectangle, "#1971c2", "#a5d8ff"},
	"decision": {core.KindDiamond, "#f08c00", "#ffec99"},
	"start":    {core.KindEllipse, "#2f9e44", "#b2f2bb"},
	"end":      {core.KindEllipse, "#e03131", "#ffc9c9"},
	"data":     {core.KindRectangle, "#9c36b5", "#eebefa"},
	"":         {core.KindRectangle, "#1e1e1e", "#e9ecef"},
}

// StyleFor resolves a logical node type to its shape kind and colors.
func StyleFor(nodeType string) (core.Kind, string, string) {
	s, ok := typeStyles[nodeType]
	if !ok {
		s = typeStyles[""]
	}
	return s.kind, s.stroke, s.fill
}

// Result is the output of laying out a diagram: the visual elements
// plus the shadow model describing them logically.
type Result struct {
	Elements    []core.Element
	ShadowNodes []core.ShadowNode
	ShadowEdges []core.ShadowEdge
}

// Diagram converts a node/edge listing into visual elements. Each node
// yields a shape and a centered label text sharing a fresh group id,
// with the logical node id stashed in customData for later recovery.
// Edges with unknown endpoints are skipped with a warning, never an
// error.
func Diagram(doc *protocol.GeneratedDiagram, moduleID string, log *logger.Logger) *Result {
	res := &Result{
		Elements:    []core.Element{},
		ShadowNodes: []core.ShadowNode{},
		ShadowEdges: []core.ShadowEdge{},
	}
	if doc == nil {
		return res
	}

	now := time.Now()
	// Shapes are referenced by index: taking pointers up front would
	// dangle once later appends reallocate the slice.
	shapeIndex := make(map[string]int, len(doc.Nodes))

	for _, spec := range doc.Nodes {
		kind, stroke, fill := StyleFor(spec.Type)
		groupID := core.NewID("group")
		shapeID := core.NewID("shape")
		textID := core.NewID("text")

		x := StartX + float64(spec.Column)*(NodeWidth+HSpacing)
		y := StartY + float64(spec.Row)*(NodeHeight+VSpacing)

		shape := core.Element{
			ID:              shapeID,
			Kind:            kind,
			X:               x,
			Y:               y,
			Width:           NodeWidth,
			Height:          NodeHeight,
			GroupIDs:        []string{groupID},
			Version:         1,
			StrokeColor:     stroke,
			BackgroundColor: fill,
			BoundElements:   []core.BoundRef{{ID: textID, Type: "text"}},
			CustomData: map[string]any{
				"nodeId":   spec.ID,
				"nodeType": spec.Type,
				"label":    spec.Label,
			},
		}
		if moduleID != "" {
			shape.CustomData["moduleId"] = moduleID
		}

		label := core.Element{
			ID:           textID,
			Kind:         core.KindText,
			X:            x + NodeWidth/4,
			Y:            y + NodeHeight/2 - DefaultFontSize*0.7,
			Width:        NodeWidth / 2,
			Height:       DefaultFontSize * 1.4,
			GroupIDs:     []string{groupID},
			Version:      1,
			Text:         spec.Label,
			OriginalText: spec.Label,
			ContainerID:  shapeID,
			FontSize:     DefaultFontSize,
			FontFamily:   DefaultFont,
		}

		res.Elements = append(res.Elements, shape, label)
		shapeIndex[spec.ID] = len(res.Elements) - 2

		res.ShadowNodes = append(res.ShadowNodes, core.ShadowNode{
			ID:              spec.ID,
			Type:            spec.Type,
			Label:           spec.Label,
			ElementIDs:      []string{shapeID, textID},
			LogicalPosition: core.GridPos{Row: spec.Row, Column: spec.Column},
			Position: &core.Bounds{
				MinX: x, MinY: y,
				MaxX: x + NodeWidth, MaxY: y + NodeHeight,
			},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	for _, spec := range doc.Edges {
		si, okS := shapeIndex[spec.Source]
		ti, okT := shapeIndex[spec.Target]
		if !okS || !okT {
			log.Warn("skipping edge %s -> %s: unknown endpoint", spec.Source, spec.Target)
			continue
		}

		arrow := Connect(&res.Elements[si], &res.Elements[ti], spec.Label)
		res.Elements = append(res.Elements, arrow...)

		edgeID := spec.ID
		if edgeID == "" {
			edgeID = core.NewID("edge")
		}
		res.ShadowEdges = append(res.ShadowEdges, core.ShadowEdge{
			ID:           edgeID,
			Type:         "arrow",
			Label:        spec.Label,
			SourceNodeID: spec.Source,
			TargetNodeID: spec.Target,
			ElementID:    arrow[0].ID,
		})
	}

	return res
}

// Connect builds an arrow between two shapes, choosing adjacent edges
// by relative position: bottom-to-top when the shapes stack
// vertically, side-to-side otherwise. The arrow is registered in both
// shapes' boundElements so the rendering engine keeps it attached when
// the shapes move. A non-empty label yields a second, bound text
// element. The source and target elements are mutated in place.
func Connect(source, target *core.Element, label string) []core.Element {
	arrowID := core.NewID("arrow")

	var sx, sy, tx, ty float64
	vertical := absf(target.CenterY()-source.CenterY()) >= absf(target.CenterX()-source.CenterX())
	switch {
	case vertical && target.CenterY() >= source.CenterY():
		sx, sy = source.CenterX(), source.Y+source.Height
		tx, ty = target.CenterX(), target.Y
	case vertical:
		sx, sy = source.CenterX(), source.Y
		tx, ty = target.CenterX(), target.Y+target.Height
	case target.CenterX() >= source.CenterX():
		sx, sy = source.X+source.Width, source.CenterY()
		tx, ty = target.X, target.CenterY()
	default:
		sx, sy = source.X, source.CenterY()
		tx, ty = target.X+target.Width, target.CenterY()
	}

	arrow := core.Element{
		ID:      arrowID,
		Kind:    core.KindArrow,
		X:       sx,
		Y:       sy,
		Width:   absf(tx - sx),
		Height:  absf(ty - sy),
		Version: 1,
		Points:  [][2]float64{{0, 0}, {tx - sx, ty - sy}},
		StartBinding: &core.Binding{
			ElementID: source.ID,
			Gap:       4,
		},
		EndBinding: &core.Binding{
			ElementID: target.ID,
			Gap:       4,
		},
	}

	source.BoundElements = append(source.BoundElements, core.BoundRef{ID: arrowID, Type: "arrow"})
	target.BoundElements = append(target.BoundElements, core.BoundRef{ID: arrowID, Type: "arrow"})

	out := []core.Element{arrow}
	if label != "" {
		textID := core.NewID("text")
		out[0].BoundElements = append(out[0].BoundElements, core.BoundRef{ID: textID, Type: "text"})
		fontSize := DefaultFontSize * 0.8
		w, h := core.EstimateTextSize(label, fontSize)
		out = append(out, core.Element{
			ID:           textID,
			Kind:         core.KindText,
			X:            (sx+tx)/2 - w/2,
			Y:            (sy+ty)/2 - h/2,
			Width:        w,
			Height:       h,
			Version:      1,
			Text:         label,
			OriginalText: label,
			ContainerID:  arrowID,
			FontSize:     fontSize,
			FontFamily:   DefaultFont,
		})
	}
	return out
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
