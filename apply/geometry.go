package apply

import (
	"inkling/core"
	"inkling/generate"
)

// containerPad is the symmetric padding a container keeps around its
// label.
const containerPad = 20.0

// EstimateTextSize measures a text run with the engine's shared width
// classes, defaulting the font size when unset.
func EstimateTextSize(text string, fontSize float64) (float64, float64) {
	if fontSize <= 0 {
		fontSize = generate.DefaultFontSize
	}
	return core.EstimateTextSize(text, fontSize)
}

// resizeLabel updates a text element's content and recomputes its
// geometry in place, keeping the text centered where it was.
func resizeLabel(label *core.Element, text string) {
	w, h := EstimateTextSize(text, label.FontSize)
	cx, cy := label.CenterX(), label.CenterY()
	label.Text = text
	label.OriginalText = text
	label.Width = w
	label.Height = h
	label.X = cx - w/2
	label.Y = cy - h/2
}

// growContainer expands a shape in place so a label of the given size
// fits with symmetric padding. Growth is symmetric about the shape's
// center, which stays fixed; the shape never shrinks. Reports whether
// anything changed.
func growContainer(shape *core.Element, labelW, labelH float64) bool {
	needW := labelW + containerPad
	needH := labelH + containerPad
	if shape.Width >= needW && shape.Height >= needH {
		return false
	}
	newW, newH := shape.Width, shape.Height
	if newW < needW {
		newW = needW
	}
	if newH < needH {
		newH = needH
	}
	shape.X -= (newW - shape.Width) / 2
	shape.Y -= (newH - shape.Height) / 2
	shape.Width = newW
	shape.Height = newH
	return true
}
