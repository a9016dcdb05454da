package core

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

const (
	// estimateFontSize is the fallback font size for measurements.
	estimateFontSize = 20.0
	// textMargin is added to every width estimate.
	textMargin = 10.0
	// lineHeightFactor converts font size to line height.
	lineHeightFactor = 1.4
)

// EstimateTextSize approximates the rendered size of a text run
// without font metrics. Width is summed per character class: CJK
// ideographs and other double-width runes count a full em, uppercase
// Latin somewhat less, everything else less again. Height is line
// count times fontSize * 1.4.
func EstimateTextSize(text string, fontSize float64) (float64, float64) {
	if fontSize <= 0 {
		fontSize = estimateFontSize
	}
	lines := strings.Split(text, "\n")
	maxLine := 0.0
	for _, line := range lines {
		w := 0.0
		for _, r := range line {
			switch {
			case runewidth.RuneWidth(r) >= 2:
				w += fontSize
			case unicode.IsUpper(r):
				w += fontSize * 0.7
			default:
				w += fontSize * 0.55
			}
		}
		if w > maxLine {
			maxLine = w
		}
	}
	return maxLine + textMargin, float64(len(lines)) * fontSize * lineHeightFactor
}
