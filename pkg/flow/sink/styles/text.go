package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// TruncateLabel shortens label to fit width at the given character width,
// ending it with an ellipsis. Wide runes count double.
func TruncateLabel(label string, width, charWidth float64) string {
	if charWidth <= 0 {
		return label
	}
	maxCells := max(3, int(width/charWidth))
	if runewidth.StringWidth(label) <= maxCells {
		return label
	}
	return runewidth.Truncate(label, maxCells, ellipsis)
}

// FontSize derives a font size from the character width the layout
// measured text with.
func FontSize(charWidth float64) float64 {
	return math.Round(charWidth/fontCharWidth*10) / 10
}

// fontCharWidth is the average advance of a sans-serif glyph in ems.
const fontCharWidth = 0.55

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// PathData returns the SVG path for a line. Corners get a quadratic bend
// whose radius is clamped to the shorter arm.
func PathData(l Line) string {
	if !l.Corner {
		return fmt.Sprintf("M%s %s L%s %s", num(l.X1), num(l.Y1), num(l.X2), num(l.Y2))
	}
	dx, dy := l.X1-l.X2, l.Y2-l.Y1
	r := min(l.Radius, math.Abs(dx), math.Abs(dy))
	// Start of the bend on the horizontal arm, end on the vertical arm.
	bx := l.X2 + math.Copysign(r, dx)
	by := l.Y1 + math.Copysign(r, dy)

	var b strings.Builder
	fmt.Fprintf(&b, "M%s %s L%s %s", num(l.X1), num(l.Y1), num(bx), num(l.Y1))
	fmt.Fprintf(&b, " Q%s %s %s %s", num(l.X2), num(l.Y1), num(l.X2), num(by))
	fmt.Fprintf(&b, " L%s %s", num(l.X2), num(l.Y2))
	return b.String()
}

func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
