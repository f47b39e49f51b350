package styles

import "bytes"

const darkShadowID = "card-shadow"

var darkPalette = palette{
	background: "#0f172a",
	cardFill:   "#1e293b",
	cardStroke: "#475569",
	text:       "#e2e8f0",
	line:       "#94a3b8",
	frame:      "#334155",
	badge:      "#38bdf8",
	converge:   "#38bdf8",
	fontFamily: "Inter, Helvetica, Arial, sans-serif",
	shadow:     darkShadowID,
}

// Dark draws light strokes on a slate canvas, with a soft shadow under
// each card and highlighted convergence points.
type Dark struct{}

func (Dark) Name() string { return "dark" }

func (Dark) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <filter id="` + darkShadowID + `" x="-10%" y="-10%" width="120%" height="140%">` + "\n")
	buf.WriteString(`      <feDropShadow dx="0" dy="2" stdDeviation="2" flood-color="#000" flood-opacity="0.45"/>` + "\n")
	buf.WriteString("    </filter>\n")
	buf.WriteString("  </defs>\n")
}

func (Dark) RenderBackground(buf *bytes.Buffer, w, h float64) {
	darkPalette.renderBackground(buf, w, h)
}

func (Dark) RenderFrame(buf *bytes.Buffer, f Frame) { darkPalette.renderFrame(buf, f) }

func (Dark) RenderLine(buf *bytes.Buffer, l Line) { darkPalette.renderLine(buf, l) }

func (Dark) RenderCard(buf *bytes.Buffer, c Card) { darkPalette.renderCard(buf, c) }
