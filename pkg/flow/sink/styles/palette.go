package styles

import (
	"bytes"
	"fmt"
)

// palette holds the colors shared by the flat styles.
type palette struct {
	background string // empty means transparent
	cardFill   string
	cardStroke string
	text       string
	line       string
	frame      string
	badge      string
	converge   string // stroke of convergence cards
	fontFamily string
	shadow     string // filter id applied to cards, optional
}

func (p palette) renderBackground(buf *bytes.Buffer, w, h float64) {
	if p.background == "" {
		return
	}
	fmt.Fprintf(buf, `  <rect class="background" x="0" y="0" width="%.2f" height="%.2f" fill="%s"/>`+"\n", w, h, p.background)
}

func (p palette) renderFrame(buf *bytes.Buffer, f Frame) {
	fmt.Fprintf(buf, `  <rect class="container" id="container-%s" data-depth="%d" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="1" stroke-dasharray="4 3"/>`+"\n",
		EscapeXML(f.Key), f.Depth, f.X, f.Y, f.W, f.H, p.frame)
}

func (p palette) renderLine(buf *bytes.Buffer, l Line) {
	fmt.Fprintf(buf, `  <path class="connector connector-%s" d="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="square"/>`+"\n",
		l.Kind, PathData(l), p.line, l.Width)
}

func (p palette) renderCard(buf *bytes.Buffer, c Card) {
	stroke := p.cardStroke
	if c.Converges && p.converge != "" {
		stroke = p.converge
	}
	filter := ""
	if p.shadow != "" {
		filter = fmt.Sprintf(` filter="url(#%s)"`, p.shadow)
	}

	fmt.Fprintf(buf, `  <g class="node" id="node-%s" data-id="%s">`+"\n", EscapeXML(c.Key), EscapeXML(c.ID))
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s" stroke="%s" stroke-width="1.5"%s/>`+"\n",
		c.X, c.Y, c.W, c.H, c.Radius, p.cardFill, stroke, filter)
	fmt.Fprintf(buf, `    <text class="node-text" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%.1f" fill="%s">%s</text>`+"\n",
		c.CenterX(), c.CenterY(), p.fontFamily, c.FontSize, p.text, EscapeXML(c.Label))
	if c.HasContent {
		fmt.Fprintf(buf, `    <circle class="node-badge" cx="%.2f" cy="%.2f" r="3" fill="%s"/>`+"\n",
			c.X+c.W-badgeInset, c.Y+badgeInset, p.badge)
	}
	buf.WriteString("  </g>\n")
}

const badgeInset = 8.0
