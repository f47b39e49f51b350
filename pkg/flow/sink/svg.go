package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
	"github.com/matzehuels/flowdiagram/pkg/flow/sink/styles"
)

const nodeInteractionCSS = `
    .node rect { transition: stroke-width 0.2s ease; }
    .node.highlight rect { stroke-width: 3; }
    .node.highlight .node-text { font-weight: bold; }`

const nodeInteractionJS = `
    function highlight(id) {
      document.querySelectorAll('.node').forEach(n => n.classList.toggle('highlight', n.dataset.id === id));
    }
    function clearHighlight() {
      document.querySelectorAll('.node').forEach(n => n.classList.remove('highlight'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.id));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// Defaults for [RenderSVG].
const (
	DefaultMargin = 24.0
	titleHeight   = 32.0
	titleFontSize = 16.0
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	margin      float64
	frames      bool
	title       string
	interactive bool
}

// WithStyle sets the visual style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithMargin sets the blank space around the diagram.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = max(0, m) } }

// WithFrames outlines every container, for debugging layouts.
func WithFrames() SVGOption { return func(r *svgRenderer) { r.frames = true } }

// WithTitle draws a heading above the diagram.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithoutInteraction omits the hover CSS and script, for consumers that
// rasterize or sanitize the SVG.
func WithoutInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = false } }

// RenderSVG draws a layout tree as a standalone SVG document.
//
// Connectors are drawn first and cards on top, so card borders hide the
// ends of the lines that touch them. Container borders are not drawn: the
// divergence and convergence bars are the visible part of a fork.
func RenderSVG(t *layout.Tree, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	top := r.margin
	if r.title != "" {
		top += titleHeight
	}
	width := t.Width + 2*r.margin
	height := t.Height + top + r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	r.style.RenderDefs(&buf)
	r.style.RenderBackground(&buf, width, height)
	if r.title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="%.2f" y="%.2f" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="%.1f" font-weight="bold">%s</text>`+"\n",
			width/2, r.margin+titleHeight/2, titleFontSize, styles.EscapeXML(r.title))
	}

	fmt.Fprintf(&buf, `  <g class="diagram" transform="translate(%.2f %.2f)">`+"\n", r.margin, top)
	if r.frames {
		for _, c := range t.Containers() {
			r.style.RenderFrame(&buf, styles.Frame{Key: c.Key, X: c.X, Y: c.Y, W: c.Width, H: c.Height, Depth: c.Depth})
		}
	}
	for _, c := range t.Connectors() {
		r.style.RenderLine(&buf, buildLine(c, t.Geometry))
	}
	for _, n := range t.Nodes() {
		r.style.RenderCard(&buf, buildCard(n, t.Geometry))
	}
	buf.WriteString("  </g>\n")

	if r.interactive {
		renderNodeInteraction(&buf)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, margin: DefaultMargin, interactive: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderNodeInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", nodeInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", nodeInteractionJS)
}

func buildCard(n *layout.Node, g layout.Geometry) styles.Card {
	return styles.Card{
		Key:        n.Key,
		ID:         n.ID,
		Label:      styles.TruncateLabel(n.Title, n.Width-2*g.NodePadding, g.CharWidth),
		X:          n.X,
		Y:          n.Y,
		W:          n.Width,
		H:          n.Height,
		Radius:     g.CornerRadius,
		FontSize:   styles.FontSize(g.CharWidth),
		HasContent: n.Content != nil,
		Converges:  n.Converges,
	}
}

func buildLine(c layout.Connector, g layout.Geometry) styles.Line {
	return styles.Line{
		Kind:   string(c.Kind),
		X1:     c.X1,
		Y1:     c.Y1,
		X2:     c.X2,
		Y2:     c.Y2,
		Corner: c.Kind.IsCorner(),
		Radius: g.ConnectorSize,
		Width:  g.LineWidth,
	}
}
