package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowdiagram/pkg/flow"
	"github.com/matzehuels/flowdiagram/pkg/observability"
	"github.com/matzehuels/flowdiagram/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node ID (when a title is set) and the content
	// payload to node labels. When false, only the display title is shown.
	Detailed bool
}

// ToDOT converts a parsed flow graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Every fork becomes a dashed cluster. Each node links to the entry nodes
// of whatever follows it; a fork's entries are the first nodes of its
// columns and its exits are their last nodes. Empty columns are drawn as
// points so the path through them stays visible.
func ToDOT(p *flow.Parsed, opts Options) string {
	w := &dotWriter{opts: opts}
	w.buf.WriteString("digraph G {\n")
	w.buf.WriteString("  rankdir=TB;\n")
	w.buf.WriteString("  bgcolor=\"transparent\";\n")
	w.buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	w.buf.WriteString("  ranksep=0.4;\n")
	w.buf.WriteString("  nodesep=0.3;\n")
	w.buf.WriteString("\n")

	var prev []string
	for i, n := range p.Prefix {
		prev = w.link(prev, []string{w.node(fmt.Sprintf("prefix-%d", i), n, "  ")})
	}
	if p.HasFork {
		entries, exits := w.group(p.Fork, "main", "  ")
		w.link(prev, entries)
		prev = exits
	}
	for i, n := range p.Suffix {
		prev = w.link(prev, []string{w.node(fmt.Sprintf("suffix-%d", i), n, "  ")})
	}

	if len(w.edges) > 0 {
		w.buf.WriteString("\n")
	}
	for _, e := range w.edges {
		fmt.Fprintf(&w.buf, "  %q -> %q;\n", e[0], e[1])
	}

	w.buf.WriteString("}\n")
	return w.buf.String()
}

type dotWriter struct {
	opts  Options
	buf   bytes.Buffer
	edges [][2]string
}

// link records edges from every exit in from to every entry in to and
// returns to, the new set of exits.
func (w *dotWriter) link(from, to []string) []string {
	for _, a := range from {
		for _, b := range to {
			w.edges = append(w.edges, [2]string{a, b})
		}
	}
	return to
}

func (w *dotWriter) node(key string, n flow.NodeRef, indent string) string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, w.opts.Detailed))}
	if n.HasContent() {
		attrs = append(attrs, "penwidth=2")
	}
	fmt.Fprintf(&w.buf, "%s%q [%s];\n", indent, key, strings.Join(attrs, ", "))
	return key
}

// group writes a fork as a cluster and returns its entry and exit nodes.
func (w *dotWriter) group(g flow.ColumnsGroup, key, indent string) (entries, exits []string) {
	fmt.Fprintf(&w.buf, "%ssubgraph %q {\n", indent, "cluster_"+key)
	inner := indent + "  "
	fmt.Fprintf(&w.buf, "%slabel=\"\";\n", inner)
	fmt.Fprintf(&w.buf, "%sstyle=\"rounded,dashed\";\n", inner)
	fmt.Fprintf(&w.buf, "%scolor=grey;\n", inner)

	if len(g) == 0 {
		pt := w.point(key+"-empty", inner)
		entries, exits = []string{pt}, []string{pt}
	}
	for ci, col := range g {
		colKey := fmt.Sprintf("%s-col-%d", key, ci)
		if len(col) == 0 {
			pt := w.point(colKey+"-empty", inner)
			entries = append(entries, pt)
			exits = append(exits, pt)
			continue
		}
		var prev []string
		for ii, item := range col {
			itemKey := fmt.Sprintf("%s-item-%d", colKey, ii)
			var in, out []string
			switch v := item.(type) {
			case flow.NodeRef:
				k := w.node(itemKey, v, inner)
				in, out = []string{k}, []string{k}
			case flow.ColumnsGroup:
				in, out = w.group(v, itemKey, inner)
			}
			if ii == 0 {
				entries = append(entries, in...)
			}
			w.link(prev, in)
			prev = out
		}
		exits = append(exits, prev...)
	}

	fmt.Fprintf(&w.buf, "%s}\n", indent)
	return entries, exits
}

func (w *dotWriter) point(key, indent string) string {
	fmt.Fprintf(&w.buf, "%s%q [shape=point, width=0.08, label=\"\"];\n", indent, key)
	return key
}

func fmtLabel(n flow.NodeRef, detailed bool) string {
	title := n.DisplayTitle()
	if !detailed {
		return title
	}

	var parts []string
	if n.Title != "" && n.Title != n.ID {
		parts = append(parts, "id: "+n.ID)
	}
	switch c := n.Content.(type) {
	case nil:
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(c)) {
			parts = append(parts, fmt.Sprintf("%s: %v", k, c[k]))
		}
	default:
		parts = append(parts, fmt.Sprintf("content: %v", c))
	}
	if len(parts) == 0 {
		return title
	}
	return title + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) (svg []byte, err error) {
	start := time.Now()
	defer func() {
		observability.Converter().OnConvert(ctx, "graphviz", "svg", len(svg), time.Since(start), err)
	}()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// pixel-sized one anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
