// Package nodelink renders flow graphs as traditional node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// nodes appear as boxes connected by arrows and every fork is drawn as a
// dashed cluster. It is an alternative to the flow layout for checking the
// shape of a definition, or for feeding the graph to other Graphviz tools.
//
// # Usage
//
// Convert a parsed graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(parsed, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Node Keys
//
// DOT node names use the same positional keys as the flow layout
// ("prefix-0", "main-col-1-item-0", "suffix-0"), so duplicate IDs stay
// separate nodes and the two views can be cross-referenced.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
