// Package render converts rendered diagrams between output formats and
// hosts the node-link view.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both the flow diagram
// sinks and the node-link renderer use them.
//
//	svg := sink.RenderSVG(tree)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// Use [Available] to check for the converter before offering PDF or PNG.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage draws a flow graph as a plain directed graph
// with Graphviz, each fork as a cluster. It is useful for checking the
// shape of a definition independent of the flow layout.
//
//	dot := nodelink.ToDOT(parsed, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/flowdiagram/pkg/render/nodelink
package render
