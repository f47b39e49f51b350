// Package styles provides the visual styles for flow diagram SVG output.
//
// A [Style] draws three kinds of shapes handed to it by the SVG sink: node
// cards, connector lines and (in debug renders) container frames. Two
// styles are built in:
//
//   - [Simple]: black outlines on a transparent canvas, suited for docs
//   - [Dark]: light strokes on a slate background with card shadows
//
// Use [Lookup] to resolve a style from its command-line name.
//
// # Paths
//
// [PathData] turns a connector into SVG path data. Straight connectors
// become a single segment; corners become a horizontal arm, a quadratic
// bend and a vertical arm, so the four corner kinds share one routine.
package styles
