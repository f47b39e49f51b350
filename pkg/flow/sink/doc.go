// Package sink turns a positioned layout tree into output artifacts.
//
// # Formats
//
//   - [RenderSVG]: standalone SVG, drawn through a [styles.Style]
//   - [RenderPNG], [RenderPDF]: the SVG converted with rsvg-convert
//   - [MarshalJSON], [MarshalCBOR]: the tree itself inside a versioned
//     [Envelope], for external renderers and caches
//   - [RenderHTML]: a showcase page with the markdown description, the
//     inline diagram and the highlighted definition source
//   - [RenderTree]: a terminal outline of the structure
//
// # Drawing Order
//
// The SVG sink draws connectors first and cards second. Connector ends
// that meet a card sit under its border. Container borders are not drawn;
// a fork is visible through its divergence and convergence bars. Pass
// [WithFrames] to outline containers when debugging a layout.
//
// # Export Stability
//
// CBOR output uses core deterministic encoding: equal trees always encode
// to equal bytes. JSON output is indented and keeps HTML characters
// unescaped so titles read naturally.
package sink
