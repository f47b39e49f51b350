// Package layout turns a parsed flow graph into a positioned visual tree.
//
// # Structure
//
// [Render] walks a [flow.Parsed] value once, top-down:
//
//   - prefix nodes form a vertical chain joined by straight connectors
//   - the fork becomes a [Container] whose columns sit side by side
//   - suffix nodes continue the chain below the container
//
// Each container always draws a top border. It draws a bottom border only
// when flow continues below it: at the root that means the graph has a
// suffix; for a nested fork it means the fork has a following sibling in
// its column, or it is the last item of a column that itself converges.
// The requirement is passed down the recursion explicitly.
//
// The last node of a column in a converging container is a convergence
// point. It grows into the remaining column height and a line runs from it
// to the shared junction. Columns other than the last add a branch exit
// segment into that junction.
//
// # Geometry
//
// Sizes come from a single [Geometry] injected at the root with
// [WithGeometry]. Layout runs in two passes: measure computes widths and
// natural heights bottom-up, place assigns coordinates top-down, stretching
// every column of a container to the same height.
//
// # Keys
//
// Every element carries a stable, position-derived key. Elements of the
// root fork use the base "main"; a column item is keyed
// "<base>-col-<c>-item-<i>", and a nested fork uses its item key as the
// base for its own elements. Prefix and suffix nodes are keyed
// "prefix-<i>" and "suffix-<i>".
package layout
