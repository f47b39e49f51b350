// Package flow defines the flow-diagram graph model and its parser.
//
// A flow diagram is described by a [Definition]: an ordered sequence of
// nodes with at most one fork. Items before the fork form a linear lead-in
// (the prefix), the fork splits the flow into parallel columns, and items
// after the fork form the rejoin sequence (the suffix):
//
//	Start ─┬─ Branch A ── Process A ──────────────┬─ Consolidate ── Complete
//	       └─ Branch B ── Process B ── Step B ────┘
//
// # Model
//
// The model is a tagged union with three variants:
//
//   - [NodeRef]: one visual node (ID, optional title, optional opaque content)
//   - [Column]: an ordered sequence of [ColumnItem] values (nodes or nested forks)
//   - [ColumnsGroup]: an ordered sequence of columns, i.e. a single fork point
//
// A [Definition] holds [Item] values; inside a column only [ColumnItem]
// values are allowed, so a column can contain nodes and nested forks but
// never a bare column.
//
// # Raw Values
//
// Definitions authored in files decode to untyped trees of strings, maps
// and slices. [Decode] classifies such a tree into the typed model:
//
//	def, err := flow.Decode([]any{
//	    "Start",
//	    []any{
//	        []any{"Branch A", "Process A"},
//	        []any{"Branch B", "Process B"},
//	    },
//	    "Complete",
//	})
//
// An array is a fork only when every one of its elements is itself an
// array. [Encode] is the inverse of [Decode].
//
// # Parsing
//
// [Parse] splits a definition into prefix, fork and suffix. It is pure and
// deterministic; structural problems are reported as a [*StructuralError]
// and no partial result is produced.
//
// The layout itself lives in the [layout] subpackage.
//
// [layout]: github.com/matzehuels/flowdiagram/pkg/flow/layout
package flow
