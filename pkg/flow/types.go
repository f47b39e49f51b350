package flow

// =============================================================================
// Items - Tagged Union
// =============================================================================

// Item is an element of a top-level [Definition].
// It is implemented by [NodeRef], [Column] and [ColumnsGroup] only.
type Item interface {
	isItem()
}

// ColumnItem is an element of a [Column].
// It is implemented by [NodeRef] and [ColumnsGroup] only.
type ColumnItem interface {
	Item
	isColumnItem()
}

// NodeRef identifies one visual node.
//
// ID is the lookup and rendering key. Title is the display label and falls
// back to ID when empty. Content is an opaque payload carried through to the
// sinks; the layout never inspects it.
type NodeRef struct {
	ID      string
	Title   string
	Content any
}

// Node returns a NodeRef for id with no title or content.
func Node(id string) NodeRef { return NodeRef{ID: id} }

// TitledNode returns a NodeRef with an explicit display title.
func TitledNode(id, title string) NodeRef { return NodeRef{ID: id, Title: title} }

// DisplayTitle returns Title if set, otherwise ID.
func (n NodeRef) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}

// HasContent reports whether the node carries a payload.
func (n NodeRef) HasContent() bool { return n.Content != nil }

// Column is one parallel branch of a fork. Order is top to bottom.
type Column []ColumnItem

// ColumnsGroup is a fork: parallel columns rendered left to right.
type ColumnsGroup []Column

// Definition is the raw graph: nodes plus at most one [ColumnsGroup].
type Definition []Item

func (NodeRef) isItem()            {}
func (NodeRef) isColumnItem()      {}
func (Column) isItem()             {}
func (ColumnsGroup) isItem()       {}
func (ColumnsGroup) isColumnItem() {}

// Fork builds a ColumnsGroup from columns. It reads better than the
// composite literal when definitions are written in Go.
func Fork(columns ...Column) ColumnsGroup { return ColumnsGroup(columns) }

// Col builds a Column from nodes and nested forks.
func Col(items ...ColumnItem) Column { return Column(items) }

// Nodes returns NodeRefs for each id, in order.
func Nodes(ids ...string) []NodeRef {
	out := make([]NodeRef, len(ids))
	for i, id := range ids {
		out[i] = Node(id)
	}
	return out
}

// =============================================================================
// Parsed - Normalized Graph
// =============================================================================

// Parsed is the normalized form of a Definition.
//
// Fork is nil when the definition has no fork; in that case Suffix is
// always empty. Parsed values are derived data: recompute them whenever the
// definition changes.
type Parsed struct {
	Prefix    []NodeRef
	Fork      ColumnsGroup
	HasFork   bool
	Suffix    []NodeRef
	HasSuffix bool
}

// NodeCount returns the number of nodes in the graph, nested forks included.
func (p *Parsed) NodeCount() int {
	n := len(p.Prefix) + len(p.Suffix)
	if p.HasFork {
		n += countGroup(p.Fork)
	}
	return n
}

// ForkDepth returns the deepest fork nesting level (0 when there is no fork).
func (p *Parsed) ForkDepth() int {
	if !p.HasFork {
		return 0
	}
	return groupDepth(p.Fork)
}

func countGroup(g ColumnsGroup) int {
	n := 0
	for _, col := range g {
		for _, item := range col {
			switch v := item.(type) {
			case NodeRef:
				n++
			case ColumnsGroup:
				n += countGroup(v)
			}
		}
	}
	return n
}

func groupDepth(g ColumnsGroup) int {
	deepest := 0
	for _, col := range g {
		for _, item := range col {
			if nested, ok := item.(ColumnsGroup); ok {
				deepest = max(deepest, groupDepth(nested))
			}
		}
	}
	return deepest + 1
}
