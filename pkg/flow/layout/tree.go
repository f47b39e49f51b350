package layout

// =============================================================================
// Enumerations
// =============================================================================

// Segment tells which part of the graph a node belongs to.
type Segment string

const (
	SegmentPrefix Segment = "prefix"
	SegmentColumn Segment = "column"
	SegmentSuffix Segment = "suffix"
)

// ColumnPosition is a column's place within its container. It decides
// which connector shapes the column draws.
type ColumnPosition string

const (
	PositionFirst  ColumnPosition = "first"
	PositionMiddle ColumnPosition = "middle"
	PositionLast   ColumnPosition = "last"
	PositionOnly   ColumnPosition = "only" // first and last at once
)

// IsFirst reports whether the column draws the left-side shapes.
func (p ColumnPosition) IsFirst() bool { return p == PositionFirst || p == PositionOnly }

// IsLast reports whether the column draws the right-side shapes.
func (p ColumnPosition) IsLast() bool { return p == PositionLast || p == PositionOnly }

// ConnectorKind identifies the shape of a connector.
type ConnectorKind string

const (
	// ConnectorStraight is a vertical segment between consecutive items.
	ConnectorStraight ConnectorKind = "straight"
	// ConnectorEntry is the short vertical stub at the top of a middle column.
	ConnectorEntry ConnectorKind = "entry"
	// ConnectorGrow runs from a convergence point down toward the junction.
	ConnectorGrow ConnectorKind = "grow"
	// ConnectorBranchExit is the stub feeding a non-last column into the junction.
	ConnectorBranchExit ConnectorKind = "branch-exit"
	// ConnectorDivergence is the horizontal bar where a fork splits.
	ConnectorDivergence ConnectorKind = "divergence"
	// ConnectorConvergence is the horizontal bar where branches rejoin.
	ConnectorConvergence ConnectorKind = "convergence"

	ConnectorCornerTopLeft     ConnectorKind = "corner-top-left"
	ConnectorCornerTopRight    ConnectorKind = "corner-top-right"
	ConnectorCornerBottomLeft  ConnectorKind = "corner-bottom-left"
	ConnectorCornerBottomRight ConnectorKind = "corner-bottom-right"
)

// IsCorner reports whether k is one of the four L-shaped corners.
func (k ConnectorKind) IsCorner() bool {
	switch k {
	case ConnectorCornerTopLeft, ConnectorCornerTopRight,
		ConnectorCornerBottomLeft, ConnectorCornerBottomRight:
		return true
	}
	return false
}

// =============================================================================
// Visual Elements
// =============================================================================

// Connector is a line or corner segment.
//
// Straight and bar connectors run from (X1,Y1) to (X2,Y2). Corners have a
// horizontal arm ending at (X1,Y1) and a vertical arm ending at (X2,Y2);
// the bend sits at (X2,Y1).
type Connector struct {
	Kind ConnectorKind `json:"kind"`
	X1   float64       `json:"x1"`
	Y1   float64       `json:"y1"`
	X2   float64       `json:"x2"`
	Y2   float64       `json:"y2"`
}

// Vertex returns the bend point of a corner connector.
func (c Connector) Vertex() (x, y float64) { return c.X2, c.Y1 }

// Length returns the Manhattan length of the connector.
func (c Connector) Length() float64 {
	return abs(c.X2-c.X1) + abs(c.Y2-c.Y1)
}

// Node is a positioned card. X, Y, Width and Height describe the card box.
type Node struct {
	Key     string  `json:"key"`
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Content any     `json:"content,omitempty"`
	Segment Segment `json:"segment"`
	Depth   int     `json:"depth,omitempty"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Converges marks the last node of a column whose flow continues
	// below the fork. It grows into the column's remaining space.
	Converges bool `json:"converges,omitempty"`
	// BranchExit marks a convergence point in a column that is not the
	// last one; it draws the extra stub into the shared junction.
	BranchExit bool `json:"branch_exit,omitempty"`
}

// CenterX returns the horizontal centre of the card.
func (n *Node) CenterX() float64 { return n.X + n.Width/2 }

// Bottom returns the lower edge of the card.
func (n *Node) Bottom() float64 { return n.Y + n.Height }

// Borders records which horizontal border lines a container draws.
type Borders struct {
	Top    bool `json:"top"`
	Bottom bool `json:"bottom"`
}

// Container is a fork: a row of columns separated by a fixed gap.
type Container struct {
	Key       string  `json:"key"`
	Depth     int     `json:"depth"`
	Borders   Borders `json:"borders"`
	Converges bool    `json:"converges"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Columns    []*Column   `json:"columns"`
	Connectors []Connector `json:"connectors,omitempty"`
}

// CenterX returns the horizontal centre of the container.
func (c *Container) CenterX() float64 { return c.X + c.Width/2 }

// Bottom returns the lower edge of the container.
func (c *Container) Bottom() float64 { return c.Y + c.Height }

// Column is one branch of a container.
type Column struct {
	Key      string         `json:"key"`
	Index    int            `json:"index"`
	Position ColumnPosition `json:"position"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Items      []*Item     `json:"items"`
	Connectors []Connector `json:"connectors,omitempty"`
}

// CenterX returns the horizontal centre of the column.
func (c *Column) CenterX() float64 { return c.X + c.Width/2 }

// Bottom returns the lower edge of the column.
func (c *Column) Bottom() float64 { return c.Y + c.Height }

// Item is one slot in a column; exactly one of Node and Container is set.
// Y and Height describe the slot, padding included.
type Item struct {
	Node      *Node      `json:"node,omitempty"`
	Container *Container `json:"container,omitempty"`
	Y         float64    `json:"y"`
	Height    float64    `json:"height"`
}

// contentTop returns the y where the slot's visible content starts.
func (it *Item) contentTop() float64 {
	if it.Node != nil {
		return it.Node.Y
	}
	return it.Container.Y
}

// contentBottom returns the y where the slot's visible content ends.
func (it *Item) contentBottom() float64 {
	if it.Node != nil {
		return it.Node.Bottom()
	}
	return it.Container.Bottom()
}

// =============================================================================
// Tree
// =============================================================================

// Tree is the positioned layout of a parsed graph.
//
// The tree is centred on a vertical axis at Width/2. Prefix nodes are
// stacked from the top, followed by the fork container (if any) and the
// suffix nodes. Spine holds the vertical segments joining them.
type Tree struct {
	Geometry Geometry `json:"geometry"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`

	Prefix []*Node     `json:"prefix,omitempty"`
	Fork   *Container  `json:"fork,omitempty"`
	Suffix []*Node     `json:"suffix,omitempty"`
	Spine  []Connector `json:"spine,omitempty"`
}

// Nodes returns every node in document order: prefix, fork (column by
// column, depth first), suffix.
func (t *Tree) Nodes() []*Node {
	out := make([]*Node, 0, len(t.Prefix)+len(t.Suffix))
	out = append(out, t.Prefix...)
	t.walk(func(c *Container) {}, func(n *Node) { out = append(out, n) })
	out = append(out, t.Suffix...)
	return out
}

// Containers returns every container, outermost first.
func (t *Tree) Containers() []*Container {
	var out []*Container
	t.walk(func(c *Container) { out = append(out, c) }, func(*Node) {})
	return out
}

// Connectors returns the spine connectors followed by those of every
// container and column.
func (t *Tree) Connectors() []Connector {
	out := append([]Connector(nil), t.Spine...)
	for _, c := range t.Containers() {
		out = append(out, c.Connectors...)
		for _, col := range c.Columns {
			out = append(out, col.Connectors...)
		}
	}
	return out
}

// Lookup returns the first node with the given ID.
func (t *Tree) Lookup(id string) (*Node, bool) {
	for _, n := range t.Nodes() {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// Stats summarizes a tree.
type Stats struct {
	Nodes        int `json:"nodes"`
	Containers   int `json:"containers"`
	Columns      int `json:"columns"`
	Connectors   int `json:"connectors"`
	Convergences int `json:"convergences"`
	MaxDepth     int `json:"max_depth"`
}

// Stats counts the elements of the tree.
func (t *Tree) Stats() Stats {
	var s Stats
	for _, n := range t.Nodes() {
		s.Nodes++
		if n.Converges {
			s.Convergences++
		}
	}
	for _, c := range t.Containers() {
		s.Containers++
		s.Columns += len(c.Columns)
		s.MaxDepth = max(s.MaxDepth, c.Depth)
	}
	s.Connectors = len(t.Connectors())
	return s
}

func (t *Tree) walk(onContainer func(*Container), onNode func(*Node)) {
	if t.Fork != nil {
		walkContainer(t.Fork, onContainer, onNode)
	}
}

func walkContainer(c *Container, onContainer func(*Container), onNode func(*Node)) {
	onContainer(c)
	for _, col := range c.Columns {
		for _, it := range col.Items {
			if it.Node != nil {
				onNode(it.Node)
			} else {
				walkContainer(it.Container, onContainer, onNode)
			}
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
