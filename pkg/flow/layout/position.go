package layout

import (
	"github.com/mattn/go-runewidth"
)

// TextWidth estimates the rendered width of s, counting wide glyphs twice.
func TextWidth(s string, charWidth float64) float64 {
	return float64(runewidth.StringWidth(s)) * charWidth
}

// =============================================================================
// Measure (bottom-up)
// =============================================================================

// measureContainer sizes c and everything inside it. Item slots get their
// natural heights; place stretches convergence points later.
func (r *renderer) measureContainer(c *Container) {
	g := r.geo
	var width, inner float64
	for i, col := range c.Columns {
		colWidth, colHeight := g.minColumnWidth(), 0.0
		for ii, it := range col.Items {
			hasNext := ii < len(col.Items)-1
			if it.Node != nil {
				it.Height = g.NodePadding + it.Node.Height
				if hasNext {
					it.Height += g.NodePadding
				}
				colWidth = max(colWidth, it.Node.Width)
			} else {
				r.measureContainer(it.Container)
				it.Height = r.containerLead(col, ii) + it.Container.Height
				colWidth = max(colWidth, it.Container.Width)
			}
			colHeight += it.Height
		}
		if len(col.Items) > 0 {
			colHeight += g.NodePadding
		}
		col.Width, col.Height = colWidth, colHeight
		width += colWidth
		if i > 0 {
			width += g.ColumnGap
		}
		inner = max(inner, colHeight)
	}
	if len(c.Columns) == 0 {
		width = g.minColumnWidth()
	}
	c.Width = width
	c.Height = inner + r.borderHeight(c)
}

// containerLead is the gap above a nested container. A preceding node
// already ends with padding; anything else gets one padding of space.
func (r *renderer) containerLead(col *Column, i int) float64 {
	if i > 0 && col.Items[i-1].Node != nil {
		return 0
	}
	return r.geo.NodePadding
}

func (r *renderer) borderHeight(c *Container) float64 {
	h := 0.0
	if c.Borders.Top {
		h += r.geo.LineWidth
	}
	if c.Borders.Bottom {
		h += r.geo.LineWidth
	}
	return h
}

// =============================================================================
// Place (top-down)
// =============================================================================

// place measures the tree, then positions every element on a vertical axis
// at the horizontal centre of the widest element.
func (r *renderer) place(t *Tree) {
	g := r.geo

	width := 0.0
	for _, n := range t.Prefix {
		width = max(width, n.Width)
	}
	for _, n := range t.Suffix {
		width = max(width, n.Width)
	}
	if t.Fork != nil {
		r.measureContainer(t.Fork)
		width = max(width, t.Fork.Width)
	}
	axis := width / 2

	y := 0.0
	var prevBottom *float64
	link := func(top float64) {
		if prevBottom != nil {
			t.Spine = append(t.Spine, vline(ConnectorStraight, axis, *prevBottom, top))
		}
	}
	stack := func(nodes []*Node) {
		for _, n := range nodes {
			n.X = axis - n.Width/2
			n.Y = y + g.NodePadding
			link(n.Y)
			bottom := n.Bottom()
			prevBottom = &bottom
			y = bottom + g.NodePadding
		}
	}

	stack(t.Prefix)
	if t.Fork != nil {
		r.placeContainer(t.Fork, axis-t.Fork.Width/2, y)
		link(t.Fork.Y)
		y = t.Fork.Bottom()
		if t.Fork.Borders.Bottom {
			bottom := y
			prevBottom = &bottom
		} else {
			prevBottom = nil
		}
	}
	stack(t.Suffix)

	t.Width, t.Height = width, y
}

// placeContainer positions c with its top-left corner at (x, y) and emits
// the connectors of its columns and junctions.
func (r *renderer) placeContainer(c *Container, x, y float64) {
	g := r.geo
	c.X, c.Y = x, y

	innerTop := y
	if c.Borders.Top {
		innerTop += g.LineWidth
	}
	innerHeight := c.Height - r.borderHeight(c)

	cx := x
	for _, col := range c.Columns {
		col.X, col.Y, col.Height = cx, innerTop, innerHeight
		r.placeColumn(c, col)
		cx += col.Width + g.ColumnGap
	}
	r.junctions(c)
}

func (r *renderer) placeColumn(c *Container, col *Column) {
	g := r.geo
	center := col.CenterX()
	cursor := col.Y
	for ii, it := range col.Items {
		last := ii == len(col.Items)-1
		it.Y = cursor
		if it.Node != nil {
			if last && it.Node.Converges {
				it.Height = max(it.Height, col.Bottom()-g.NodePadding-cursor)
			}
			it.Node.X = center - it.Node.Width/2
			it.Node.Y = cursor + g.NodePadding
		} else {
			r.placeContainer(it.Container, center-it.Container.Width/2, cursor+r.containerLead(col, ii))
		}
		cursor += it.Height
	}

	// between consecutive items
	for ii := 1; ii < len(col.Items); ii++ {
		from, to := col.Items[ii-1].contentBottom(), col.Items[ii].contentTop()
		col.Connectors = append(col.Connectors, vline(ConnectorStraight, center, from, to))
	}

	r.columnEdges(c, col)
}

// columnEdges emits the corner or entry connector at the top of a column
// and, when the container converges, the lines running down to its
// bottom border.
func (r *renderer) columnEdges(c *Container, col *Column) {
	g := r.geo
	center := col.CenterX()
	size, offset := g.ConnectorSize, g.CornerOffset()
	topY := c.Y + g.LineWidth/2
	bottomY := c.Bottom() - g.LineWidth/2

	switch {
	case col.Position == PositionMiddle:
		col.Connectors = append(col.Connectors, vline(ConnectorEntry, center, topY, topY+size))
	default:
		if col.Position.IsFirst() {
			col.Connectors = append(col.Connectors, Connector{
				Kind: ConnectorCornerTopLeft, X1: center + offset, Y1: topY, X2: center, Y2: topY + size,
			})
		}
		if col.Position.IsLast() {
			col.Connectors = append(col.Connectors, Connector{
				Kind: ConnectorCornerTopRight, X1: center - offset, Y1: topY, X2: center, Y2: topY + size,
			})
		}
	}

	if !c.Borders.Bottom {
		return
	}

	// The flow leaves the column through its last item, or straight from
	// the top connector when the column is empty. Edge columns hand over
	// to their bottom corner, middle columns run to the border.
	end := col.Bottom()
	if col.Position != PositionMiddle {
		end = bottomY - size
	}
	if len(col.Items) == 0 {
		col.Connectors = append(col.Connectors, vline(ConnectorGrow, center, topY+size, end))
	} else {
		last := col.Items[len(col.Items)-1]
		from := last.contentBottom()
		exits := last.Node != nil && last.Node.BranchExit
		growEnd := end
		if exits {
			growEnd = max(from, end-g.NodePadding)
		}
		col.Connectors = append(col.Connectors, vline(ConnectorGrow, center, from, growEnd))
		if exits {
			col.Connectors = append(col.Connectors, vline(ConnectorBranchExit, center, max(from, growEnd), end))
		}
	}

	if col.Position.IsFirst() {
		col.Connectors = append(col.Connectors, Connector{
			Kind: ConnectorCornerBottomLeft, X1: center + offset, Y1: bottomY, X2: center, Y2: bottomY - size,
		})
	}
	if col.Position.IsLast() {
		col.Connectors = append(col.Connectors, Connector{
			Kind: ConnectorCornerBottomRight, X1: center - offset, Y1: bottomY, X2: center, Y2: bottomY - size,
		})
	}
}

// junctions emits the horizontal bars joining the first and last column.
func (r *renderer) junctions(c *Container) {
	if len(c.Columns) < 2 {
		return
	}
	g := r.geo
	left := c.Columns[0].CenterX() + g.CornerOffset()
	right := c.Columns[len(c.Columns)-1].CenterX() - g.CornerOffset()
	if right <= left {
		return
	}
	topY := c.Y + g.LineWidth/2
	c.Connectors = append(c.Connectors, Connector{Kind: ConnectorDivergence, X1: left, Y1: topY, X2: right, Y2: topY})
	if c.Borders.Bottom {
		bottomY := c.Bottom() - g.LineWidth/2
		c.Connectors = append(c.Connectors, Connector{Kind: ConnectorConvergence, X1: left, Y1: bottomY, X2: right, Y2: bottomY})
	}
}

// vline returns a downward vertical connector. Segments whose ends
// overlap collapse to zero length instead of being dropped, so the set of
// connectors depends on structure only.
func vline(kind ConnectorKind, x, y1, y2 float64) Connector {
	return Connector{Kind: kind, X1: x, Y1: y1, X2: x, Y2: max(y1, y2)}
}
