package layout

import (
	"fmt"

	"github.com/matzehuels/flowdiagram/pkg/flow"
)

// BaseKey prefixes the key of every element inside the root fork.
const BaseKey = "main"

// Option configures [Render].
type Option func(*renderer)

type renderer struct {
	geo Geometry
}

// WithGeometry sets the geometry for the whole tree. Zero fields fall back
// to their defaults.
func WithGeometry(g Geometry) Option { return func(r *renderer) { r.geo = g.WithDefaults() } }

// Render lays out a parsed graph. It never fails on a value produced by
// [flow.Parse]; the result is fully determined by p and the geometry.
func Render(p *flow.Parsed, opts ...Option) *Tree {
	r := renderer{geo: DefaultGeometry()}
	for _, opt := range opts {
		opt(&r)
	}

	t := &Tree{Geometry: r.geo}
	for i, ref := range p.Prefix {
		t.Prefix = append(t.Prefix, r.newNode(ref, fmt.Sprintf("prefix-%d", i), SegmentPrefix, 0))
	}
	if p.HasFork {
		t.Fork = r.buildContainer(p.Fork, BaseKey, p.HasSuffix, 1)
	}
	for i, ref := range p.Suffix {
		t.Suffix = append(t.Suffix, r.newNode(ref, fmt.Sprintf("suffix-%d", i), SegmentSuffix, 0))
	}

	r.place(t)
	return t
}

// =============================================================================
// Structure
// =============================================================================

// buildContainer turns a fork into a container. converge tells whether flow
// continues below it, which decides the bottom border and the convergence
// points of its columns.
func (r *renderer) buildContainer(g flow.ColumnsGroup, base string, converge bool, depth int) *Container {
	c := &Container{
		Key:       base,
		Depth:     depth,
		Borders:   Borders{Top: true, Bottom: converge},
		Converges: converge,
		Columns:   make([]*Column, 0, len(g)),
	}
	for ci, items := range g {
		col := &Column{
			Key:      fmt.Sprintf("%s-col-%d", base, ci),
			Index:    ci,
			Position: columnPosition(ci, len(g)),
			Items:    make([]*Item, 0, len(items)),
		}
		lastColumn := ci == len(g)-1
		for ii, item := range items {
			hasNext := ii < len(items)-1
			isLast := !hasNext
			key := fmt.Sprintf("%s-col-%d-item-%d", base, ci, ii)
			switch v := item.(type) {
			case flow.NodeRef:
				n := r.newNode(v, key, SegmentColumn, depth)
				n.Converges = isLast && converge
				n.BranchExit = n.Converges && !lastColumn
				col.Items = append(col.Items, &Item{Node: n})
			case flow.ColumnsGroup:
				nested := r.buildContainer(v, key, hasNext || (isLast && converge), depth+1)
				col.Items = append(col.Items, &Item{Container: nested})
			}
		}
		c.Columns = append(c.Columns, col)
	}
	return c
}

func (r *renderer) newNode(ref flow.NodeRef, key string, seg Segment, depth int) *Node {
	title := ref.DisplayTitle()
	return &Node{
		Key:     key,
		ID:      ref.ID,
		Title:   title,
		Content: ref.Content,
		Segment: seg,
		Depth:   depth,
		Width:   r.nodeWidth(title),
		Height:  r.geo.NodeHeight,
	}
}

func (r *renderer) nodeWidth(title string) float64 {
	return max(r.geo.NodeWidth, TextWidth(title, r.geo.CharWidth)+2*r.geo.NodePadding)
}

func columnPosition(i, n int) ColumnPosition {
	switch {
	case n == 1:
		return PositionOnly
	case i == 0:
		return PositionFirst
	case i == n-1:
		return PositionLast
	default:
		return PositionMiddle
	}
}
