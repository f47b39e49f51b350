package layout

import (
	"fmt"
)

// Default geometry values, in pixels.
const (
	DefaultLineWidth     = 1.0
	DefaultConnectorSize = 18.0
	DefaultColumnGap     = 32.0
	DefaultNodePadding   = 16.0
	DefaultNodeWidth     = 160.0 // collapsed card width
	DefaultNodeHeight    = 36.0
	DefaultCornerRadius  = 6.0
	DefaultCharWidth     = 7.0 // average glyph advance for title text
)

// Geometry holds the cosmetic constants applied uniformly to a layout.
//
// None of these values affect structure: two layouts of the same graph with
// different geometry have the same nodes, containers and connector kinds.
type Geometry struct {
	LineWidth     float64 `json:"line_width" toml:"line_width"`
	ConnectorSize float64 `json:"connector_size" toml:"connector_size"`
	ColumnGap     float64 `json:"column_gap" toml:"column_gap"`
	NodePadding   float64 `json:"node_padding" toml:"node_padding"`
	NodeWidth     float64 `json:"node_width" toml:"node_width"`
	NodeHeight    float64 `json:"node_height" toml:"node_height"`
	CornerRadius  float64 `json:"corner_radius" toml:"corner_radius"`
	CharWidth     float64 `json:"char_width" toml:"char_width"`
}

// DefaultGeometry returns the geometry used when none is configured.
func DefaultGeometry() Geometry {
	return Geometry{
		LineWidth:     DefaultLineWidth,
		ConnectorSize: DefaultConnectorSize,
		ColumnGap:     DefaultColumnGap,
		NodePadding:   DefaultNodePadding,
		NodeWidth:     DefaultNodeWidth,
		NodeHeight:    DefaultNodeHeight,
		CornerRadius:  DefaultCornerRadius,
		CharWidth:     DefaultCharWidth,
	}
}

// WithDefaults returns g with every zero field replaced by its default.
func (g Geometry) WithDefaults() Geometry {
	d := DefaultGeometry()
	if g.LineWidth == 0 {
		g.LineWidth = d.LineWidth
	}
	if g.ConnectorSize == 0 {
		g.ConnectorSize = d.ConnectorSize
	}
	if g.ColumnGap == 0 {
		g.ColumnGap = d.ColumnGap
	}
	if g.NodePadding == 0 {
		g.NodePadding = d.NodePadding
	}
	if g.NodeWidth == 0 {
		g.NodeWidth = d.NodeWidth
	}
	if g.NodeHeight == 0 {
		g.NodeHeight = d.NodeHeight
	}
	if g.CornerRadius == 0 {
		g.CornerRadius = d.CornerRadius
	}
	if g.CharWidth == 0 {
		g.CharWidth = d.CharWidth
	}
	return g
}

// Validate rejects negative values.
func (g Geometry) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"line_width", g.LineWidth},
		{"connector_size", g.ConnectorSize},
		{"column_gap", g.ColumnGap},
		{"node_padding", g.NodePadding},
		{"node_width", g.NodeWidth},
		{"node_height", g.NodeHeight},
		{"corner_radius", g.CornerRadius},
		{"char_width", g.CharWidth},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("geometry %s must not be negative (got %g)", f.name, f.value)
		}
	}
	return nil
}

// CornerOffset is the distance from a column's centre line to the far end
// of its corner connector.
func (g Geometry) CornerOffset() float64 {
	return g.ConnectorSize - g.LineWidth/2
}

// minColumnWidth keeps both corner arms of an empty or narrow column apart.
func (g Geometry) minColumnWidth() float64 {
	return 2 * g.ConnectorSize
}
