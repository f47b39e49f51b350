package styles

import (
	"bytes"
	"slices"
	"strings"

	"github.com/matzehuels/flowdiagram/pkg/errors"
)

// Style defines the visual appearance of a rendered flow diagram.
// Implementations control how cards, connector lines and container frames
// are drawn.
type Style interface {
	// Name is the identifier used on the command line and in exports.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, markers).
	RenderDefs(buf *bytes.Buffer)
	// RenderBackground paints the full canvas.
	RenderBackground(buf *bytes.Buffer, w, h float64)
	// RenderFrame writes the outline of a container.
	RenderFrame(buf *bytes.Buffer, f Frame)
	// RenderLine writes a connector.
	RenderLine(buf *bytes.Buffer, l Line)
	// RenderCard writes a node card and its label.
	RenderCard(buf *bytes.Buffer, c Card)
}

// Card contains all data needed to render a single node.
type Card struct {
	Key        string  // Unique layout key, used for the element id
	ID         string  // Node identifier
	Label      string  // Display text, already truncated
	X, Y, W, H float64 // Position and dimensions
	Radius     float64 // Corner radius
	FontSize   float64
	HasContent bool // Node carries a payload; drawn with a badge
	Converges  bool // Node is a convergence point
}

// CenterX returns the horizontal centre of the card.
func (c Card) CenterX() float64 { return c.X + c.W/2 }

// CenterY returns the vertical centre of the card.
func (c Card) CenterY() float64 { return c.Y + c.H/2 }

// Line is a connector. Corner lines bend once: the horizontal arm ends at
// (X1,Y1), the vertical arm at (X2,Y2).
type Line struct {
	Kind           string
	X1, Y1, X2, Y2 float64
	Corner         bool
	Radius         float64 // Bend radius for corners
	Width          float64 // Stroke width
}

// Frame is a container outline, drawn only in debug renders.
type Frame struct {
	Key        string
	X, Y, W, H float64
	Depth      int
}

var registry = map[string]Style{
	"simple": Simple{},
	"dark":   Dark{},
}

// Names returns the registered style names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the style registered under name. The empty name selects
// the simple style.
func Lookup(name string) (Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Simple{}, nil
	}
	if s, ok := registry[name]; ok {
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (want %s)", name, strings.Join(Names(), " or "))
}
