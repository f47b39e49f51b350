package sink

import (
	"context"
	"slices"

	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
	"github.com/matzehuels/flowdiagram/pkg/render"
)

// RenderPDF renders the tree as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, t *layout.Tree, opts ...SVGOption) ([]byte, error) {
	svg := RenderSVG(t, slices.Concat(opts, []SVGOption{WithoutInteraction()})...)
	return render.ToPDF(ctx, svg)
}
