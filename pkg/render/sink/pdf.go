package sink

import (
	"context"

	"github.com/matzehuels/tabsmith/pkg/render"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

// RenderPDF renders the grid as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, g tab.Grid, opts ...Option) ([]byte, error) {
	svg, err := RenderSVG(g, opts...)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
