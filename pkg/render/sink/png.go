package sink

import (
	"context"

	"github.com/matzehuels/tabsmith/pkg/render"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

// RenderPNG renders the grid as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, g tab.Grid, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	svg, err := RenderSVG(g, opts...)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, r.scale)
}
