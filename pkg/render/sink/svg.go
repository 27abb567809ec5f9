package sink

import (
	"github.com/matzehuels/tabsmith/pkg/render/svg"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

// RenderSVG renders the grid as a standalone SVG document.
func RenderSVG(g tab.Grid, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	s, err := r.layout(g)
	if err != nil {
		return nil, err
	}
	return svg.Compose(r.metrics.Width, s.builder.Height(), s.base, s.overlay), nil
}
