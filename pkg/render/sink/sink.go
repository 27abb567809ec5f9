// Package sink renders a notation grid to output formats.
//
// Every renderer materializes the grid into a headless [tab.Builder] over
// two [svg.Canvas] layers, so the geometry is exactly what an interactive
// editor would show:
//
//	out, err := sink.RenderSVG(grid, sink.WithMetrics(tab.ForSurface(1300, 300)))
//
// PNG and PDF go through SVG and need rsvg-convert (see [render.ToPNG]).
// [RenderText] needs no surface and produces classic ASCII tab.
//
// [tab.Builder]: github.com/matzehuels/tabsmith/pkg/tab#Builder
// [svg.Canvas]: github.com/matzehuels/tabsmith/pkg/render/svg#Canvas
// [render.ToPNG]: github.com/matzehuels/tabsmith/pkg/render#ToPNG
package sink

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabsmith/pkg/render/svg"
	"github.com/matzehuels/tabsmith/pkg/tab"
	"github.com/matzehuels/tabsmith/pkg/tabio"
)

// Option configures a renderer.
type Option func(*renderer)

type renderer struct {
	metrics tab.Metrics
	theme   tab.Theme
	scale   float64
	logger  *log.Logger
}

// WithMetrics sets the layout constants. The default is tab.DefaultMetrics.
func WithMetrics(m tab.Metrics) Option { return func(r *renderer) { r.metrics = m } }

// WithTheme sets the colors. The default is tab.DefaultTheme.
func WithTheme(t tab.Theme) Option { return func(r *renderer) { r.theme = t } }

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) Option { return func(r *renderer) { r.scale = s } }

// WithLogger routes builder debug output to l.
func WithLogger(l *log.Logger) Option { return func(r *renderer) { r.logger = l } }

func newRenderer(opts ...Option) renderer {
	r := renderer{
		metrics: tab.DefaultMetrics(),
		theme:   tab.DefaultTheme(),
		scale:   2.0,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// sheet is a grid laid out on SVG layers.
type sheet struct {
	base, overlay *svg.Canvas
	builder       *tab.Builder
}

func (r renderer) layout(g tab.Grid) (*sheet, error) {
	if err := tabio.Validate(g); err != nil {
		return nil, err
	}
	s := &sheet{base: svg.NewCanvas(), overlay: svg.NewCanvas()}
	s.builder = tab.NewBuilder(s.base, s.overlay, tab.Options{
		Metrics: r.metrics,
		Theme:   r.theme,
		Logger:  r.logger,
	})
	tab.NewManager(s.builder).Load(g)
	return s, nil
}

// Layout materializes g and returns its builder for inspecting element
// geometry.
func Layout(g tab.Grid, opts ...Option) (*tab.Builder, error) {
	s, err := newRenderer(opts...).layout(g)
	if err != nil {
		return nil, err
	}
	return s.builder, nil
}
