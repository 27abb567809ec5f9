package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/tabsmith/pkg/observability"
	"github.com/matzehuels/tabsmith/pkg/render/sink"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

// Layout materializes g with the options' geometry and returns the
// resulting builder.
func Layout(ctx context.Context, g tab.Grid, opts Options) (*tab.Builder, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Render()
	hooks.OnLayoutStart(ctx, len(g))
	start := time.Now()

	b, err := sink.Layout(g, sinkOptions(opts)...)

	elements := 0
	if b != nil {
		elements = b.Len()
	}
	hooks.OnLayoutComplete(ctx, elements, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func sinkOptions(opts Options) []sink.Option {
	return []sink.Option{
		sink.WithMetrics(opts.Metrics()),
		sink.WithTheme(opts.Theme),
		sink.WithScale(opts.Scale),
		sink.WithLogger(opts.Logger),
	}
}
