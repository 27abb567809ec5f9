package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/tabsmith/pkg/observability"
	"github.com/matzehuels/tabsmith/pkg/render/sink"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, g tab.Grid, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := render(ctx, g, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func render(ctx context.Context, g tab.Grid, opts Options) (map[string][]byte, error) {
	sopts := sinkOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = sink.RenderSVG(g, sopts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, g, sopts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, g, sopts...)
		case FormatJSON:
			data, err = sink.RenderJSON(g, sopts...)
		case FormatText:
			data = []byte(sink.RenderText(g, sink.WithTextMaxPerRow(opts.MaxPerRow)))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
