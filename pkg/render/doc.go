// Package render turns tab sheets into files.
//
// # Overview
//
// Drawing happens on [tab.Surface] implementations. The [svg] subpackage
// provides a retained display list that can be serialized as SVG, and the
// [sink] subpackage renders a whole [tab.Grid] to SVG, PNG, PDF, JSON
// geometry or plain-text tab.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg):
//
//	svg, err := sink.RenderSVG(grid)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [svg]: github.com/matzehuels/tabsmith/pkg/render/svg
// [sink]: github.com/matzehuels/tabsmith/pkg/render/sink
// [tab.Surface]: github.com/matzehuels/tabsmith/pkg/tab#Surface
// [tab.Grid]: github.com/matzehuels/tabsmith/pkg/tab#Grid
package render
