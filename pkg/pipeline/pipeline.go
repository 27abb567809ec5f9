// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP server.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Parse: Read and validate a notation grid (see [Parse])
//  2. Layout: Materialize the grid into positioned elements (see [Layout])
//  3. Render: Produce output artifacts (SVG, PNG, PDF, JSON, TXT)
//
// # Usage
//
// Create a Runner and render a grid:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg", "txt"}}
//	result, err := runner.Render(ctx, grid, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Artifacts are cached by the hash of the grid and the options that change
// output, so rendering the same grid twice hits the cache.
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabsmith/pkg/cache"
	"github.com/matzehuels/tabsmith/pkg/errors"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default sheet width in pixels.
	DefaultWidth = tab.ReferenceWidth

	// DefaultHeight is the default sheet height in pixels.
	DefaultHeight = tab.ReferenceHeight

	// DefaultMaxPerRow is the default number of positions before a row wraps.
	DefaultMaxPerRow = tab.DefaultMaxPerRow

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatText: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the render pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	Width     float64  `json:"width,omitempty"`
	Height    float64  `json:"height,omitempty"`
	MaxPerRow int      `json:"max_per_row,omitempty"`
	Formats   []string `json:"formats,omitempty"`
	Scale     float64  `json:"scale,omitempty"` // PNG only

	// Theme overrides the default colors. A zero Theme means tab.DefaultTheme.
	Theme tab.Theme `json:"theme,omitzero"`

	// Refresh skips cache reads; fresh artifacts are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// GridHash is the content hash of the grid.
	GridHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Positions  int
	Elements   int
	Rows       int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Formats returns the supported formats in a stable order.
func Formats() []string {
	return []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatText}
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "size must be positive, got %vx%v", o.Width, o.Height)
	}
	if o.MaxPerRow < 2 {
		return errors.New(errors.ErrCodeInvalidInput, "max_per_row must be at least 2, got %d", o.MaxPerRow)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MaxPerRow == 0 {
		o.MaxPerRow = DefaultMaxPerRow
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = slices.Compact(o.Formats)
	if o.Theme == (tab.Theme{}) {
		o.Theme = tab.DefaultTheme()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Metrics returns the layout constants for the options' sheet size.
func (o *Options) Metrics() tab.Metrics {
	m := tab.ForSurface(o.Width, o.Height)
	m.MaxPerRow = o.MaxPerRow
	return m
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:     o.Width,
		Height:    o.Height,
		MaxPerRow: o.MaxPerRow,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:    format,
		Width:     o.Width,
		Height:    o.Height,
		MaxPerRow: o.MaxPerRow,
	}
	if o.Theme != tab.DefaultTheme() {
		if data, err := json.Marshal(o.Theme); err == nil {
			k.Theme = string(data)
		}
	}
	if format == FormatPNG {
		k.Format = fmt.Sprintf("%s@%gx", format, o.Scale)
	}
	return k
}
