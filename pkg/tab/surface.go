package tab

// Color is a CSS-style color string ("#fff", "blue", "rgb(0,0,0)").
type Color string

// Align controls horizontal text anchoring relative to the x coordinate.
type Align uint8

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// String returns the SVG text-anchor keyword for the alignment.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "start"
	case AlignRight:
		return "end"
	default:
		return "middle"
	}
}

// Surface is the drawing collaborator consumed by the engine. All coordinates
// are pre-scaled pixels. Calls are fire-and-forget: the engine never reads
// anything back from a surface.
type Surface interface {
	// FillRect paints a filled rectangle. When clearFirst is set the region
	// is cleared before painting so stale paint underneath does not persist.
	FillRect(x, y, w, h float64, c Color, alpha float64, clearFirst bool)
	// ClearRect erases a rectangular region.
	ClearRect(x, y, w, h float64)
	// DrawCircle paints a filled circle centred on (x, y).
	DrawCircle(x, y, r float64, c Color)
	// DrawText paints text anchored at (x, y) on its baseline.
	DrawText(text string, x, y, fontSize float64, c Color, align Align)
	// Clear erases the whole surface.
	Clear()
}

// Theme holds the colors used when painting a tab sheet.
type Theme struct {
	Background     Color   `toml:"background" json:"background"`
	Line           Color   `toml:"line" json:"line"`
	Text           Color   `toml:"text" json:"text"`
	Highlight      Color   `toml:"highlight" json:"highlight"`
	HighlightAlpha float64 `toml:"highlight_alpha" json:"highlight_alpha"`
}

// DefaultTheme returns black notes on white glyphs with a translucent blue
// selection overlay.
func DefaultTheme() Theme {
	return Theme{
		Background:     "#fff",
		Line:           "#000",
		Text:           "black",
		Highlight:      "blue",
		HighlightAlpha: 0.2,
	}
}

// NopSurface discards every drawing call. It is useful for headless
// editing where only the element store and the notation grid matter.
type NopSurface struct{}

func (NopSurface) FillRect(float64, float64, float64, float64, Color, float64, bool) {}
func (NopSurface) ClearRect(float64, float64, float64, float64)                     {}
func (NopSurface) DrawCircle(float64, float64, float64, Color)                      {}
func (NopSurface) DrawText(string, float64, float64, float64, Color, Align)         {}
func (NopSurface) Clear()                                                           {}

var _ Surface = NopSurface{}
