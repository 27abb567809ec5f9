package tab

// NumStrings is the number of string-lines in one tab row.
const NumStrings = 6

// Reference surface size the unscaled constants were designed for.
const (
	ReferenceWidth  = 1300.0
	ReferenceHeight = 300.0
)

// DefaultMaxPerRow is the number of positions laid out before a row wraps.
const DefaultMaxPerRow = 59

// Metrics holds the layout constants for a tab sheet. All values are in
// surface pixels. Metrics is a plain value and safe to copy.
type Metrics struct {
	HorizontalStart float64 `json:"horizontal_start"` // left edge of the string-lines
	VerticalStart   float64 `json:"vertical_start"`   // top string-line of the first row
	TablineSpace    float64 `json:"tabline_space"`    // vertical distance between string-lines
	TablineLength   float64 `json:"tabline_length"`   // horizontal length of a string-line
	TablineWidth    float64 `json:"tabline_width"`    // stroke thickness of a string-line
	ElementSpace    float64 `json:"element_space"`    // half the horizontal pitch between positions
	ElementSize     float64 `json:"element_size"`     // base size unit of a note glyph
	FontSize        float64 `json:"font_size"`
	RowOffset       float64 `json:"row_offset"` // vertical pitch between wrapped rows
	MaxPerRow       int     `json:"max_per_row"`

	// Width and Height bound the drawable surface for hit-testing.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewMetrics derives layout constants from horizontal and vertical scale
// factors relative to the reference surface.
func NewMetrics(sx, sy float64) Metrics {
	m := Metrics{
		HorizontalStart: 50 * sx,
		VerticalStart:   20 * sy,
		TablineSpace:    12 * sy,
		TablineLength:   1200 * sx,
		TablineWidth:    0.5 * sx,
		ElementSpace:    10 * sx,
		FontSize:        10 * (sx + sy) / 2,
		ElementSize:     8 * (sx + sy) / 2,
		MaxPerRow:       DefaultMaxPerRow,
		Width:           ReferenceWidth * sx,
		Height:          ReferenceHeight * sy,
	}
	m.RowOffset = m.VerticalStart + NumStrings*m.TablineSpace
	return m
}

// ForSurface returns metrics scaled to a surface of the given pixel size.
func ForSurface(width, height float64) Metrics {
	return NewMetrics(width/ReferenceWidth, height/ReferenceHeight)
}

// DefaultMetrics returns metrics for the reference surface (scale 1).
func DefaultMetrics() Metrics { return NewMetrics(1, 1) }

// Column returns the horizontal slot of position p within its row.
// Positions on wrapped rows start at column 1.
func (m Metrics) Column(p int) int {
	if p < m.MaxPerRow {
		return p
	}
	return p%m.MaxPerRow + 1
}

// Row returns the zero-based row that position p is laid out on.
func (m Metrics) Row(p int) int {
	return p / m.MaxPerRow
}

// Place returns the top-left corner of the glyph for a note at position p on
// the given string-line.
func (m Metrics) Place(p, line int) (x, y float64) {
	x = float64(m.Column(p))*2*m.ElementSpace + m.HorizontalStart - 0.25*m.ElementSize
	y = float64(line-1)*m.TablineSpace + m.RowTop(p)
	return x, y
}

// RowTop returns the y coordinate of a glyph on string-line 1 at position p.
func (m Metrics) RowTop(p int) float64 {
	return m.VerticalStart + float64(m.Row(p))*m.RowOffset - 0.5*m.ElementSize
}

// GlyphSize is the side length of a note glyph.
func (m Metrics) GlyphSize() float64 { return 1.5 * m.ElementSize }

// TextOffset returns the offset of a note's text anchor from its glyph corner.
func (m Metrics) TextOffset() (dx, dy float64) { return 0.75 * m.ElementSize, m.ElementSize }

// LineY returns the y coordinate of string-line `line` on row `row`.
func (m Metrics) LineY(row, line int) float64 {
	return m.VerticalStart + float64(line-1)*m.TablineSpace + float64(row)*m.RowOffset
}

// SheetHeight returns the pixel height needed to show the given number of
// rows, never less than the surface height.
func (m Metrics) SheetHeight(rows int) float64 {
	return max(m.Height, m.VerticalStart+float64(rows)*m.RowOffset)
}

// Valid reports whether the metrics can lay out positions.
func (m Metrics) Valid() bool {
	return m.MaxPerRow > 0 && m.ElementSize > 0 && m.TablineSpace > 0
}
