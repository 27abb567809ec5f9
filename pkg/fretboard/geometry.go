package fretboard

import "math"

// Neck layout.
const (
	NumStrings = 6
	NumFrets   = 24
)

// Reference surface size the unscaled constants were designed for.
const (
	ReferenceWidth  = 1300.0
	ReferenceHeight = 300.0
)

// Frets that carry inlay markers.
var (
	SingleMarkers = []int{3, 5, 7, 9, 15, 17, 19, 21}
	DoubleMarkers = []int{12, 24}
)

// Geometry holds the neck layout in surface pixels.
type Geometry struct {
	StringStart  float64 // y of the high E string
	NeckStart    float64 // x of the nut
	FretWidth    float64
	FretLength   float64
	FretStart    float64
	FretSpace    float64
	StringWidth  float64
	StringSpace  float64
	StringLength float64
	MarkerRadius float64
	NoteRadius   float64
	FontSize     float64

	Width, Height float64
}

// NewGeometry derives the layout from horizontal and vertical scale factors
// relative to the reference surface.
func NewGeometry(sx, sy float64) Geometry {
	return Geometry{
		StringStart:  20 * sy,
		NeckStart:    50 * sx,
		FretWidth:    5 * sx,
		FretLength:   275 * sy,
		FretStart:    10 * sx,
		FretSpace:    50 * sx,
		StringWidth:  5 * sx,
		StringSpace:  50 * sy,
		StringLength: 1200 * sx,
		MarkerRadius: 5 * sx,
		NoteRadius:   15 * sx,
		FontSize:     14 * (sx + sy) / 2,
		Width:        ReferenceWidth * sx,
		Height:       ReferenceHeight * sy,
	}
}

// ForSurface returns a layout scaled to a surface of the given pixel size.
func ForSurface(width, height float64) Geometry {
	return NewGeometry(width/ReferenceWidth, height/ReferenceHeight)
}

// MarkerX returns the x centre of the inlay for fret.
func (g Geometry) MarkerX(fret int) float64 {
	return g.NeckStart + (float64(fret)-0.5)*g.FretSpace
}

// NoteCenter returns the centre of a note marker on string-line number at
// fret.
func (g Geometry) NoteCenter(number, fret int) (x, y float64) {
	x = (float64(fret)+0.33)*g.FretSpace + g.FretStart
	y = float64(number-1)*g.StringSpace + g.StringStart
	return x, y
}

// StringAt returns the name of the string closest to y.
func (g Geometry) StringAt(y float64) string {
	if y <= g.StringStart+g.StringWidth {
		return EHigh
	}
	if y >= g.StringStart+(NumStrings-1)*g.StringSpace {
		return ELow
	}
	v := int(math.Round((y - g.StringStart - g.StringWidth) / g.StringSpace))
	return Strings[NumStrings-v-1]
}

// FretAt returns the fret under x. The region left of the nut is the open
// string.
func (g Geometry) FretAt(x float64) int {
	if x < g.NeckStart+g.FretWidth {
		return 0
	}
	if x >= g.NeckStart+(NumFrets-1)*g.FretSpace {
		return NumFrets
	}
	return int(math.Floor((x-g.NeckStart-g.FretWidth)/g.FretSpace)) + 1
}

// DetectClick maps a point on the neck to a string name and fret.
func (g Geometry) DetectClick(x, y float64) (string, int) {
	return g.StringAt(y), g.FretAt(x)
}
