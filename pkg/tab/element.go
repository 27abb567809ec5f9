package tab

import "slices"

// Kind distinguishes the two element variants.
type Kind uint8

const (
	KindNote Kind = iota
	KindChord
)

func (k Kind) String() string {
	if k == KindChord {
		return "chord"
	}
	return "note"
}

// Sheet is the shared drawing context an element paints through. Elements
// hold a non-owning pointer to it; the Builder owns the sheet.
type Sheet struct {
	Metrics Metrics
	Theme   Theme
	Base    Surface // string-lines
	Overlay Surface // notes and selection highlight
}

// Element is the renderable unit at one position. A note occupies a single
// string-line; a chord groups one note per occupied string-line.
//
// For a note, Line is its string-line. For a chord, Line is the median of
// its children's lines and is only used to place the selection highlight.
type Element struct {
	Kind     Kind
	Position int
	Line     int
	Text     string
	X, Y     float64
	W, H     float64
	Children []*Element

	sheet *Sheet
}

func newNote(s *Sheet, p, line int, text string) *Element {
	size := s.Metrics.GlyphSize()
	e := &Element{Kind: KindNote, Position: p, Line: line, Text: text, W: size, H: size, sheet: s}
	e.layout()
	return e
}

func newChord(s *Sheet, p int, children ...*Element) *Element {
	size := s.Metrics.GlyphSize()
	e := &Element{Kind: KindChord, Position: p, Children: children, W: size, H: size * NumStrings, sheet: s}
	e.layout()
	e.Line = e.median()
	return e
}

// promote turns a note into a chord whose single child is the old note.
func (e *Element) promote() {
	if e.Kind == KindChord {
		return
	}
	child := newNote(e.sheet, e.Position, e.Line, e.Text)
	e.Kind = KindChord
	e.Text = ""
	e.Children = []*Element{child}
	e.H = e.W * NumStrings
	e.layout()
	e.Line = e.median()
}

// setChild adds a note on line to a chord, replacing any child already on
// that line.
func (e *Element) setChild(line int, text string) {
	for _, c := range e.Children {
		if c.Line == line {
			c.Text = text
			return
		}
	}
	e.Children = append(e.Children, newNote(e.sheet, e.Position, line, text))
	e.Line = e.median()
}

// layout recomputes the glyph origin from the position index.
func (e *Element) layout() {
	if e.Kind == KindChord {
		e.X, e.Y = e.sheet.Metrics.Place(e.Position, 1)
		return
	}
	e.X, e.Y = e.sheet.Metrics.Place(e.Position, e.Line)
}

// Draw paints the element onto the overlay surface.
func (e *Element) Draw() {
	if e.Kind == KindChord {
		for _, c := range e.Children {
			c.Draw()
		}
		e.Line = e.median()
		return
	}
	m, th := e.sheet.Metrics, e.sheet.Theme
	dx, dy := m.TextOffset()
	e.sheet.Overlay.FillRect(e.X, e.Y, e.W, e.H, th.Background, 1, true)
	e.sheet.Overlay.DrawText(e.Text, e.X+dx, e.Y+dy, m.FontSize, th.Text, AlignCenter)
}

// LeftTranslate moves the element one position earlier.
func (e *Element) LeftTranslate() { e.translate(-1) }

// RightTranslate moves the element one position later.
func (e *Element) RightTranslate() { e.translate(1) }

func (e *Element) translate(d int) {
	e.Position += d
	e.layout()
	for _, c := range e.Children {
		c.translate(d)
	}
}

// Column returns the notation-grid column this element contributes.
func (e *Element) Column() Column {
	var col Column
	if e.Kind == KindChord {
		for _, c := range e.Children {
			col[c.Line-1] = c.Text
		}
		return col
	}
	col[e.Line-1] = e.Text
	return col
}

// Lines returns the string-lines the element occupies in ascending order.
func (e *Element) Lines() []int {
	if e.Kind == KindNote {
		return []int{e.Line}
	}
	lines := make([]int, 0, len(e.Children))
	for _, c := range e.Children {
		lines = append(lines, c.Line)
	}
	slices.Sort(lines)
	return lines
}

func (e *Element) median() int { return Median(e.Lines()) }

// SelectionRect returns the highlight region spanning all six string-lines
// at the element's column.
func (e *Element) SelectionRect() (x, y, w, h float64) {
	m := e.sheet.Metrics
	if e.Kind == KindChord {
		if len(e.Children) == 0 {
			return e.X, e.Y, e.W, e.H
		}
		first := e.Children[0]
		return first.X, m.RowTop(e.Position), first.W, first.H * NumStrings
	}
	return e.X, e.Y - float64(e.Line-1)*m.TablineSpace, e.W, (m.TablineWidth + m.TablineSpace) * NumStrings
}

// DrawSelection clears the highlight region, calls redraw to repaint every
// element, then paints the translucent highlight on top.
func (e *Element) DrawSelection(redraw func()) {
	x, y, w, h := e.SelectionRect()
	e.sheet.Overlay.ClearRect(x, y, w, h)
	if redraw != nil {
		redraw()
	}
	th := e.sheet.Theme
	e.sheet.Overlay.FillRect(x, y, w, h, th.Highlight, th.HighlightAlpha, false)
}

// Contains reports whether (x, y) falls inside the element's bounding box.
func (e *Element) Contains(x, y float64) bool {
	return x >= e.X && x <= e.X+e.W && y >= e.Y && y <= e.Y+e.H
}

// Median returns the median of lines. For an even count it is the floor of
// the mean of the two middle values. It returns 0 for no lines.
func Median(lines []int) int {
	if len(lines) == 0 {
		return 0
	}
	s := slices.Clone(lines)
	slices.Sort(s)
	half := len(s) / 2
	if len(s)%2 == 1 {
		return s[half]
	}
	return (s[half-1] + s[half]) / 2
}
