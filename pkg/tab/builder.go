package tab

import (
	"github.com/charmbracelet/log"
)

// Options configures a Builder.
type Options struct {
	Metrics Metrics
	Theme   Theme

	// Start is the position handed out when the sheet is empty. Zero means 1.
	Start int

	// Logger receives debug output for structural edits. Nil means
	// log.Default().
	Logger *log.Logger
}

// Builder owns the element store, the string-line rows drawn on the base
// surface, and the current selection.
//
// A Builder is not safe for concurrent use. Callers that share one across
// goroutines must hold a lock around each mutation and its redraw.
type Builder struct {
	sheet    *Sheet
	store    store
	rows     int
	start    int
	selected *Element
	recent   *Element
	logger   *log.Logger
}

// NewBuilder returns a builder painting string-lines on base and notes on
// overlay. The first row of string-lines is drawn immediately.
func NewBuilder(base, overlay Surface, opts Options) *Builder {
	if !opts.Metrics.Valid() {
		opts.Metrics = DefaultMetrics()
	}
	if opts.Theme == (Theme{}) {
		opts.Theme = DefaultTheme()
	}
	if opts.Start <= 0 {
		opts.Start = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if base == nil {
		base = NopSurface{}
	}
	if overlay == nil {
		overlay = NopSurface{}
	}
	b := &Builder{
		sheet:  &Sheet{Metrics: opts.Metrics, Theme: opts.Theme, Base: base, Overlay: overlay},
		start:  opts.Start,
		logger: opts.Logger,
	}
	b.AddTablines()
	return b
}

// Metrics returns the layout constants in use.
func (b *Builder) Metrics() Metrics { return b.sheet.Metrics }

// Theme returns the colors in use.
func (b *Builder) Theme() Theme { return b.sheet.Theme }

// Rows returns the number of string-line rows drawn so far.
func (b *Builder) Rows() int { return b.rows }

// Height returns the pixel height of the sheet with its current rows.
func (b *Builder) Height() float64 { return b.sheet.Metrics.SheetHeight(b.rows) }

// AddTablines draws one more row of six string-lines on the base surface.
func (b *Builder) AddTablines() {
	m := b.sheet.Metrics
	for line := 1; line <= NumStrings; line++ {
		b.sheet.Base.FillRect(m.HorizontalStart, m.LineY(b.rows, line), m.TablineLength, m.TablineWidth, b.sheet.Theme.Line, 1, false)
	}
	b.rows++
}

// ensureRow draws rows until position p has string-lines under it.
func (b *Builder) ensureRow(p int) {
	for b.sheet.Metrics.Row(p) >= b.rows {
		b.AddTablines()
	}
}

// RedrawTablines clears the base surface and repaints every row.
func (b *Builder) RedrawTablines() {
	n := b.rows
	b.sheet.Base.Clear()
	b.rows = 0
	for range n {
		b.AddTablines()
	}
}

// AddNote creates a note at position p on the given string-line, draws it
// and stores it.
func (b *Builder) AddNote(p, line int, text string) *Element {
	b.ensureRow(p)
	e := newNote(b.sheet, p, line, text)
	e.Draw()
	b.store.put(e)
	b.recent = e
	return e
}

// AddChordNote adds a note on line to the chord at position p. A note
// already at p is promoted to a chord first; a note already on that line is
// replaced. Without an element at p a new chord is created.
func (b *Builder) AddChordNote(p, line int, text string) *Element {
	b.ensureRow(p)
	e, ok := b.store.find(p)
	if ok {
		e.promote()
		e.setChild(line, text)
	} else {
		e = newChord(b.sheet, p, newNote(b.sheet, p, line, text))
		b.store.put(e)
	}
	e.Draw()
	b.recent = e
	return e
}

// Reserve leaves an empty slot holding position p for a later note.
func (b *Builder) Reserve(p int) {
	b.ensureRow(p)
	b.store.reserve(p)
}

// Find returns the element at position p.
func (b *Builder) Find(p int) (*Element, bool) { return b.store.find(p) }

// Elements returns the live elements in store order.
func (b *Builder) Elements() []*Element { return b.store.live() }

// Len returns the number of live elements.
func (b *Builder) Len() int { return len(b.store.live()) }

// Selected returns the selected element.
func (b *Builder) Selected() (*Element, bool) { return b.selected, b.selected != nil }

// MostRecent returns the element drawn last. Once that element is deleted
// it falls back to the live element at the latest position.
func (b *Builder) MostRecent() (*Element, bool) {
	if b.recent != nil {
		return b.recent, true
	}
	var last *Element
	for _, e := range b.store.live() {
		if last == nil || e.Position > last.Position {
			last = e
		}
	}
	return last, last != nil
}

// FirstEmptyIndex returns the store offset of the first empty slot, or -1.
func (b *Builder) FirstEmptyIndex() int { return b.store.firstEmpty() }

// NextPosition returns the position the next note belongs at.
func (b *Builder) NextPosition() int { return b.store.next(b.start) }

// Redraw clears the overlay and paints every live element.
func (b *Builder) Redraw() {
	b.sheet.Overlay.Clear()
	for _, e := range b.store.live() {
		e.Draw()
	}
}

// Select marks the element at position p as selected and highlights it.
// It reports whether an element was found.
func (b *Builder) Select(p int) bool {
	e, ok := b.store.find(p)
	if !ok {
		return false
	}
	b.selected = e
	b.Redraw()
	e.DrawSelection(b.Redraw)
	return true
}

// ClearSelection drops the selection and repaints without a highlight.
func (b *Builder) ClearSelection() {
	if b.selected == nil {
		return
	}
	b.selected = nil
	b.Redraw()
}

// DeleteSelected removes the selected element and moves every later
// element one position earlier. It does nothing without a selection.
func (b *Builder) DeleteSelected() {
	if b.selected == nil {
		return
	}
	p := b.selected.Position
	n := b.store.remove(p)
	if b.recent == b.selected {
		b.recent = nil
	}
	b.selected = nil
	b.logger.Debug("deleted element", "position", p, "slots", n)
	b.Redraw()
}

// InsertAtSelected opens an empty position where the selected element is,
// moving it and every later element one position later. It does nothing
// without a selection.
func (b *Builder) InsertAtSelected() {
	if b.selected == nil {
		return
	}
	p := b.selected.Position
	b.store.open(p)
	b.selected = nil
	if last, ok := b.lastPosition(); ok {
		b.ensureRow(last)
	}
	b.logger.Debug("inserted position", "position", p)
	b.Redraw()
}

func (b *Builder) lastPosition() (int, bool) {
	last, ok := 0, false
	for _, sl := range b.store.slots {
		if p := sl.position(); !ok || p > last {
			last, ok = p, true
		}
	}
	return last, ok
}

// Grid returns the notation grid projected from the element store. Empty
// slots appear as empty columns.
func (b *Builder) Grid() Grid {
	g := make(Grid, len(b.store.slots))
	for _, sl := range b.store.slots {
		p := sl.position()
		col := g[p]
		if sl.elem != nil {
			col = col.Overlay(sl.elem.Column())
		}
		g[p] = col
	}
	return g
}

// Reset removes every element and the selection and clears the overlay.
func (b *Builder) Reset() {
	b.store = store{}
	b.selected = nil
	b.recent = nil
	b.sheet.Overlay.Clear()
}
