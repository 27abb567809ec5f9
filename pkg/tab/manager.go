package tab

import (
	"github.com/matzehuels/tabsmith/pkg/errors"
)

// Manager drives a Builder from user input. It owns the authoring mode, the
// cursor position the next symbol is committed at, and the pending column
// of symbols not yet drawn.
//
// The element store is the single source of truth for committed notes;
// Grid derives the notation grid from it on demand.
type Manager struct {
	b       *Builder
	mode    Mode
	cursor  int
	pending Column
	staged  Grid
}

// NewManager returns a manager in single-note mode with its cursor at the
// builder's next free position.
func NewManager(b *Builder) *Manager {
	return &Manager{b: b, cursor: b.NextPosition()}
}

// Builder returns the managed builder.
func (m *Manager) Builder() *Builder { return m.b }

// Mode returns the current authoring mode.
func (m *Manager) Mode() Mode { return m.mode }

// Cursor returns the position the next symbol is committed at.
func (m *Manager) Cursor() int { return m.cursor }

// Pending returns the symbols buffered at the cursor.
func (m *Manager) Pending() Column { return m.pending }

// UpdateDrawable buffers symbol on the given string-line at the cursor.
func (m *Manager) UpdateDrawable(line int, symbol string) error {
	if err := errors.ValidateStringLine(line); err != nil {
		return err
	}
	m.pending[line-1] = symbol
	return nil
}

// ToggleChordMode switches between single-note and chord mode. Leaving
// chord mode commits the buffered chord and advances the cursor.
func (m *Manager) ToggleChordMode() {
	if m.mode == ModeChord {
		m.drawChord()
		m.pending = Column{}
		m.advance()
		m.mode = ModeSingle
		return
	}
	m.mode = ModeChord
}

// SetMode switches to mode, committing a pending chord when leaving chord
// mode.
func (m *Manager) SetMode(mode Mode) {
	if mode != m.mode {
		m.ToggleChordMode()
	}
}

// Draw commits the buffered symbols at the cursor. In single-note mode the
// cursor then advances; in chord mode it stays so more strings can be added.
func (m *Manager) Draw() {
	if m.mode == ModeChord {
		m.drawChord()
		return
	}
	m.drawSingle()
}

func (m *Manager) drawChord() {
	for i, s := range m.pending {
		if s != "" {
			m.b.AddChordNote(m.cursor, i+1, s)
		}
	}
}

func (m *Manager) drawSingle() {
	m.drawColumn(m.cursor, m.pending)
	m.pending = Column{}
	m.advance()
}

// drawColumn materializes one grid column at position p: nothing for an
// empty column, a note for one symbol, a chord for several.
func (m *Manager) drawColumn(p int, col Column) {
	switch col.Count() {
	case 0:
	case 1:
		line := col.Lines()[0]
		m.b.AddNote(p, line, col[line-1])
	default:
		for _, line := range col.Lines() {
			m.b.AddChordNote(p, line, col[line-1])
		}
	}
}

func (m *Manager) advance() { m.cursor = m.b.NextPosition() }

// DrawSymbol commits a technique marker at the cursor on the string-line of
// the most recently drawn element. It does nothing when nothing has been
// drawn yet or a chord is being collected.
func (m *Manager) DrawSymbol(symbol string) {
	if m.mode == ModeChord {
		return
	}
	e, ok := m.b.MostRecent()
	if !ok {
		return
	}
	m.pending = Column{}
	m.pending[e.Line-1] = symbol
	m.drawSingle()
}

// SetGrid stages a notation grid for DrawAll.
func (m *Manager) SetGrid(g Grid) { m.staged = g }

// DrawAll materializes the staged grid in position order, advancing the
// cursor after each position. Empty columns become reserved positions.
func (m *Manager) DrawAll() {
	for _, p := range m.staged.Positions() {
		col := m.staged[p]
		if col.Empty() {
			m.b.Reserve(p)
		} else {
			m.drawColumn(p, col)
		}
		m.advance()
	}
	m.staged = nil
}

// Load replaces the sheet's contents with g.
func (m *Manager) Load(g Grid) {
	m.b.Reset()
	m.pending = Column{}
	m.mode = ModeSingle
	m.SetGrid(g)
	m.DrawAll()
	m.cursor = m.b.NextPosition()
}

// FindElement hit-tests (x, y) against every element and selects the first
// one containing it. Points outside the sheet never hit.
func (m *Manager) FindElement(x, y float64) (*Element, bool) {
	mt := m.b.Metrics()
	if x < 0 || y < 0 || x > mt.Width || y > m.b.Height() {
		return nil, false
	}
	for _, e := range m.b.Elements() {
		if e.Contains(x, y) {
			m.b.Select(e.Position)
			return e, true
		}
	}
	return nil, false
}

// Select selects the element at position p.
func (m *Manager) Select(p int) bool { return m.b.Select(p) }

// Delete removes the selected element, closing the gap it leaves. It does
// nothing without a selection or in chord mode.
func (m *Manager) Delete() {
	sel, ok := m.b.Selected()
	if !ok || m.mode == ModeChord {
		return
	}
	m.cursor = sel.Position
	m.b.DeleteSelected()
	m.advance()
}

// Insert opens an empty position at the selected element, moving it and
// everything after it one position later. The cursor moves to the opened
// position. It does nothing without a selection or in chord mode.
func (m *Manager) Insert() {
	sel, ok := m.b.Selected()
	if !ok || m.mode == ModeChord {
		return
	}
	m.cursor = sel.Position
	m.b.InsertAtSelected()
}

// AddTabRow draws another row of string-lines.
func (m *Manager) AddTabRow() { m.b.AddTablines() }

// Grid returns the notation grid of committed elements with the pending
// column overlaid at the cursor.
func (m *Manager) Grid() Grid {
	g := m.b.Grid()
	if !m.pending.Empty() {
		g[m.cursor] = g[m.cursor].Overlay(m.pending)
	}
	return g
}
