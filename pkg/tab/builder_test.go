package tab

import (
	"strconv"
	"testing"
)

// addRun adds single notes on line 1 at positions 0..n-1 with text equal to
// the original position.
func addRun(b *Builder, n int) {
	for p := range n {
		b.AddNote(p, 1, strconv.Itoa(p))
	}
}

func positions(b *Builder) []int {
	var out []int
	for _, e := range b.Elements() {
		out = append(out, e.Position)
	}
	return out
}

func TestNewBuilderDrawsFirstRow(t *testing.T) {
	_, base, _ := newTestBuilder(t)
	if got := base.count("rect"); got != NumStrings {
		t.Fatalf("base rects = %d, want %d", got, NumStrings)
	}
	for i, o := range base.ops {
		wantY := 20 + float64(i)*12
		if o.x != 50 || o.y != wantY || o.w != 1200 || o.h != 0.5 || o.color != "#000" {
			t.Errorf("line %d = %+v, want at (50, %v) 1200x0.5", i+1, o, wantY)
		}
	}
}

func TestAddNoteIncreasingPositions(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	lines := []int{1, 3, 6, 2, 4}
	for p, line := range lines {
		b.AddNote(p*3, line, "5")
	}

	els := b.Elements()
	if len(els) != len(lines) {
		t.Fatalf("live elements = %d, want %d", len(els), len(lines))
	}
	for i, e := range els {
		if e.Position != i*3 || e.Line != lines[i] {
			t.Errorf("element %d at position %d line %d, want %d line %d", i, e.Position, e.Line, i*3, lines[i])
		}
		if x, y := b.Metrics().Place(e.Position, e.Line); e.X != x || e.Y != y {
			t.Errorf("element %d at (%v, %v), want (%v, %v)", i, e.X, e.Y, x, y)
		}
	}
	if got := b.NextPosition(); got != 13 {
		t.Errorf("NextPosition() = %d, want 13", got)
	}
}

func TestAddNoteGrowsRows(t *testing.T) {
	b, base, _ := newTestBuilder(t)
	b.AddNote(130, 1, "1")

	if b.Rows() != 3 {
		t.Errorf("Rows() = %d, want 3", b.Rows())
	}
	if got := base.count("rect"); got != 3*NumStrings {
		t.Errorf("base rects = %d, want %d", got, 3*NumStrings)
	}
}

func TestNextPositionEmpty(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	if got := b.NextPosition(); got != 1 {
		t.Errorf("NextPosition() = %d, want 1", got)
	}
	if got := b.FirstEmptyIndex(); got != -1 {
		t.Errorf("FirstEmptyIndex() = %d, want -1", got)
	}
}

func TestFind(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	addRun(b, 3)

	if e, ok := b.Find(2); !ok || e.Text != "2" {
		t.Errorf("Find(2) = %v, %v", e, ok)
	}
	if _, ok := b.Find(7); ok {
		t.Error("Find(7) found an element")
	}
}

func TestAddChordNote(t *testing.T) {
	t.Run("creates chord", func(t *testing.T) {
		b, _, _ := newTestBuilder(t)
		e := b.AddChordNote(0, 2, "3")
		if e.Kind != KindChord || len(e.Children) != 1 || b.Len() != 1 {
			t.Errorf("got %v with %d children, %d elements", e.Kind, len(e.Children), b.Len())
		}
	})

	t.Run("promotes note", func(t *testing.T) {
		b, _, _ := newTestBuilder(t)
		b.AddNote(0, 6, "0")
		e := b.AddChordNote(0, 1, "0")
		if e.Kind != KindChord || len(e.Children) != 2 || b.Len() != 1 {
			t.Errorf("got %v with %d children, %d elements", e.Kind, len(e.Children), b.Len())
		}
		if got, want := e.Column(), (Column{0: "0", 5: "0"}); got != want {
			t.Errorf("Column() = %q, want %q", got, want)
		}
	})

	t.Run("replaces same line", func(t *testing.T) {
		b, _, _ := newTestBuilder(t)
		b.AddChordNote(0, 3, "2")
		b.AddChordNote(0, 3, "2")
		e := b.AddChordNote(0, 3, "4")
		if len(e.Children) != 1 || e.Children[0].Text != "4" {
			t.Errorf("children = %d, text %q", len(e.Children), e.Children[0].Text)
		}
	})
}

func TestRedrawClearsOverlay(t *testing.T) {
	b, _, overlay := newTestBuilder(t)
	addRun(b, 3)
	before := overlay.clears

	b.Redraw()
	if overlay.clears != before+1 {
		t.Errorf("clears = %d, want %d", overlay.clears, before+1)
	}
	if got := overlay.texts(); len(got) != 3 {
		t.Errorf("texts after redraw = %v, want 3", got)
	}
}

func TestSelectSingleHighlight(t *testing.T) {
	b, _, overlay := newTestBuilder(t)
	addRun(b, 4)

	if !b.Select(1) {
		t.Fatal("Select(1) = false")
	}
	if got := len(overlay.highlights()); got != 1 {
		t.Fatalf("highlights after first select = %d, want 1", got)
	}

	b.Select(3)
	hl := overlay.highlights()
	if len(hl) != 1 {
		t.Fatalf("highlights after second select = %d, want 1", len(hl))
	}
	if want, _ := b.Metrics().Place(3, 1); hl[0].x != want {
		t.Errorf("highlight x = %v, want %v", hl[0].x, want)
	}
	if sel, _ := b.Selected(); sel.Position != 3 {
		t.Errorf("Selected() at %d, want 3", sel.Position)
	}

	if b.Select(9) {
		t.Error("Select(9) = true for a missing position")
	}
	if sel, _ := b.Selected(); sel.Position != 3 {
		t.Error("failed Select changed the selection")
	}
}

func TestDeleteSecondOfFive(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	addRun(b, 5)

	b.Select(1)
	b.DeleteSelected()

	els := b.Elements()
	if len(els) != 4 {
		t.Fatalf("elements = %d, want 4", len(els))
	}
	wantText := []string{"0", "2", "3", "4"}
	for i, e := range els {
		if e.Position != i {
			t.Errorf("element %d Position = %d, want %d", i, e.Position, i)
		}
		if e.Text != wantText[i] {
			t.Errorf("element %d Text = %q, want %q", i, e.Text, wantText[i])
		}
		if x, _ := b.Metrics().Place(i, 1); e.X != x {
			t.Errorf("element %d X = %v, want %v", i, e.X, x)
		}
	}
	if _, ok := b.Selected(); ok {
		t.Error("selection survived delete")
	}
}

func TestDeleteWithoutSelection(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	addRun(b, 3)
	b.DeleteSelected()
	b.InsertAtSelected()
	if got := positions(b); len(got) != 3 || got[2] != 2 {
		t.Errorf("positions = %v, want unchanged", got)
	}
}

func TestDeleteThenReinsert(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	addRun(b, 6)

	type snap struct {
		p    int
		x, y float64
	}
	before := map[string]snap{}
	for _, e := range b.Elements() {
		before[e.Text] = snap{e.Position, e.X, e.Y}
	}

	b.Select(2)
	b.DeleteSelected()
	b.Select(2)
	b.InsertAtSelected()

	for _, e := range b.Elements() {
		if got, want := (snap{e.Position, e.X, e.Y}), before[e.Text]; got != want {
			t.Errorf("element %q = %+v, want %+v", e.Text, got, want)
		}
	}
	if got := b.FirstEmptyIndex(); got != 2 {
		t.Errorf("FirstEmptyIndex() = %d, want 2", got)
	}
	if got := b.NextPosition(); got != 2 {
		t.Errorf("NextPosition() = %d, want 2", got)
	}
	col, ok := b.Grid()[2]
	if !ok || !col.Empty() {
		t.Errorf("Grid()[2] = %q, %v, want empty column", col, ok)
	}

	b.AddNote(2, 1, "2")
	if got := b.FirstEmptyIndex(); got != -1 {
		t.Errorf("tombstone not reused: FirstEmptyIndex() = %d", got)
	}
	if got, want := b.Elements()[2].Text, "2"; got != want {
		t.Errorf("slot 2 holds %q, want %q", got, want)
	}
}

func TestInsertShiftsAcrossRows(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	for p := 55; p < 59; p++ {
		b.AddNote(p, 2, "1")
	}

	b.Select(57)
	b.InsertAtSelected()

	got := positions(b)
	want := []int{55, 56, 58, 59}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("positions = %v, want %v", got, want)
		}
	}
	last := b.Elements()[3]
	if x, y := b.Metrics().Place(59, 2); last.X != x || last.Y != y {
		t.Errorf("wrapped element at (%v, %v), want (%v, %v)", last.X, last.Y, x, y)
	}
	if b.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", b.Rows())
	}
}

func TestDeleteShiftsReservedPositions(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	addRun(b, 4)
	b.Select(2)
	b.InsertAtSelected() // reserves 2, moves "2" and "3" to 3 and 4

	b.Select(0)
	b.DeleteSelected()

	if got := b.NextPosition(); got != 1 {
		t.Errorf("NextPosition() = %d, want 1", got)
	}
	g := b.Grid()
	want := Grid{0: {0: "1"}, 1: {}, 2: {0: "2"}, 3: {0: "3"}}
	if !g.Equal(want) {
		t.Errorf("Grid() = %v, want %v", g, want)
	}
}

func TestMostRecent(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	if _, ok := b.MostRecent(); ok {
		t.Fatal("MostRecent() on empty builder")
	}
	addRun(b, 2)
	e, ok := b.MostRecent()
	if !ok || e.Text != "1" {
		t.Fatalf("MostRecent() = %v, %v", e, ok)
	}
	b.Select(1)
	b.DeleteSelected()
	e, ok = b.MostRecent()
	if !ok || e.Position != 0 {
		t.Errorf("MostRecent() after deleting it = %v, %v; want position 0", e, ok)
	}
	b.Select(0)
	b.DeleteSelected()
	if _, ok := b.MostRecent(); ok {
		t.Error("MostRecent() on a builder with no elements left")
	}
}

func TestBuilderGrid(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	b.AddNote(0, 1, "1")
	b.AddChordNote(1, 2, "3")
	b.AddChordNote(1, 4, "5")
	b.Reserve(2)

	want := Grid{
		0: {0: "1"},
		1: {1: "3", 3: "5"},
		2: {},
	}
	if got := b.Grid(); !got.Equal(want) {
		t.Errorf("Grid() = %v, want %v", got, want)
	}
}

func TestReset(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	addRun(b, 3)
	b.Select(0)
	b.Reset()

	if b.Len() != 0 {
		t.Errorf("Len() = %d after Reset", b.Len())
	}
	if _, ok := b.Selected(); ok {
		t.Error("selection survived Reset")
	}
}
