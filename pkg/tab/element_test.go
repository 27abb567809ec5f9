package tab

import "testing"

func TestMedian(t *testing.T) {
	tests := []struct {
		name  string
		lines []int
		want  int
	}{
		{"odd count", []int{2, 4, 5}, 4},
		{"even count floors the middle mean", []int{1, 2, 5, 6}, 3},
		{"unsorted", []int{5, 2, 4}, 4},
		{"single", []int{6}, 6},
		{"pair", []int{1, 2}, 1},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.lines); got != tt.want {
				t.Errorf("Median(%v) = %d, want %d", tt.lines, got, tt.want)
			}
		})
	}
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	lines := []int{5, 1, 3}
	Median(lines)
	if lines[0] != 5 || lines[1] != 1 || lines[2] != 3 {
		t.Errorf("Median reordered its input: %v", lines)
	}
}

func testSheet() (*Sheet, *recorder) {
	overlay := &recorder{}
	return &Sheet{Metrics: DefaultMetrics(), Theme: DefaultTheme(), Base: NopSurface{}, Overlay: overlay}, overlay
}

func TestNoteDraw(t *testing.T) {
	s, overlay := testSheet()
	e := newNote(s, 1, 2, "7")
	e.Draw()

	if len(overlay.ops) != 3 {
		t.Fatalf("ops = %+v, want clear, rect, text", overlay.ops)
	}
	clr, rect, text := overlay.ops[0], overlay.ops[1], overlay.ops[2]
	if clr.kind != "clear" || clr.x != 68 || clr.y != 28 || clr.w != 12 || clr.h != 12 {
		t.Errorf("clear = %+v, want footprint at (68, 28) size 12", clr)
	}
	if rect.kind != "rect" || rect.color != "#fff" || rect.alpha != 1 {
		t.Errorf("rect = %+v, want opaque background glyph", rect)
	}
	if text.text != "7" || text.x != 74 || text.y != 36 || text.h != 10 {
		t.Errorf("text = %+v, want \"7\" at (74, 36) size 10", text)
	}
}

func TestNoteTranslate(t *testing.T) {
	s, _ := testSheet()
	e := newNote(s, 58, 3, "5")
	x0, y0 := e.X, e.Y

	e.RightTranslate()
	if e.Position != 59 {
		t.Fatalf("Position = %d, want 59", e.Position)
	}
	if wantX, wantY := s.Metrics.Place(59, 3); e.X != wantX || e.Y != wantY {
		t.Errorf("after RightTranslate at (%v, %v), want (%v, %v)", e.X, e.Y, wantX, wantY)
	}

	e.LeftTranslate()
	if e.Position != 58 || e.X != x0 || e.Y != y0 {
		t.Errorf("LeftTranslate did not undo RightTranslate: %d (%v, %v)", e.Position, e.X, e.Y)
	}
}

func TestChordTranslatePropagates(t *testing.T) {
	s, _ := testSheet()
	c := newChord(s, 4, newNote(s, 4, 1, "0"), newNote(s, 4, 6, "3"))

	c.LeftTranslate()
	if c.Position != 3 {
		t.Errorf("chord Position = %d, want 3", c.Position)
	}
	for _, child := range c.Children {
		if child.Position != 3 {
			t.Errorf("child on line %d Position = %d, want 3", child.Line, child.Position)
		}
		if wantX, wantY := s.Metrics.Place(3, child.Line); child.X != wantX || child.Y != wantY {
			t.Errorf("child on line %d at (%v, %v), want (%v, %v)", child.Line, child.X, child.Y, wantX, wantY)
		}
	}
}

func TestElementColumn(t *testing.T) {
	s, _ := testSheet()

	note := newNote(s, 0, 4, "h")
	if got, want := note.Column(), (Column{3: "h"}); got != want {
		t.Errorf("note Column() = %q, want %q", got, want)
	}

	chord := newChord(s, 0, newNote(s, 0, 5, "2"), newNote(s, 0, 2, "3"))
	if got, want := chord.Column(), (Column{1: "3", 4: "2"}); got != want {
		t.Errorf("chord Column() = %q, want %q", got, want)
	}
}

func TestChordDrawUpdatesLine(t *testing.T) {
	s, overlay := testSheet()
	c := newChord(s, 0, newNote(s, 0, 2, "1"))
	c.Children = append(c.Children, newNote(s, 0, 4, "1"), newNote(s, 0, 5, "1"))

	c.Draw()
	if c.Line != 4 {
		t.Errorf("Line = %d, want 4", c.Line)
	}
	if got := overlay.count("text"); got != 3 {
		t.Errorf("drew %d texts, want 3", got)
	}
}

func TestSelectionRect(t *testing.T) {
	s, _ := testSheet()

	note := newNote(s, 1, 2, "7")
	x, y, w, h := note.SelectionRect()
	if x != 68 || y != 16 || w != 12 || h != 75 {
		t.Errorf("note SelectionRect() = (%v, %v, %v, %v), want (68, 16, 12, 75)", x, y, w, h)
	}

	chord := newChord(s, 0, newNote(s, 0, 3, "2"), newNote(s, 0, 5, "2"))
	x, y, w, h = chord.SelectionRect()
	if x != 48 || y != 16 || w != 12 || h != 72 {
		t.Errorf("chord SelectionRect() = (%v, %v, %v, %v), want (48, 16, 12, 72)", x, y, w, h)
	}
}

func TestDrawSelection(t *testing.T) {
	s, overlay := testSheet()
	e := newNote(s, 0, 1, "3")

	redraws := 0
	e.DrawSelection(func() { redraws++ })

	if redraws != 1 {
		t.Errorf("redraw called %d times, want 1", redraws)
	}
	hl := overlay.highlights()
	if len(hl) != 1 {
		t.Fatalf("highlights = %d, want 1", len(hl))
	}
	if hl[0].color != "blue" || hl[0].alpha != 0.2 {
		t.Errorf("highlight = %+v, want blue at alpha 0.2", hl[0])
	}
	if overlay.ops[0].kind != "clear" {
		t.Errorf("first op = %q, want clear", overlay.ops[0].kind)
	}
}

func TestContains(t *testing.T) {
	s, _ := testSheet()
	e := newNote(s, 0, 1, "3") // box (48, 16) to (60, 28)

	tests := []struct {
		x, y float64
		want bool
	}{
		{54, 22, true},
		{48, 16, true},
		{60, 28, true},
		{47.9, 22, false},
		{54, 28.1, false},
	}
	for _, tt := range tests {
		if got := e.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPromote(t *testing.T) {
	s, _ := testSheet()
	e := newNote(s, 2, 6, "0")
	e.promote()

	if e.Kind != KindChord || len(e.Children) != 1 {
		t.Fatalf("promote gave %v with %d children", e.Kind, len(e.Children))
	}
	if e.H != 72 {
		t.Errorf("chord height = %v, want 72", e.H)
	}
	e.setChild(6, "2")
	e.setChild(1, "3")
	if len(e.Children) != 2 {
		t.Errorf("children = %d, want 2 after replacing line 6", len(e.Children))
	}
	if got, want := e.Column(), (Column{0: "3", 5: "2"}); got != want {
		t.Errorf("Column() = %q, want %q", got, want)
	}
}
