package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/tabsmith/pkg/errors"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

func sampleGrid() tab.Grid {
	return tab.Grid{
		1: {"", "", "3"},
		2: {"0", "1", "0", "2", "3", ""},
		3: {},
	}
}

func TestRenderSVG(t *testing.T) {
	out, err := RenderSVG(sampleGrid())
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	s := string(out)
	if !strings.HasPrefix(s, "<svg ") {
		t.Fatalf("not an svg document:\n%s", s)
	}
	if got := strings.Count(s, "<text "); got != 6 {
		t.Errorf("text elements = %d, want 6", got)
	}
}

func TestRenderSVGRejectsInvalidGrid(t *testing.T) {
	_, err := RenderSVG(tab.Grid{1: {"zz"}})
	if !errors.Is(err, errors.ErrCodeInvalidSymbol) {
		t.Errorf("RenderSVG() error = %v, want INVALID_SYMBOL", err)
	}
}

func TestRenderSVGWrapsRows(t *testing.T) {
	g := tab.Grid{1: {"1"}, 60: {"2"}}
	b, err := Layout(g)
	if err != nil {
		t.Fatal(err)
	}
	if b.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", b.Rows())
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sampleGrid())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != tab.ReferenceWidth {
		t.Errorf("Width = %v, want %v", out.Width, tab.ReferenceWidth)
	}
	if len(out.Elements) != 2 {
		t.Fatalf("Elements = %d, want 2", len(out.Elements))
	}

	note := out.Elements[0]
	if note.Kind != "note" || note.Line != 3 || note.X != 68 || note.Y != 40 {
		t.Errorf("note = %+v", note)
	}
	chord := out.Elements[1]
	if chord.Kind != "chord" || len(chord.Children) != 5 {
		t.Errorf("chord = %+v", chord)
	}
	if chord.Line != 3 {
		t.Errorf("chord median line = %d, want 3", chord.Line)
	}
}

func TestRenderText(t *testing.T) {
	tests := []struct {
		name string
		grid tab.Grid
		opts []TextOption
		want string
	}{
		{
			name: "empty",
			grid: tab.Grid{},
			want: "e|--|\nB|--|\nG|--|\nD|--|\nA|--|\nE|--|\n",
		},
		{
			name: "gap and wide fret",
			grid: tab.Grid{1: {"12"}, 3: {"", "", "", "", "", "0"}},
			want: "e|-12------|\n" +
				"B|---------|\n" +
				"G|---------|\n" +
				"D|---------|\n" +
				"A|---------|\n" +
				"E|------0--|\n",
		},
		{
			name: "position zero",
			grid: tab.Grid{0: {"1"}, 1: {"", "2"}, 2: {"", "", "3"}},
			want: "e|-1------|\n" +
				"B|---2----|\n" +
				"G|-----3--|\n" +
				"D|--------|\n" +
				"A|--------|\n" +
				"E|--------|\n",
		},
		{
			name: "wrap",
			grid: tab.Grid{1: {"1"}, 2: {"2"}},
			opts: []TextOption{WithTextMaxPerRow(2)},
			want: "e|-1--|\nB|----|\nG|----|\nD|----|\nA|----|\nE|----|\n" +
				"\n" +
				"e|-2--|\nB|----|\nG|----|\nD|----|\nA|----|\nE|----|\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderText(tt.grid, tt.opts...); got != tt.want {
				t.Errorf("RenderText() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestRenderTextCursor(t *testing.T) {
	got := RenderText(tab.Grid{1: {"5"}}, WithTextCursor(2))
	lines := strings.Split(got, "\n")
	if len(lines) < 7 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[6] != "     ^ " {
		t.Errorf("cursor line = %q", lines[6])
	}
}

func TestRenderTextCursorAtZero(t *testing.T) {
	got := RenderText(tab.Grid{0: {"5"}}, WithTextCursor(0))
	lines := strings.Split(got, "\n")
	if len(lines) < 7 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0] != "e|-5--|" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[6] != "   ^ " {
		t.Errorf("cursor line = %q", lines[6])
	}
}
