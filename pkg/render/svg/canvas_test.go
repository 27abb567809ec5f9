package svg

import (
	"strings"
	"testing"

	"github.com/matzehuels/tabsmith/pkg/tab"
)

func TestCanvasClearRect(t *testing.T) {
	tests := []struct {
		name string
		draw func(c *Canvas)
		want int
	}{
		{
			name: "glyph repaint drops old text",
			draw: func(c *Canvas) {
				c.FillRect(10, 10, 12, 12, "#fff", 1, true)
				c.DrawText("5", 16, 18, 10, "black", tab.AlignCenter)
				c.FillRect(10, 10, 12, 12, "#fff", 1, true)
			},
			want: 1,
		},
		{
			name: "partial overlap is kept",
			draw: func(c *Canvas) {
				c.FillRect(0, 0, 100, 1, "#000", 1, false)
				c.ClearRect(0, 0, 50, 50)
			},
			want: 1,
		},
		{
			name: "circle inside region",
			draw: func(c *Canvas) {
				c.DrawCircle(20, 20, 5, "red")
				c.DrawCircle(80, 20, 5, "red")
				c.ClearRect(10, 10, 20, 20)
			},
			want: 1,
		},
		{
			name: "clear",
			draw: func(c *Canvas) {
				c.DrawCircle(20, 20, 5, "red")
				c.Clear()
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas()
			tt.draw(c)
			if got := c.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompose(t *testing.T) {
	base, overlay := NewCanvas(), NewCanvas()
	b := tab.NewBuilder(base, overlay, tab.Options{})
	b.AddNote(1, 3, "<5>")
	b.Select(1)

	out := string(Compose(tab.ReferenceWidth, b.Height(), base, overlay))

	if !strings.HasPrefix(out, "<svg ") || !strings.HasSuffix(out, "</svg>\n") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if got := strings.Count(out, "<g id="); got != 2 {
		t.Errorf("layers = %d, want 2", got)
	}
	if !strings.Contains(out, "&lt;5&gt;") {
		t.Error("text not escaped")
	}
	if !strings.Contains(out, `fill-opacity="0.2"`) {
		t.Error("selection highlight missing")
	}
	if got := strings.Count(out, `fill="#000"`); got != tab.NumStrings {
		t.Errorf("string-lines = %d, want %d", got, tab.NumStrings)
	}
}
