package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabsmith/pkg/session"
	"github.com/matzehuels/tabsmith/pkg/store"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func press(m EditorModel, msgs ...tea.Msg) EditorModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(EditorModel)
	}
	return m
}

func newEditor(t *testing.T) (EditorModel, *session.Registry) {
	t.Helper()
	ctx := context.Background()
	reg := session.NewRegistry(store.NewMemoryStore(), session.Options{Logger: log.New(io.Discard)})
	sess, err := reg.Create(ctx, store.NewDocument("riff", nil))
	if err != nil {
		t.Fatal(err)
	}
	return NewEditorModel(ctx, sess, reg, tab.DefaultMaxPerRow), reg
}

func grid(m EditorModel) tab.Grid {
	var g tab.Grid
	m.sess.View(func(mg *tab.Manager) { g = mg.Grid() })
	return g
}

func TestEditorCommitNote(t *testing.T) {
	m, _ := newEditor(t)
	m = press(m, key(tea.KeyDown), key(tea.KeyDown), runes("7"), key(tea.KeyEnter))

	if m.line != 3 {
		t.Fatalf("line = %d, want 3", m.line)
	}
	g := grid(m)
	if got := g[1][2]; got != "7" {
		t.Errorf("grid[1] G = %q, want 7", got)
	}
	if m.input.Value() != "" {
		t.Errorf("input not reset: %q", m.input.Value())
	}

	m = press(m, runes("h"), key(tea.KeyEnter))
	if got := grid(m)[2][2]; got != "h" {
		t.Errorf("technique landed on %v, want G string at position 2", grid(m)[2])
	}
}

func TestEditorChord(t *testing.T) {
	m, _ := newEditor(t)
	m = press(m,
		key(tea.KeyTab),
		key(tea.KeyDown), key(tea.KeyDown), runes("0"), key(tea.KeyEnter),
		key(tea.KeyDown), runes("2"), key(tea.KeyEnter),
	)
	if !strings.Contains(m.View(), "chord mode") {
		t.Error("view does not show chord mode")
	}

	m = press(m, key(tea.KeyTab))
	g := grid(m)
	if g[1][2] != "0" || g[1][3] != "2" {
		t.Errorf("chord column = %v", g[1])
	}
	var cursor int
	m.sess.View(func(mg *tab.Manager) { cursor = mg.Cursor() })
	if cursor != 2 {
		t.Errorf("cursor = %d, want 2", cursor)
	}
}

func TestEditorSelectAndDelete(t *testing.T) {
	m, _ := newEditor(t)
	m = press(m, runes("1"), key(tea.KeyEnter), runes("2"), key(tea.KeyEnter), runes("3"), key(tea.KeyEnter))

	m = press(m, key(tea.KeyLeft), key(tea.KeyLeft))
	if !strings.Contains(m.View(), "selected 2") {
		t.Fatalf("view does not show selection:\n%s", m.View())
	}

	m = press(m, key(tea.KeyCtrlD))
	g := grid(m)
	if g[1][0] != "1" || g[2][0] != "3" {
		t.Errorf("after delete grid = %v", g)
	}
	if _, ok := g[3]; ok {
		t.Errorf("position 3 still present: %v", g)
	}
}

func TestEditorInvalidSymbol(t *testing.T) {
	m, _ := newEditor(t)
	m = press(m, runes("q"), key(tea.KeyEnter))
	if m.err == nil {
		t.Fatal("invalid symbol accepted")
	}
	if len(grid(m)) != 0 {
		t.Errorf("grid changed: %v", grid(m))
	}
	if m.sess.Dirty() {
		t.Error("failed edit marked session dirty")
	}
}

func TestEditorSave(t *testing.T) {
	m, reg := newEditor(t)
	m = press(m, runes("5"), key(tea.KeyEnter))
	if !strings.Contains(m.View(), "riff *") {
		t.Error("dirty marker missing")
	}

	m = press(m, key(tea.KeyCtrlS))
	if m.err != nil {
		t.Fatalf("save: %v", m.err)
	}
	if !strings.HasPrefix(m.status, "saved") {
		t.Errorf("status = %q", m.status)
	}
	if m.sess.Dirty() {
		t.Error("session dirty after save")
	}
	if reg.Len() != 1 {
		t.Errorf("registry holds %d sessions", reg.Len())
	}
}

func TestEditorQuit(t *testing.T) {
	m, _ := newEditor(t)
	_, cmd := m.Update(key(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
}

func TestEditorSelectionAtZero(t *testing.T) {
	ctx := context.Background()
	reg := session.NewRegistry(store.NewMemoryStore(), session.Options{Logger: log.New(io.Discard)})
	sess, err := reg.Create(ctx, store.NewDocument("riff", tab.Grid{0: {"1"}, 1: {"2"}}))
	if err != nil {
		t.Fatal(err)
	}
	m := NewEditorModel(ctx, sess, reg, tab.DefaultMaxPerRow)
	m = press(m, key(tea.KeyLeft), key(tea.KeyLeft))

	view := m.View()
	if !strings.Contains(view, "selected 0") {
		t.Errorf("view does not show selection at 0:\n%s", view)
	}
	if !strings.Contains(view, "e|-1-2--|") {
		t.Errorf("position 0 missing from view:\n%s", view)
	}
}
