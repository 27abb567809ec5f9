package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tabsmith/pkg/errors"
	"github.com/matzehuels/tabsmith/pkg/observability"
	"github.com/matzehuels/tabsmith/pkg/render/sink"
	"github.com/matzehuels/tabsmith/pkg/session"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

var (
	editorLineStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	editorActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorCaretStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	editorHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

const editorHelp = "↑/↓ string  ←/→ select  ⏎ commit  tab chord  ^d delete  ^o insert  ^r row  ^s save  esc deselect  ^c quit"

// =============================================================================
// EditorModel - Interactive tab editor
// =============================================================================

// EditorModel is the bubbletea model of the terminal tab editor. Symbols
// typed into the input are committed on the active string-line at the
// cursor; arrow keys move the active string-line and the selection.
type EditorModel struct {
	ctx       context.Context
	sess      *session.Session
	reg       *session.Registry
	input     textinput.Model
	line      int
	maxPerRow int
	status    string
	err       error
}

// NewEditorModel returns an editor on sess. Saving goes through reg.
func NewEditorModel(ctx context.Context, sess *session.Session, reg *session.Registry, maxPerRow int) EditorModel {
	in := textinput.New()
	in.Prompt = "symbol › "
	in.Placeholder = "fret, x, s, b, h or p"
	in.CharLimit = 2
	in.Focus()
	return EditorModel{
		ctx:       ctx,
		sess:      sess,
		reg:       reg,
		input:     in,
		line:      1,
		maxPerRow: maxPerRow,
	}
}

func (m EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	m.err = nil
	switch key.String() {
	case "ctrl+c", "ctrl+q":
		return m, tea.Quit
	case "up":
		m.line = max(1, m.line-1)
		return m, nil
	case "down":
		m.line = min(tab.NumStrings, m.line+1)
		return m, nil
	case "left":
		m.moveSelection(-1)
		return m, nil
	case "right":
		m.moveSelection(1)
		return m, nil
	case "esc":
		m.sess.View(func(mg *tab.Manager) { mg.Builder().ClearSelection() })
		return m, nil
	case "tab":
		m.apply("mode", func(mg *tab.Manager) (int, error) {
			p := mg.Cursor()
			mg.ToggleChordMode()
			return p, nil
		})
		return m, nil
	case "enter":
		m.commit()
		return m, nil
	case "ctrl+d":
		m.apply("delete", func(mg *tab.Manager) (int, error) {
			p, _ := selectedPosition(mg)
			mg.Delete()
			return p, nil
		})
		return m, nil
	case "ctrl+o":
		m.apply("insert", func(mg *tab.Manager) (int, error) {
			p, _ := selectedPosition(mg)
			mg.Insert()
			return p, nil
		})
		return m, nil
	case "ctrl+r":
		m.sess.View(func(mg *tab.Manager) { mg.AddTabRow() })
		return m, nil
	case "ctrl+s":
		m.save()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commit writes the typed symbol. Technique markers follow the most recent
// note; anything else lands on the active string-line.
func (m *EditorModel) commit() {
	symbol := strings.TrimSpace(m.input.Value())
	if symbol == "" {
		return
	}
	m.input.Reset()
	if tab.IsTechnique(symbol) {
		m.apply("symbol", func(mg *tab.Manager) (int, error) {
			p := mg.Cursor()
			mg.DrawSymbol(symbol)
			return p, nil
		})
		return
	}
	m.apply("note", func(mg *tab.Manager) (int, error) {
		if err := errors.ValidateSymbol(symbol); err != nil {
			return 0, err
		}
		if err := mg.UpdateDrawable(m.line, symbol); err != nil {
			return 0, err
		}
		p := mg.Cursor()
		mg.Draw()
		return p, nil
	})
}

func (m *EditorModel) apply(op string, fn func(mg *tab.Manager) (int, error)) {
	var pos int
	err := m.sess.Edit(func(mg *tab.Manager) error {
		var err error
		pos, err = fn(mg)
		return err
	})
	if err != nil {
		m.err = err
		return
	}
	m.status = ""
	observability.Edit().OnEdit(m.ctx, m.sess.ID(), op, pos)
}

// moveSelection selects the element d steps from the current selection,
// or the first or last element when nothing is selected.
func (m *EditorModel) moveSelection(d int) {
	m.sess.View(func(mg *tab.Manager) {
		b := mg.Builder()
		var ps []int
		for _, e := range b.Elements() {
			ps = append(ps, e.Position)
		}
		if len(ps) == 0 {
			return
		}
		slices.Sort(ps)
		i := len(ps) - 1
		if d > 0 {
			i = 0
		}
		if sel, ok := b.Selected(); ok {
			if j := slices.Index(ps, sel.Position); j >= 0 {
				i = min(max(j+d, 0), len(ps)-1)
			}
		}
		mg.Select(ps[i])
	})
}

func (m *EditorModel) save() {
	if m.reg == nil {
		return
	}
	doc, err := m.reg.Save(m.ctx, m.sess.ID())
	if err != nil {
		m.err = err
		return
	}
	m.status = "saved " + doc.UpdatedAt.Local().Format("15:04:05")
}

func selectedPosition(mg *tab.Manager) (int, bool) {
	if e, ok := mg.Builder().Selected(); ok {
		return e.Position, true
	}
	return 0, false
}

func (m EditorModel) View() string {
	var (
		grid     tab.Grid
		mode     tab.Mode
		cursor   int
		selected int
		hasSel   bool
	)
	m.sess.View(func(mg *tab.Manager) {
		grid = mg.Grid()
		mode = mg.Mode()
		cursor = mg.Cursor()
		selected, hasSel = selectedPosition(mg)
	})
	doc := m.sess.Document()

	var b strings.Builder
	title := doc.Name
	if m.sess.Dirty() {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s mode", mode)))
	b.WriteString("\n\n")

	caret := cursor
	if hasSel {
		caret = selected
	}
	text := sink.RenderText(grid, sink.WithTextMaxPerRow(m.maxPerRow), sink.WithTextCursor(caret))
	active := sink.StringNames[m.line-1] + "|"
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(l, active):
			b.WriteString(editorActiveStyle.Render(l))
		case strings.Contains(l, "^"):
			b.WriteString(editorCaretStyle.Render(l))
		default:
			b.WriteString(editorLineStyle.Render(l))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	where := fmt.Sprintf("string %d (%s) · cursor %d", m.line, sink.StringNames[m.line-1], cursor)
	if hasSel {
		where += fmt.Sprintf(" · selected %d", selected)
	}
	b.WriteString(StyleDim.Render(where))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(StyleError.Render(errors.UserMessage(m.err)))
	case m.status != "":
		b.WriteString(StyleHighlight.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(editorHelpStyle.Render(editorHelp))
	return b.String()
}
