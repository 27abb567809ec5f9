package sink

import (
	"strings"

	"github.com/matzehuels/tabsmith/pkg/tab"
)

// StringNames labels the string-lines from 1 (high e) to 6 (low E).
var StringNames = [tab.NumStrings]string{"e", "B", "G", "D", "A", "E"}

// TextOption configures RenderText.
type TextOption func(*textRenderer)

type textRenderer struct {
	maxPerRow int
	cursor    int
	hasCursor bool
}

// WithTextMaxPerRow wraps rows at the same threshold as the graphical
// layout. Zero disables wrapping.
func WithTextMaxPerRow(n int) TextOption { return func(r *textRenderer) { r.maxPerRow = n } }

// WithTextCursor marks position p with a caret line under each row.
func WithTextCursor(p int) TextOption {
	return func(r *textRenderer) { r.cursor, r.hasCursor = p, true }
}

// RenderText renders the grid as ASCII tab, six lines per row:
//
//	e|---0--|
//	B|---1--|
//	G|-3-0--|
//	D|---2--|
//	A|---3--|
//	E|------|
//
// Every position from the first one (1 unless the grid uses 0) to the last
// one gets a column, so gaps and empty columns show as dashes.
func RenderText(g tab.Grid, opts ...TextOption) string {
	r := textRenderer{maxPerRow: tab.DefaultMaxPerRow}
	for _, opt := range opts {
		opt(&r)
	}

	first, last := 1, 0
	if ps := g.Positions(); len(ps) > 0 {
		first, last = min(first, ps[0]), ps[len(ps)-1]
	}
	if r.hasCursor {
		first, last = min(first, r.cursor), max(last, r.cursor)
	}

	m := tab.DefaultMetrics()
	if r.maxPerRow > 0 {
		m.MaxPerRow = r.maxPerRow
	} else {
		m.MaxPerRow = last + 1
	}

	var rows [][]int
	for p := first; p <= last; p++ {
		row := m.Row(p)
		for len(rows) <= row {
			rows = append(rows, nil)
		}
		rows[row] = append(rows[row], p)
	}
	if len(rows) == 0 {
		rows = [][]int{nil}
	}

	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		r.writeRow(&sb, g, row)
	}
	return sb.String()
}

func (r textRenderer) writeRow(sb *strings.Builder, g tab.Grid, row []int) {
	widths := make([]int, len(row))
	for i, p := range row {
		widths[i] = 1
		for _, s := range g[p] {
			widths[i] = max(widths[i], len(s))
		}
	}
	for line := range tab.NumStrings {
		sb.WriteString(StringNames[line])
		sb.WriteString("|-")
		for i, p := range row {
			s := g[p][line]
			sb.WriteString(s)
			sb.WriteString(strings.Repeat("-", widths[i]-len(s)+1))
		}
		sb.WriteString("-|\n")
	}
	if !r.hasCursor {
		return
	}
	sb.WriteString("   ")
	for i, p := range row {
		mark := " "
		if p == r.cursor {
			mark = "^"
		}
		sb.WriteString(mark)
		sb.WriteString(strings.Repeat(" ", widths[i]))
	}
	sb.WriteString("\n")
}
