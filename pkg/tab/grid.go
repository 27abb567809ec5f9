package tab

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Technique markers that decorate a note rather than name a fret.
const (
	Slide    = "s"
	Bend     = "b"
	HammerOn = "h"
	PullOff  = "p"
)

// IsTechnique reports whether symbol is one of the technique markers.
func IsTechnique(symbol string) bool {
	switch symbol {
	case Slide, Bend, HammerOn, PullOff:
		return true
	}
	return false
}

// Column holds the symbols sounding at one position, indexed by
// string-line minus one. An empty string means no note on that line.
type Column [NumStrings]string

// Empty reports whether the column holds no symbols.
func (c Column) Empty() bool { return c.Count() == 0 }

// Count returns the number of occupied string-lines.
func (c Column) Count() int {
	n := 0
	for _, s := range c {
		if s != "" {
			n++
		}
	}
	return n
}

// Lines returns the occupied string-lines in ascending order.
func (c Column) Lines() []int {
	var lines []int
	for i, s := range c {
		if s != "" {
			lines = append(lines, i+1)
		}
	}
	return lines
}

// Overlay returns c with every non-empty symbol of o written on top.
func (c Column) Overlay(o Column) Column {
	for i, s := range o {
		if s != "" {
			c[i] = s
		}
	}
	return c
}

// MarshalJSON encodes the column as a six-element array of string or null.
func (c Column) MarshalJSON() ([]byte, error) {
	out := make([]*string, NumStrings)
	for i := range c {
		if c[i] != "" {
			s := c[i]
			out[i] = &s
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a six-element array of string or null.
func (c *Column) UnmarshalJSON(data []byte) error {
	var in []*string
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if len(in) != NumStrings {
		return fmt.Errorf("column has %d string-lines, want %d", len(in), NumStrings)
	}
	var out Column
	for i, s := range in {
		if s != nil {
			out[i] = *s
		}
	}
	*c = out
	return nil
}

// Grid is the notation grid: position index to the symbols at that position.
// A position missing from the grid has no notes.
type Grid map[int]Column

// Positions returns the grid's positions in time order.
func (g Grid) Positions() []int {
	return slices.Sorted(maps.Keys(g))
}

// Clone returns an independent copy of the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	return maps.Clone(g)
}

// Compact returns a copy of g without positions whose column is empty.
func (g Grid) Compact() Grid {
	out := make(Grid, len(g))
	for p, c := range g {
		if !c.Empty() {
			out[p] = c
		}
	}
	return out
}

// Equal reports whether g and o hold exactly the same columns.
func (g Grid) Equal(o Grid) bool {
	return maps.Equal(g, o)
}

// Set writes symbol on the given string-line at position p.
func (g Grid) Set(p, line int, symbol string) {
	c := g[p]
	c[line-1] = symbol
	g[p] = c
}
