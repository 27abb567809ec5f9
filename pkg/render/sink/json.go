package sink

import (
	"encoding/json"

	"github.com/matzehuels/tabsmith/pkg/tab"
)

type jsonOutput struct {
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	Rows      int           `json:"rows"`
	MaxPerRow int           `json:"max_per_row"`
	Metrics   tab.Metrics   `json:"metrics"`
	Elements  []jsonElement `json:"elements"`
}

type jsonElement struct {
	Position int           `json:"position"`
	Kind     string        `json:"kind"`
	Line     int           `json:"line"`
	Lines    []int         `json:"lines"`
	Text     string        `json:"text,omitempty"`
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Children []jsonElement `json:"children,omitempty"`
}

// RenderJSON exports the computed element geometry of the grid for
// external tools. Elements appear in position order.
func RenderJSON(g tab.Grid, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	s, err := r.layout(g)
	if err != nil {
		return nil, err
	}
	b := s.builder
	out := jsonOutput{
		Width:     r.metrics.Width,
		Height:    b.Height(),
		Rows:      b.Rows(),
		MaxPerRow: r.metrics.MaxPerRow,
		Metrics:   r.metrics,
		Elements:  []jsonElement{},
	}
	for _, p := range g.Positions() {
		if e, ok := b.Find(p); ok {
			out.Elements = append(out.Elements, toJSONElement(e))
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONElement(e *tab.Element) jsonElement {
	je := jsonElement{
		Position: e.Position,
		Kind:     e.Kind.String(),
		Line:     e.Line,
		Lines:    e.Lines(),
		Text:     e.Text,
		X:        e.X,
		Y:        e.Y,
		Width:    e.W,
		Height:   e.H,
	}
	for _, c := range e.Children {
		je.Children = append(je.Children, toJSONElement(c))
	}
	return je
}
