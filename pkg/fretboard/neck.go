// Package fretboard draws a guitar neck and the notes of a scale on it.
//
// The neck has 24 frets and six strings, with the high E at the top. A
// click on the neck maps to a string name and fret with [Geometry.DetectClick];
// [StringNumber] turns the string name into the tab string-line the note
// belongs on.
//
//	n := fretboard.New(canvas, fretboard.Options{})
//	n.Draw()
//	err := n.DrawScale("A", fretboard.Pentatonic)
//	name, fret, err := n.Click(x, y) // flashes the clicked note
package fretboard

import (
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabsmith/pkg/errors"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

// Colors used on the neck.
const (
	FretColor   tab.Color = "#000"
	StringColor tab.Color = "#ddd"
	MarkerColor tab.Color = "green"
	NoteColor   tab.Color = "red"
	RootColor   tab.Color = "blue"
	LabelColor  tab.Color = "white"
)

// DefaultFlash is how long a clicked note stays visible.
const DefaultFlash = 300 * time.Millisecond

// Options configures a Neck.
type Options struct {
	// Geometry defaults to the reference layout.
	Geometry Geometry

	// Flash is the delay before a flashed note is painted over. Zero means
	// DefaultFlash.
	Flash time.Duration

	// OnRedraw is called after the delayed repaint that ends a flash.
	OnRedraw func()

	Logger *log.Logger
}

// Neck paints a fretboard onto a surface. It is safe for concurrent use;
// the delayed repaint after a flash runs on its own goroutine.
type Neck struct {
	mu       sync.Mutex
	surface  tab.Surface
	geo      Geometry
	key      string
	scale    Scale
	debounce func(func())
	onRedraw func()
	logger   *log.Logger
}

// New returns a neck drawing on s. Nothing is painted until Draw.
func New(s tab.Surface, opts Options) *Neck {
	if opts.Geometry.FretSpace <= 0 {
		opts.Geometry = NewGeometry(1, 1)
	}
	if opts.Flash <= 0 {
		opts.Flash = DefaultFlash
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if s == nil {
		s = tab.NopSurface{}
	}
	return &Neck{
		surface:  s,
		geo:      opts.Geometry,
		debounce: debounce.New(opts.Flash),
		onRedraw: opts.OnRedraw,
		logger:   opts.Logger,
	}
}

// Geometry returns the layout in use.
func (n *Neck) Geometry() Geometry { return n.geo }

// Draw clears the surface and paints the frets, strings and inlays. A
// scale shown with DrawScale is forgotten.
func (n *Neck) Draw() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.key, n.scale = "", ""
	n.drawNeck()
}

func (n *Neck) drawNeck() {
	g := n.geo
	n.surface.Clear()
	for i := 0; i <= NumFrets; i++ {
		n.surface.FillRect(float64(i+1)*g.FretSpace, g.FretStart, g.FretWidth, g.FretLength, FretColor, 1, false)
	}
	for i := range NumStrings {
		n.surface.FillRect(g.NeckStart, g.StringStart+float64(i)*g.StringSpace, g.StringLength, g.StringWidth, StringColor, 1, false)
	}
	for _, f := range SingleMarkers {
		n.surface.DrawCircle(g.MarkerX(f), g.StringStart+2.5*g.StringSpace, g.MarkerRadius, MarkerColor)
	}
	for _, f := range DoubleMarkers {
		n.surface.DrawCircle(g.MarkerX(f), g.StringStart+1.5*g.StringSpace, g.MarkerRadius, MarkerColor)
		n.surface.DrawCircle(g.MarkerX(f), g.StringStart+3.5*g.StringSpace, g.MarkerRadius, MarkerColor)
	}
}

// DrawScale repaints the neck and marks every fret that sounds a note of
// scale in key. Root notes use RootColor.
func (n *Neck) DrawScale(key string, scale Scale) error {
	notes, err := ScaleNotes(key, scale)
	if err != nil {
		return err
	}
	root := notes[0]

	n.mu.Lock()
	defer n.mu.Unlock()
	n.key, n.scale = key, scale
	n.drawNeck()
	n.drawScale(notes, root)
	n.logger.Debug("drew scale", "key", key, "scale", scale)
	return nil
}

func (n *Neck) drawScale(notes []string, root string) {
	for _, name := range Strings {
		open, _ := NotesFrom(name)
		for fret := 0; fret <= NumFrets; fret++ {
			note := open[fret%12]
			for _, s := range notes {
				if s == note {
					n.drawNote(StringNumber(name), fret, note, note == root)
					break
				}
			}
		}
	}
}

func (n *Neck) drawNote(number, fret int, label string, root bool) {
	c := NoteColor
	if root {
		c = RootColor
	}
	x, y := n.geo.NoteCenter(number, fret)
	n.surface.DrawCircle(x, y, n.geo.NoteRadius, c)
	if label != "" {
		n.surface.DrawText(label, x, y+3, n.geo.FontSize, LabelColor, tab.AlignCenter)
	}
}

// Flash paints the note at fret on the named string and schedules a repaint
// that removes it. A flash still pending is superseded by the new one.
func (n *Neck) Flash(stringName string, fret int) error {
	note, err := NoteAt(stringName, fret)
	if err != nil {
		return err
	}
	n.mu.Lock()
	n.drawNote(StringNumber(stringName), fret, note, false)
	n.mu.Unlock()
	n.debounce(n.redraw)
	return nil
}

func (n *Neck) redraw() {
	n.mu.Lock()
	n.drawNeck()
	if n.scale != "" {
		if notes, err := ScaleNotes(n.key, n.scale); err == nil {
			n.drawScale(notes, notes[0])
		}
	}
	n.mu.Unlock()
	if n.onRedraw != nil {
		n.onRedraw()
	}
}

// Click resolves a point on the neck to a string and fret and flashes the
// note there. Points outside the neck surface are rejected.
func (n *Neck) Click(x, y float64) (string, int, error) {
	if x < 0 || y < 0 || x > n.geo.Width || y > n.geo.Height {
		return "", 0, errors.New(errors.ErrCodeInvalidInput, "point (%g, %g) is off the neck", x, y)
	}
	name, fret := n.geo.DetectClick(x, y)
	if err := n.Flash(name, fret); err != nil {
		return "", 0, err
	}
	return name, fret, nil
}

// DetectClick maps a point on the neck to a string name and fret without
// drawing.
func (n *Neck) DetectClick(x, y float64) (string, int) { return n.geo.DetectClick(x, y) }

// Do runs fn while holding the neck's lock, so fn can read the surface
// without racing a pending repaint.
func (n *Neck) Do(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fn()
}
