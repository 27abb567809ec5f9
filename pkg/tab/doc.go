// Package tab implements the guitar tablature layout and editing engine.
//
// # Overview
//
// A tab sheet is a stack of rows, each row being six horizontal string-lines
// subdivided into discrete rhythmic positions. Every position holds either a
// single note or a chord. The package is split into four layers:
//
//   - [Metrics]: pure geometry mapping a position and string-line to pixels
//   - [Element]: the renderable unit at one position (note or chord)
//   - [Builder]: the element store, row layout, selection and structural edits
//   - [Manager]: the single-note/chord authoring state machine and the
//     notation [Grid] projection used for load and save
//
// Drawing goes through the [Surface] interface, which only needs to fill
// rectangles, paint circles and text, and clear regions. Package
// github.com/matzehuels/tabsmith/pkg/render/svg provides a display-list
// implementation.
//
// # Positions and slots
//
// Every element carries a position index: its time-ordered identifier. The
// builder stores elements in an arena of slots. Inserting before a selected
// element leaves an empty slot (a tombstone) that reserves the freed
// position. The manager's cursor moves to the first such slot and the next
// note committed there fills it. Position and slot index are never assumed
// to coincide.
//
// # Usage
//
//	b := tab.NewBuilder(base, overlay, tab.Options{Metrics: tab.DefaultMetrics()})
//
//	m := tab.NewManager(b)
//	m.UpdateDrawable(1, "3")
//	m.Draw()
//
//	m.ToggleChordMode()
//	m.UpdateDrawable(2, "2")
//	m.UpdateDrawable(3, "2")
//	m.ToggleChordMode() // commits the chord and advances the cursor
//
//	grid := m.Grid()
//
// # Concurrency
//
// Builder and Manager are not safe for concurrent use. Callers that drive a
// manager from several goroutines must hold one lock around each mutation and
// the redraw that follows it; a redraw observed halfway through a mutation
// paints an inconsistent frame.
package tab
