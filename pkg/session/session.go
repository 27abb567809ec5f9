// Package session manages editing sessions for open tab documents.
//
// A [Session] pairs a stored document with a live [tab.Manager] drawing onto
// SVG canvases, plus a fretboard the user can click to enter notes. The
// [Registry] keeps one session per document, loads documents from a
// [store.Store] on first use, and expires idle sessions.
//
// # Usage
//
//	reg := session.NewRegistry(docs, session.Options{TTL: 30 * time.Minute})
//	sess, err := reg.Open(ctx, docID)
//	err = sess.Edit(func(m *tab.Manager) error {
//	    if err := m.UpdateDrawable(3, "5"); err != nil {
//	        return err
//	    }
//	    m.Draw()
//	    return nil
//	})
//	err = reg.Save(ctx, docID)
//
// Every method on Session serializes on the session's lock, so concurrent
// requests against one document apply one after another.
package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabsmith/pkg/fretboard"
	"github.com/matzehuels/tabsmith/pkg/render/svg"
	"github.com/matzehuels/tabsmith/pkg/store"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

// DefaultTTL is how long an idle session stays open.
const DefaultTTL = 30 * time.Minute

// Options configures new sessions.
type Options struct {
	// TTL is the idle time after which a session expires. Zero means
	// DefaultTTL.
	TTL time.Duration

	Metrics tab.Metrics
	Theme   tab.Theme
	Neck    fretboard.Geometry
	Flash   time.Duration
	Logger  *log.Logger
}

func (o *Options) setDefaults() {
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if !o.Metrics.Valid() {
		o.Metrics = tab.DefaultMetrics()
	}
	if o.Neck.FretSpace <= 0 {
		o.Neck = fretboard.NewGeometry(1, 1)
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Session is an open document.
type Session struct {
	mu        sync.Mutex
	doc       store.Document
	base      *svg.Canvas
	overlay   *svg.Canvas
	manager   *tab.Manager
	neckCanv  *svg.Canvas
	neck      *fretboard.Neck
	dirty     bool
	ttl       time.Duration
	ExpiresAt time.Time
	CreatedAt time.Time
}

// New opens a session on doc, materializing its grid.
func New(doc *store.Document, opts Options) *Session {
	opts.setDefaults()
	now := time.Now()
	s := &Session{
		doc:       *doc,
		base:      svg.NewCanvas(),
		overlay:   svg.NewCanvas(),
		neckCanv:  svg.NewCanvas(),
		ttl:       opts.TTL,
		ExpiresAt: now.Add(opts.TTL),
		CreatedAt: now,
	}
	b := tab.NewBuilder(s.base, s.overlay, tab.Options{
		Metrics: opts.Metrics,
		Theme:   opts.Theme,
		Logger:  opts.Logger,
	})
	s.manager = tab.NewManager(b)
	s.manager.Load(doc.Grid)
	s.neck = fretboard.New(s.neckCanv, fretboard.Options{
		Geometry: opts.Neck,
		Flash:    opts.Flash,
		Logger:   opts.Logger,
	})
	s.neck.Draw()
	return s
}

// ID returns the document ID.
func (s *Session) ID() string { return s.doc.ID }

// IsExpired returns true if the session has been idle past its TTL.
func (s *Session) IsExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Now().After(s.ExpiresAt)
}

func (s *Session) touch() { s.ExpiresAt = time.Now().Add(s.ttl) }

func (s *Session) keepAlive() {
	s.mu.Lock()
	s.touch()
	s.mu.Unlock()
}

// Edit runs fn against the session's manager and marks the document as
// modified.
func (s *Session) Edit(fn func(m *tab.Manager) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := fn(s.manager); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// View runs fn against the session's manager without marking it modified.
func (s *Session) View(fn func(m *tab.Manager)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	fn(s.manager)
}

// Dirty reports whether the session has edits not yet saved.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Document returns a copy of the document with the current grid.
func (s *Session) Document() *store.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document()
}

func (s *Session) document() *store.Document {
	d := s.doc
	d.Grid = s.manager.Builder().Grid()
	return &d
}

// Rename changes the document name.
func (s *Session) Rename(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Name = name
	s.dirty = true
}

// SVG renders the sheet as it currently looks, selection included.
func (s *Session) SVG() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	b := s.manager.Builder()
	return svg.Compose(b.Metrics().Width, b.Height(), s.base, s.overlay)
}

// NeckSVG renders the fretboard.
func (s *Session) NeckSVG() []byte {
	var out []byte
	g := s.neck.Geometry()
	s.neck.Do(func() { out = svg.Compose(g.Width, g.Height, s.neckCanv) })
	return out
}

// Neck returns the session's fretboard.
func (s *Session) Neck() *fretboard.Neck { return s.neck }

// saved marks the current state as persisted.
func (s *Session) saved(d *store.Document) {
	s.doc.UpdatedAt = d.UpdatedAt
	s.dirty = false
}
