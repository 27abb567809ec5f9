package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tabsmith/pkg/errors"
	"github.com/matzehuels/tabsmith/pkg/fretboard"
	"github.com/matzehuels/tabsmith/pkg/observability"
	"github.com/matzehuels/tabsmith/pkg/pipeline"
	"github.com/matzehuels/tabsmith/pkg/session"
	"github.com/matzehuels/tabsmith/pkg/store"
	"github.com/matzehuels/tabsmith/pkg/tab"
	"github.com/matzehuels/tabsmith/pkg/tabio"
)

// =============================================================================
// Response Types
// =============================================================================

type docSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Positions int       `json:"positions"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func summarize(d *store.Document) docSummary {
	return docSummary{
		ID:        d.ID,
		Name:      d.Name,
		Positions: len(d.Grid.Compact()),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// editorState is the editor as a client needs it to redraw.
type editorState struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Mode     string    `json:"mode"`
	Cursor   int       `json:"cursor"`
	Rows     int       `json:"rows"`
	Height   float64   `json:"height"`
	Selected *int      `json:"selected,omitempty"`
	Dirty    bool      `json:"dirty"`
	Grid     tab.Grid  `json:"grid"`
	Updated  time.Time `json:"updated_at"`
}

func stateOf(sess *session.Session) editorState {
	doc := sess.Document()
	st := editorState{ID: doc.ID, Name: doc.Name, Updated: doc.UpdatedAt}
	sess.View(func(m *tab.Manager) {
		b := m.Builder()
		st.Mode = m.Mode().String()
		st.Cursor = m.Cursor()
		st.Rows = b.Rows()
		st.Height = b.Height()
		st.Grid = m.Grid()
		if e, ok := b.Selected(); ok {
			p := e.Position
			st.Selected = &p
		}
	})
	st.Dirty = sess.Dirty()
	return st
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// =============================================================================
// Documents
// =============================================================================

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	docs, err := s.docs.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]docSummary, len(docs))
	for i, d := range docs {
		out[i] = summarize(d)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string   `json:"name"`
		Grid tab.Grid `json:"grid"`
	}
	if err := decode(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if err := errors.ValidateDocumentName(req.Name); err != nil {
		writeError(w, r, err)
		return
	}
	if err := tabio.Validate(req.Grid); err != nil {
		writeError(w, r, err)
		return
	}
	sess, err := s.sessions.Create(r.Context(), store.NewDocument(req.Name, req.Grid))
	if err != nil {
		writeError(w, r, err)
		return
	}
	observability.Edit().OnEdit(r.Context(), sess.ID(), "create", 0)
	writeJSON(w, http.StatusCreated, stateOf(sess))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(w, r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if req.Name != "" {
		if err := errors.ValidateDocumentName(req.Name); err != nil {
			writeError(w, r, err)
			return
		}
		sess.Rename(req.Name)
	}
	doc, err := s.sessions.Save(r.Context(), sess.ID())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summarize(doc))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.docs.Get(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	s.sessions.Forget(id)
	if err := s.docs.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// session opens the session named by the id URL parameter, writing the
// error response itself when that fails.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

// edit applies fn to the session and responds with the new editor state.
// fn returns the position the edit touched, for the edit hooks.
func (s *Server) edit(w http.ResponseWriter, r *http.Request, op string, fn func(m *tab.Manager) (int, error)) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var pos int
	err := sess.Edit(func(m *tab.Manager) error {
		var err error
		pos, err = fn(m)
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	observability.Edit().OnEdit(r.Context(), sess.ID(), op, pos)
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// =============================================================================
// Editing
// =============================================================================

func commitNote(m *tab.Manager, line int, symbol string) (int, error) {
	if err := errors.ValidateSymbol(symbol); err != nil {
		return 0, err
	}
	if err := m.UpdateDrawable(line, symbol); err != nil {
		return 0, err
	}
	p := m.Cursor()
	m.Draw()
	return p, nil
}

func (s *Server) handleNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Line   int    `json:"line"`
		Symbol string `json:"symbol"`
	}
	if err := decode(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	s.edit(w, r, "note", func(m *tab.Manager) (int, error) {
		return commitNote(m, req.Line, req.Symbol)
	})
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := decode(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	mode, ok := tab.ParseMode(req.Mode)
	if !ok {
		writeError(w, r, errors.New(errors.ErrCodeInvalidMode, "unknown mode %q (want single or chord)", req.Mode))
		return
	}
	s.edit(w, r, "mode", func(m *tab.Manager) (int, error) {
		p := m.Cursor()
		m.SetMode(mode)
		return p, nil
	})
}

func (s *Server) handleSymbol(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbol string `json:"symbol"`
	}
	if err := decode(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if !tab.IsTechnique(req.Symbol) {
		writeError(w, r, errors.New(errors.ErrCodeInvalidSymbol, "%q is not a technique marker (s, b, h, p)", req.Symbol))
		return
	}
	s.edit(w, r, "symbol", func(m *tab.Manager) (int, error) {
		p := m.Cursor()
		m.DrawSymbol(req.Symbol)
		return p, nil
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req point
	if err := decode(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var resp struct {
		Hit      bool   `json:"hit"`
		Position int    `json:"position,omitempty"`
		Kind     string `json:"kind,omitempty"`
	}
	sess.View(func(m *tab.Manager) {
		if e, hit := m.FindElement(req.X, req.Y); hit {
			resp.Hit, resp.Position, resp.Kind = true, e.Position, e.Kind.String()
		}
	})
	writeJSON(w, http.StatusOK, resp)
}

func selectedPosition(m *tab.Manager) int {
	if e, ok := m.Builder().Selected(); ok {
		return e.Position
	}
	return 0
}

func (s *Server) handleDeleteSelected(w http.ResponseWriter, r *http.Request) {
	s.edit(w, r, "delete", func(m *tab.Manager) (int, error) {
		p := selectedPosition(m)
		m.Delete()
		return p, nil
	})
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	s.edit(w, r, "insert", func(m *tab.Manager) (int, error) {
		p := selectedPosition(m)
		m.Insert()
		return p, nil
	})
}

func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.View(func(m *tab.Manager) { m.AddTabRow() })
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var g tab.Grid
	sess.View(func(m *tab.Manager) { g = m.Grid() })
	w.Header().Set("Content-Type", "application/json")
	if err := tabio.WriteGrid(g, w); err != nil {
		s.logger.Warn("write grid", "error", err)
	}
}

func (s *Server) handleLoadGrid(w http.ResponseWriter, r *http.Request) {
	g, err := tabio.ReadGrid(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.edit(w, r, "load", func(m *tab.Manager) (int, error) {
		m.Load(g)
		return m.Cursor(), nil
	})
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeBytes(w, "image/svg+xml", sess.SVG())
}

// =============================================================================
// Fretboard
// =============================================================================

func (s *Server) handleFretboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeBytes(w, "image/svg+xml", sess.NeckSVG())
}

// handleFretboardClick enters the note under a fretboard click at the
// cursor and flashes it on the neck.
func (s *Server) handleFretboardClick(w http.ResponseWriter, r *http.Request) {
	var req point
	if err := decode(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	name, fret, err := sess.Neck().Click(req.X, req.Y)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.edit(w, r, "fretboard", func(m *tab.Manager) (int, error) {
		return commitNote(m, fretboard.StringNumber(name), strconv.Itoa(fret))
	})
}

func (s *Server) handleScale(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string `json:"key"`
		Scale string `json:"scale"`
	}
	if err := decode(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	scale, err := fretboard.ParseScale(req.Scale)
	if err != nil {
		writeError(w, r, err)
		return
	}
	notes, err := fretboard.ScaleNotes(req.Key, scale)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.Neck().DrawScale(req.Key, scale); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": req.Key, "scale": scale, "notes": notes})
}

// =============================================================================
// Rendering
// =============================================================================

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
}

// handleRender renders the grid in the request body to the format named by
// the format query parameter (svg by default).
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if s.runner == nil {
		writeError(w, r, errors.New(errors.ErrCodeUnsupported, "rendering is disabled"))
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := tabio.ReadGrid(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts := s.render
	opts.Formats = []string{format}
	if v := r.URL.Query().Get("max_per_row"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "max_per_row must be an integer"))
			return
		}
		opts.MaxPerRow = n
	}
	res, err := s.runner.Render(r.Context(), g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	writeBytes(w, contentTypes[format], res.Artifacts[format])
}
