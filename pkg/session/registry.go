package session

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabsmith/pkg/store"
)

// Registry keeps one open session per document.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	docs     store.Store
	opts     Options
	logger   *log.Logger
}

// NewRegistry returns a registry loading documents from docs.
func NewRegistry(docs store.Store, opts Options) *Registry {
	opts.setDefaults()
	return &Registry{
		sessions: make(map[string]*Session),
		docs:     docs,
		opts:     opts,
		logger:   opts.Logger,
	}
}

// Open returns the session for id, loading the document if no session is
// open. An open session is reused even past its TTL, since only Cleanup
// may drop it and Cleanup saves pending edits first. A missing document is
// reported by the store.
func (r *Registry) Open(ctx context.Context, id string) (*Session, error) {
	r.mu.Lock()
	if s, ok := r.sessions[id]; ok {
		s.keepAlive()
		r.mu.Unlock()
		return s, nil
	}
	r.mu.Unlock()

	doc, err := r.docs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s := New(doc, r.opts)

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another request may have opened it meanwhile.
	if cur, ok := r.sessions[id]; ok {
		cur.keepAlive()
		return cur, nil
	}
	r.sessions[id] = s
	r.logger.Debug("opened session", "doc", id)
	return s, nil
}

// Create stores doc and opens a session on it.
func (r *Registry) Create(ctx context.Context, doc *store.Document) (*Session, error) {
	if err := r.docs.Put(ctx, doc); err != nil {
		return nil, err
	}
	s := New(doc, r.opts)
	r.mu.Lock()
	r.sessions[doc.ID] = s
	r.mu.Unlock()
	return s, nil
}

// Save writes the session's current document to the store.
func (r *Registry) Save(ctx context.Context, id string) (*store.Document, error) {
	s, err := r.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.save(ctx, s)
}

func (r *Registry) save(ctx context.Context, s *Session) (*store.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.document()
	d.Touch()
	if err := r.docs.Put(ctx, d); err != nil {
		return nil, err
	}
	s.saved(d)
	return d, nil
}

// Close saves pending edits and drops the session for id.
func (r *Registry) Close(ctx context.Context, id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok || !s.Dirty() {
		return nil
	}
	_, err := r.save(ctx, s)
	return err
}

// Forget drops the session for id without saving.
func (r *Registry) Forget(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Cleanup saves and removes expired sessions. It returns the number removed.
func (r *Registry) Cleanup(ctx context.Context) (int, error) {
	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if s.IsExpired() {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	var firstErr error
	for _, s := range expired {
		if !s.Dirty() {
			continue
		}
		if _, err := r.save(ctx, s); err != nil {
			r.logger.Warn("save expired session", "doc", s.ID(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return len(expired), firstErr
}

// Run calls Cleanup every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n, _ := r.Cleanup(ctx); n > 0 {
				r.logger.Debug("expired sessions", "count", n)
			}
		}
	}
}

// Flush saves every dirty session.
func (r *Registry) Flush(ctx context.Context) error {
	r.mu.Lock()
	open := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		open = append(open, s)
	}
	r.mu.Unlock()

	for _, s := range open {
		if !s.Dirty() {
			continue
		}
		if _, err := r.save(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
