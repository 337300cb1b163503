// Package navigator keeps the current view state of a browsing session.
//
// Every navigation recomputes the whole state from the path and gets a fresh
// key. Content is fetched in the background; a fetch result is applied only
// while its key is still current, so the last navigation always wins even
// when an older fetch finishes later.
package navigator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/starford/dossier/internal/content"
	"github.com/starford/dossier/internal/site"
)

// State is an immutable snapshot of the session.
type State struct {
	Key     string    `json:"key"`
	Page    site.Page `json:"page"`
	Content string    `json:"content,omitempty"`
	Loading bool      `json:"loading"`
}

// Pages resolves paths and loads content.
type Pages interface {
	Resolve(path string) site.Page
	Content(ctx context.Context, p site.Page) string
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithOnChange registers fn to be called after every committed state change.
// Calls are serialized in commit order. fn may call Current but must not
// call Navigate.
func WithOnChange(fn func(State)) Option {
	return func(n *Navigator) { n.onChange = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Navigator) { n.logger = l }
}

// Navigator owns one session's state.
type Navigator struct {
	pages    Pages
	base     context.Context
	onChange func(State)
	logger   *slog.Logger

	// commitMu spans a commit and its notification; mu guards cur alone.
	commitMu sync.Mutex
	mu       sync.Mutex
	cur      State
	wg       sync.WaitGroup
}

// New creates a navigator positioned on "/". Background fetches run with
// ctx, so they outlive the request that started them but stop with the
// session.
func New(ctx context.Context, pages Pages, opts ...Option) *Navigator {
	n := &Navigator{pages: pages, base: ctx, logger: slog.Default()}
	for _, opt := range opts {
		opt(n)
	}
	n.cur = State{Key: uuid.NewString(), Page: pages.Resolve("/")}
	return n
}

// Current returns the committed state.
func (n *Navigator) Current() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cur
}

// Navigate replaces the state with the one for path and returns it. If the
// page has long-form content the returned state is loading and exactly one
// fetch is started.
func (n *Navigator) Navigate(path string) State {
	page := n.pages.Resolve(path)
	next := State{Key: uuid.NewString(), Page: page}
	if page.Content != nil {
		next.Content = content.Placeholder
		next.Loading = true
	}

	n.commit(next, "")

	if next.Loading {
		n.wg.Add(1)
		go n.fetch(next)
	}
	return next
}

func (n *Navigator) fetch(s State) {
	defer n.wg.Done()

	text := n.pages.Content(n.base, s.Page)

	s.Content = text
	s.Loading = false
	if !n.commit(s, s.Key) {
		n.logger.Debug("navigator: discarding stale content",
			slog.String("key", s.Key),
			slog.String("path", s.Page.Requested.Path()))
	}
}

// commit installs s and notifies the observer. A non-empty ifKey makes the
// commit conditional on ifKey still being the current key.
func (n *Navigator) commit(s State, ifKey string) bool {
	n.commitMu.Lock()
	defer n.commitMu.Unlock()

	n.mu.Lock()
	if ifKey != "" && n.cur.Key != ifKey {
		n.mu.Unlock()
		return false
	}
	n.cur = s
	n.mu.Unlock()

	n.notify(s)
	return true
}

func (n *Navigator) notify(s State) {
	if n.onChange != nil {
		n.onChange(s)
	}
}

// Wait blocks until every fetch started so far has finished.
func (n *Navigator) Wait() {
	n.wg.Wait()
}
