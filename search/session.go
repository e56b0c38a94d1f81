package search

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

const defaultFetchTimeout = 10 * time.Second

// Page is one page of search results.
type Page struct {
	Products   []models.ProductCard `json:"products"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
	Total      int                  `json:"total"`
}

// EmptyPage is the result shown when nothing matched or a fetch failed.
func EmptyPage(page int) Page {
	if page < 1 {
		page = 1
	}
	return Page{Products: []models.ProductCard{}, Page: page}
}

// Fetcher executes a QuerySpec against a product source.
type Fetcher interface {
	Search(ctx context.Context, q QuerySpec) (Page, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, q QuerySpec) (Page, error)

func (f FetcherFunc) Search(ctx context.Context, q QuerySpec) (Page, error) {
	return f(ctx, q)
}

// Snapshot is what subscribers observe after every change.
type Snapshot struct {
	State   FilterState
	Results Page
	Loading bool
	Err     error
}

// Session owns a FilterState and the results last fetched for it. Mutations
// are applied synchronously; fetches run in the background and only the most
// recent one may publish results.
type Session struct {
	fetcher Fetcher
	log     *zap.Logger
	timeout time.Duration

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu       sync.Mutex
	state    FilterState
	results  Page
	loading  bool
	lastErr  error
	gen      uint64
	inflight context.CancelFunc
	subs     map[uint64]func(Snapshot)
	nextSub  uint64
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithFetchTimeout bounds each background fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// NewSession starts a session at initial. No fetch is issued until Refresh or
// SetFilter is called.
func NewSession(initial FilterState, fetcher Fetcher, opts ...Option) *Session {
	ctx, stop := context.WithCancel(context.Background())
	s := &Session{
		fetcher: fetcher,
		log:     zap.NewNop(),
		timeout: defaultFetchTimeout,
		ctx:     ctx,
		stop:    stop,
		state:   initial,
		results: EmptyPage(parsePage(initial.Page)),
		subs:    make(map[uint64]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current filter state.
func (s *Session) State() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Results returns the most recently published results.
func (s *Session) Results() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Snapshot returns state and results together.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SetFilter merges patch into the state and refetches. It returns the state
// as it stands after the merge; results arrive later through subscribers.
func (s *Session) SetFilter(patch Patch) FilterState {
	s.mu.Lock()
	s.state = s.state.Apply(patch)
	state := s.state
	s.startFetchLocked()
	return state
}

// Refresh refetches results for the current state.
func (s *Session) Refresh() {
	s.mu.Lock()
	s.startFetchLocked()
}

// Subscribe registers fn for every snapshot change. The returned function
// removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Wait blocks until no fetch is in flight.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels in-flight fetches and waits for them to return.
func (s *Session) Close() {
	s.stop()
	s.wg.Wait()
}

// startFetchLocked must be called with mu held; it releases mu.
func (s *Session) startFetchLocked() {
	if s.inflight != nil {
		s.inflight()
	}
	s.gen++
	gen := s.gen
	spec := Derive(s.state)
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	s.inflight = cancel
	s.loading = true
	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.wg.Add(1)
	s.mu.Unlock()

	notify(subs, snap)

	go s.fetch(ctx, cancel, gen, spec)
}

func (s *Session) fetch(ctx context.Context, cancel context.CancelFunc, gen uint64, spec QuerySpec) {
	defer s.wg.Done()
	defer cancel()

	page, err := s.fetcher.Search(ctx, spec)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.log.Debug("[search.session] discarding stale results", zap.Uint64("generation", gen))
		return
	}
	s.inflight = nil
	s.loading = false
	if err != nil {
		s.log.Warn("[search.session] fetch failed",
			zap.Error(err),
			zap.String("query", spec.Values().Encode()),
		)
		s.results = EmptyPage(spec.Page)
		s.lastErr = err
	} else {
		if page.Products == nil {
			page.Products = []models.ProductCard{}
		}
		s.results = page
		s.lastErr = nil
	}
	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, snap)
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		State:   s.state,
		Results: s.results,
		Loading: s.loading,
		Err:     s.lastErr,
	}
}

func (s *Session) subscribersLocked() []func(Snapshot) {
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
