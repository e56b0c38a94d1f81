package history

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store is the mutable browsing history. Mutations are serialised and
// persisted before subscribers are told about them. Several stores may share
// one Storage; each mutation sees the others' writes.
type Store struct {
	storage Storage
	log     *zap.Logger

	mu      sync.Mutex
	entries []Entry
	subs    map[uint64]func([]Entry)
	nextSub uint64
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the store logger.
func WithStoreLogger(l *zap.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// NewStore loads the persisted history from storage.
func NewStore(ctx context.Context, storage Storage, opts ...StoreOption) (*Store, error) {
	s := &Store{
		storage: storage,
		log:     zap.NewNop(),
		subs:    make(map[uint64]func([]Entry)),
	}
	for _, opt := range opts {
		opt(s)
	}

	entries, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading browsing history: %w", err)
	}
	s.entries = entries
	return s, nil
}

// Entries returns a copy of the history, most recent first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry{}, s.entries...)
}

// Add records a product view.
func (s *Store) Add(ctx context.Context, e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("history entry without id")
	}
	return s.replace(ctx, func(cur []Entry) []Entry { return Push(cur, e) })
}

// Clear forgets every entry.
func (s *Store) Clear(ctx context.Context) error {
	return s.replace(ctx, func([]Entry) []Entry { return []Entry{} })
}

// Subscribe registers fn for every change. The returned function removes it.
func (s *Store) Subscribe(fn func([]Entry)) func() {
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

// replace applies next to the persisted list rather than the copy loaded by
// NewStore, so writes from other stores over the same storage are kept.
func (s *Store) replace(ctx context.Context, next func([]Entry) []Entry) error {
	s.mu.Lock()
	updated, err := s.storage.Update(ctx, next)
	if err != nil {
		s.mu.Unlock()
		s.log.Warn("[history.store] persist failed", zap.Error(err))
		return err
	}
	s.entries = updated
	snapshot := append([]Entry{}, updated...)
	subs := make([]func([]Entry), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
	return nil
}
