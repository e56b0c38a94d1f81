package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage persists a history list. Load returns an empty list when nothing
// has been saved yet. Update applies fn to the persisted list and stores the
// result as one atomic read-modify-write, so concurrent writers never lose
// each other's entries.
type Storage interface {
	Load(ctx context.Context) ([]Entry, error)
	Update(ctx context.Context, fn func([]Entry) []Entry) ([]Entry, error)
}

// ─────────────────────────────────────────────────────────────
// In-memory
// ─────────────────────────────────────────────────────────────

// MemoryStorage keeps the list in process memory.
type MemoryStorage struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryStorage(initial ...Entry) *MemoryStorage {
	return &MemoryStorage{entries: append([]Entry(nil), initial...)}
}

func (m *MemoryStorage) Load(context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry{}, m.entries...), nil
}

func (m *MemoryStorage) Update(_ context.Context, fn func([]Entry) []Entry) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	updated := fn(append([]Entry{}, m.entries...))
	m.entries = append([]Entry(nil), updated...)
	return append([]Entry{}, updated...), nil
}

// ─────────────────────────────────────────────────────────────
// File (CLI client)
// ─────────────────────────────────────────────────────────────

// FileStorage keeps the list as a JSON document on disk. Updates are
// serialised within the process only.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultFilePath is the per-user history file used by the CLI.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "modeva", "browsing-history.json"), nil
}

func (f *FileStorage) Load(context.Context) ([]Entry, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}
	return decode(data)
}

func (f *FileStorage) Update(ctx context.Context, fn func([]Entry) []Entry) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	current, err := f.Load(ctx)
	if err != nil {
		return nil, err
	}
	updated := fn(current)
	if err := f.Save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Save writes through a temp file so a crash never leaves a truncated file.
func (f *FileStorage) Save(_ context.Context, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing history file: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────
// Redis (server, one key per visitor)
// ─────────────────────────────────────────────────────────────

const (
	redisKeyPrefix = "history:"

	// redisUpdateAttempts bounds optimistic retries when another request
	// writes the same visitor's key between WATCH and EXEC.
	redisUpdateAttempts = 16
)

// RedisStorage keeps one visitor's list under a single key with a sliding TTL.
type RedisStorage struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, visitorID string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		client: client,
		key:    redisKeyPrefix + visitorID,
		ttl:    ttl,
	}
}

func (r *RedisStorage) Load(ctx context.Context) ([]Entry, error) {
	return r.decodeReply(r.client.Get(ctx, r.key))
}

// Update runs fn inside WATCH/MULTI so a concurrent write to the same key
// aborts the transaction and fn is re-applied to the fresh list.
func (r *RedisStorage) Update(ctx context.Context, fn func([]Entry) []Entry) ([]Entry, error) {
	var updated []Entry
	txf := func(tx *redis.Tx) error {
		current, err := r.decodeReply(tx.Get(ctx, r.key))
		if err != nil {
			return err
		}
		updated = fn(current)

		var data []byte
		if len(updated) > 0 {
			if data, err = json.Marshal(updated); err != nil {
				return fmt.Errorf("encoding history: %w", err)
			}
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(updated) == 0 {
				pipe.Del(ctx, r.key)
				return nil
			}
			pipe.Set(ctx, r.key, data, r.ttl)
			return nil
		})
		return err
	}

	for range redisUpdateAttempts {
		err := r.client.Watch(ctx, txf, r.key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("saving history %s: %w", r.key, err)
		}
		return updated, nil
	}
	return nil, fmt.Errorf("saving history %s: %w", r.key, redis.TxFailedErr)
}

func (r *RedisStorage) decodeReply(cmd *redis.StringCmd) ([]Entry, error) {
	data, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading history %s: %w", r.key, err)
	}
	return decode(data)
}

func decode(data []byte) ([]Entry, error) {
	entries := []Entry{}
	if len(data) == 0 {
		return entries, nil
	}
	var stored []Entry
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	// Replayed oldest first to drop duplicate ids and enforce the cap.
	for i := len(stored) - 1; i >= 0; i-- {
		if stored[i].ID == "" {
			continue
		}
		entries = Push(entries, stored[i])
	}
	return entries, nil
}
