package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type failingStorage struct {
	MemoryStorage
	err error
}

func (f *failingStorage) Update(context.Context, func([]Entry) []Entry) ([]Entry, error) {
	return nil, f.err
}

func TestStore_AddAndClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := NewMemoryStorage()

	s, err := NewStore(ctx, storage)
	require.NoError(t, err)
	assert.Empty(t, s.Entries())

	require.NoError(t, s.Add(ctx, Entry{ID: "p1", Category: "shoes"}))
	require.NoError(t, s.Add(ctx, Entry{ID: "p2", Category: "hats"}))
	assert.Equal(t, []string{"p2", "p1"}, IDs(s.Entries()))

	persisted, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.Entries(), persisted)

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Entries())
	persisted, err = storage.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestStore_LoadsPersistedList(t *testing.T) {
	t.Parallel()
	storage := NewMemoryStorage(Entry{ID: "p9", Category: "bags"})

	s, err := NewStore(context.Background(), storage)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{ID: "p9", Category: "bags"}}, s.Entries())
}

func TestStore_RejectsBlankID(t *testing.T) {
	t.Parallel()
	s, err := NewStore(context.Background(), NewMemoryStorage())
	require.NoError(t, err)
	assert.Error(t, s.Add(context.Background(), Entry{Category: "shoes"}))
}

func TestStore_PersistFailureKeepsState(t *testing.T) {
	t.Parallel()
	boom := errors.New("disk full")
	s, err := NewStore(context.Background(), &failingStorage{err: boom})
	require.NoError(t, err)

	err = s.Add(context.Background(), Entry{ID: "p1"})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Entries())
}

func TestStore_Subscribe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, err := NewStore(ctx, NewMemoryStorage())
	require.NoError(t, err)

	var (
		mu   sync.Mutex
		seen [][]Entry
	)
	unsubscribe := s.Subscribe(func(entries []Entry) {
		mu.Lock()
		seen = append(seen, entries)
		mu.Unlock()
	})

	require.NoError(t, s.Add(ctx, Entry{ID: "p1"}))
	require.NoError(t, s.Clear(ctx))
	unsubscribe()
	require.NoError(t, s.Add(ctx, Entry{ID: "p2"}))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.Equal(t, []string{"p1"}, IDs(seen[0]))
	assert.Empty(t, seen[1])
}

func TestStore_SharedStorageKeepsConcurrentWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := NewMemoryStorage()

	// Both stores load the same empty list before either writes.
	first, err := NewStore(ctx, storage)
	require.NoError(t, err)
	second, err := NewStore(ctx, storage)
	require.NoError(t, err)

	require.NoError(t, first.Add(ctx, Entry{ID: "p1", Category: "shoes"}))
	require.NoError(t, second.Add(ctx, Entry{ID: "p2", Category: "hats"}))

	persisted, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, IDs(persisted))
	assert.Equal(t, []string{"p2", "p1"}, IDs(second.Entries()))
}

func TestStore_ConcurrentStoresOverOneStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := NewMemoryStorage()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := NewStore(ctx, storage)
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, s.Add(ctx, Entry{ID: fmt.Sprintf("p%d", i), Category: "shoes"}))
		}()
	}
	wg.Wait()

	persisted, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted, 8)
	assert.ElementsMatch(t, []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7"}, IDs(persisted))
}

func TestDecode_DropsDuplicatesAndCaps(t *testing.T) {
	t.Parallel()

	entries, err := decode([]byte(`[
		{"id":"p1","category":"shoes"},
		{"id":"p2","category":"hats"},
		{"id":"p1","category":"shoes"},
		{"id":"","category":"bags"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{ID: "p1", Category: "shoes"}, {ID: "p2", Category: "hats"}}, entries)

	var long []Entry
	for i := range MaxEntries + 3 {
		long = append(long, Entry{ID: fmt.Sprintf("p%d", i)})
	}
	data, err := json.Marshal(long)
	require.NoError(t, err)
	entries, err = decode(data)
	require.NoError(t, err)
	assert.Equal(t, IDs(long[:MaxEntries]), IDs(entries))

	entries, err = decode(nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStorage_DropsDuplicatesOnLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"p2"},{"id":"p1"},{"id":"p2"}]`), 0o600))

	s, err := NewStore(ctx, NewFileStorage(path))
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, IDs(s.Entries()))
}

func TestFileStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "history.json")
	fs := NewFileStorage(path)

	entries, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	s, err := NewStore(ctx, fs)
	require.NoError(t, err)
	require.NoError(t, s.Add(ctx, Entry{ID: "p1", Category: "shoes"}))
	require.NoError(t, s.Add(ctx, Entry{ID: "p2", Category: "hats"}))

	reopened, err := NewStore(ctx, NewFileStorage(path))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{ID: "p2", Category: "hats"}, {ID: "p1", Category: "shoes"}}, reopened.Entries())
}
