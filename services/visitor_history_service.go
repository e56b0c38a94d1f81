package services

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/history"
)

// HistoryStorageFactory returns the storage backing one visitor's history.
type HistoryStorageFactory func(visitorID string) history.Storage

var historyStorage HistoryStorageFactory

// InitVisitorHistory sets how visitor histories are persisted.
func InitVisitorHistory(factory HistoryStorageFactory) {
	historyStorage = factory
}

// RedisHistoryStorage keeps each visitor's history under its own key.
func RedisHistoryStorage(client *redis.Client, ttl time.Duration) HistoryStorageFactory {
	return func(visitorID string) history.Storage {
		return history.NewRedisStorage(client, visitorID, ttl)
	}
}

// MemoryHistoryStorage keeps histories in process. Used when Redis is not
// configured and in tests.
func MemoryHistoryStorage() HistoryStorageFactory {
	var mu sync.Mutex
	stores := map[string]*history.MemoryStorage{}
	return func(visitorID string) history.Storage {
		mu.Lock()
		defer mu.Unlock()
		s, ok := stores[visitorID]
		if !ok {
			s = history.NewMemoryStorage()
			stores[visitorID] = s
		}
		return s
	}
}

// VisitorHistory loads the history store of a visitor.
func VisitorHistory(ctx context.Context, visitorID string) (*history.Store, error) {
	return history.NewStore(ctx, historyStorage(visitorID), history.WithStoreLogger(zap.L()))
}
