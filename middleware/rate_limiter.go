package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// Limiter counts a request against key and reports the resulting budget.
type Limiter interface {
	Take(ctx context.Context, key string) (allowed bool, info *models.RateLimiter, err error)
}

func RateLimiter(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		endpoint := c.FullPath() // /api/v1/admin/categories, /api/v1/admin/categories/:id, etc.
		method := c.Request.Method

		// Key is per-IP, per-method, per-endpoint
		key := "rl:" + ip + ":" + method + ":" + endpoint

		allowed, rate, err := limiter.Take(c.Request.Context(), key)
		if err != nil {
			zap.L().Error("[ratelimit.take] limiter failed", zap.String("key", key), zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Rate limiter unavailable"))
			c.Abort()
			return
		}

		// Store in context for controllers
		c.Set(models.RateLimiterContextKey, rate)

		if !allowed {
			metrics.RateLimitRejectionsTotal.Inc()
			c.JSON(http.StatusTooManyRequests, models.ApiResponse{
				Message: "Too many requests",
				Error:   true,
				Rate:    rate,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ─────────────────────────────────────────────────────────────
// Redis fixed window (shared across instances)
// ─────────────────────────────────────────────────────────────

type RedisLimiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
}

func NewRedisLimiter(client *redis.Client, maxRequests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, maxRequests: maxRequests, window: window}
}

func (l *RedisLimiter) Take(ctx context.Context, key string) (bool, *models.RateLimiter, error) {
	resetKey := key + ":resetAt"

	// Increment request count
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, nil, err
	}

	// First request → set expiry and stable resetAt
	if count == 1 {
		resetAt := time.Now().Add(l.window)
		pipe := l.client.TxPipeline()
		pipe.Expire(ctx, key, l.window)
		pipe.Set(ctx, resetKey, resetAt.Unix(), l.window)
		if _, err := pipe.Exec(ctx); err != nil {
			return false, nil, err
		}
	}

	// Get stable resetAt from Redis
	resetAtUnix, _ := l.client.Get(ctx, resetKey).Int64()
	resetAt := time.Unix(resetAtUnix, 0)

	return int(count) <= l.maxRequests, budget(l.maxRequests, l.maxRequests-int(count), resetAt), nil
}

// ─────────────────────────────────────────────────────────────
// In-process token bucket (single instance, no Redis)
// ─────────────────────────────────────────────────────────────

const memoryLimiterKeys = 10_000

type MemoryLimiter struct {
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	buckets     *expirable.LRU[string, *rate.Limiter]
}

func NewMemoryLimiter(maxRequests int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		maxRequests: maxRequests,
		window:      window,
		buckets:     expirable.NewLRU[string, *rate.Limiter](memoryLimiterKeys, nil, 2*window),
	}
}

func (l *MemoryLimiter) Take(_ context.Context, key string) (bool, *models.RateLimiter, error) {
	l.mu.Lock()
	bucket, ok := l.buckets.Get(key)
	if !ok {
		bucket = rate.NewLimiter(rate.Every(l.window/time.Duration(l.maxRequests)), l.maxRequests)
		l.buckets.Add(key, bucket)
	}
	l.mu.Unlock()

	now := time.Now()
	allowed := bucket.AllowN(now, 1)
	tokens := bucket.TokensAt(now)

	// Time until the bucket is full again.
	missing := float64(l.maxRequests) - tokens
	resetIn := time.Duration(missing * float64(l.window) / float64(l.maxRequests))

	return allowed, budget(l.maxRequests, int(tokens), now.Add(resetIn)), nil
}

func budget(limit, remaining int, resetAt time.Time) *models.RateLimiter {
	// Calculate remaining requests (clamped at 0)
	if remaining < 0 {
		remaining = 0
	}

	// Reset in seconds (clamped at 0)
	resetInSeconds := int(time.Until(resetAt).Seconds())
	if resetInSeconds < 0 {
		resetInSeconds = 0
	}

	return &models.RateLimiter{
		Limit:          limit,
		Remaining:      remaining,
		ResetAt:        resetAt,
		ResetInSeconds: resetInSeconds,
	}
}
