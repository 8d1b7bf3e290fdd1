package token_bucket

import (
	"sync"
	"time"
)

// TokenBucket пропускает не больше capacity запросов подряд и пополняется
// со скоростью refillRate токенов в секунду. Токены дробные, поэтому
// медленное пополнение не теряется между вызовами.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
	now        func() time.Time
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return newTokenBucket(capacity, refillRate, time.Now)
}

// NewTokenBucketWithClock нужен тестам, чтобы управлять временем.
func NewTokenBucketWithClock(capacity int, refillRate float64, now func() time.Time) *TokenBucket {
	return newTokenBucket(capacity, refillRate, now)
}

func newTokenBucket(capacity int, refillRate float64, now func() time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: now(),
		now:        now,
	}
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()

	if t.tokens >= 1 {
		t.tokens--
		return true
	}
	return false
}

// Tokens возвращает текущее количество целых токенов.
func (t *TokenBucket) Tokens() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()
	return int(t.tokens)
}

func (t *TokenBucket) refill() {
	now := t.now()
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	t.tokens += elapsed * t.refillRate
	if t.tokens > t.capacity {
		t.tokens = t.capacity
	}
	t.lastRefill = now
}
