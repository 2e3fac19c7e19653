package token_bucket

import (
	"math"
	"sync"
	"time"
)

type Limiter interface {
	Allow() bool
}

// TokenBucket пополняется непрерывно: дробные токены копятся между вызовами,
// поэтому при refillRate < 1 лимит все равно восстанавливается.
type TokenBucket struct {
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return newTokenBucket(capacity, refillRate, time.Now)
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
	ok, _ := t.Reserve()
	return ok
}

// Reserve списывает токен, а при отказе возвращает через сколько он накопится.
func (t *TokenBucket) Reserve() (bool, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill(t.now())

	if t.tokens >= 1 {
		t.tokens--
		return true, 0
	}
	if t.refillRate <= 0 {
		return false, time.Duration(math.MaxInt64)
	}
	return false, time.Duration((1 - t.tokens) / t.refillRate * float64(time.Second))
}

func (t *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	t.tokens = min(t.capacity, t.tokens+elapsed*t.refillRate)
	t.lastRefill = now
}

func (t *TokenBucket) full(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill(now)
	return t.tokens >= t.capacity
}

// KeyedBuckets держит отдельный TokenBucket на каждый ключ (например, id курьера),
// чтобы один активный клиент не съедал общий лимит.
// Полные бакеты, к которым давно не обращались, удаляются лениво.
type KeyedBuckets struct {
	capacity   int
	refillRate float64
	idleTTL    time.Duration
	now        func() time.Time

	mu        sync.Mutex
	buckets   map[string]*keyedBucket
	lastSweep time.Time
}

type keyedBucket struct {
	bucket   *TokenBucket
	lastSeen time.Time
}

func NewKeyedBuckets(capacity int, refillRate float64, idleTTL time.Duration) *KeyedBuckets {
	return newKeyedBuckets(capacity, refillRate, idleTTL, time.Now)
}

func newKeyedBuckets(capacity int, refillRate float64, idleTTL time.Duration, now func() time.Time) *KeyedBuckets {
	return &KeyedBuckets{
		capacity:   capacity,
		refillRate: refillRate,
		idleTTL:    idleTTL,
		now:        now,
		buckets:    make(map[string]*keyedBucket),
		lastSweep:  now(),
	}
}

func (k *KeyedBuckets) AllowKey(key string) bool {
	ok, _ := k.ReserveKey(key)
	return ok
}

// ReserveKey - Reserve для бакета ключа.
func (k *KeyedBuckets) ReserveKey(key string) (bool, time.Duration) {
	now := k.now()

	k.mu.Lock()
	entry, ok := k.buckets[key]
	if !ok {
		entry = &keyedBucket{bucket: newTokenBucket(k.capacity, k.refillRate, k.now)}
		k.buckets[key] = entry
	}
	entry.lastSeen = now
	if now.Sub(k.lastSweep) >= k.idleTTL {
		k.evictIdle(now)
	}
	k.mu.Unlock()

	return entry.bucket.Reserve()
}

// Len возвращает количество отслеживаемых ключей.
func (k *KeyedBuckets) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

func (k *KeyedBuckets) evictIdle(now time.Time) {
	for key, entry := range k.buckets {
		if now.Sub(entry.lastSeen) >= k.idleTTL && entry.bucket.full(now) {
			delete(k.buckets, key)
		}
	}
	k.lastSweep = now
}
