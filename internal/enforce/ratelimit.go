package enforce

import (
	"strconv"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
)

type rateLimitBucket struct {
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// RateLimitMonitor tracks Discord's per-route rate-limit headers so workers
// skip calls that would be rejected anyway.
type RateLimitMonitor struct {
	mu      sync.RWMutex
	buckets map[string]*rateLimitBucket
}

func NewRateLimitMonitor() *RateLimitMonitor {
	return &RateLimitMonitor{
		buckets: make(map[string]*rateLimitBucket),
	}
}

func (rlm *RateLimitMonitor) CanExecute(route, guildID string) bool {
	key := route + ":" + guildID

	rlm.mu.RLock()
	bucket, exists := rlm.buckets[key]
	rlm.mu.RUnlock()

	if !exists {
		return true
	}
	if time.Now().After(bucket.ResetAt) {
		return true
	}
	return bucket.Remaining > 0
}

func (rlm *RateLimitMonitor) UpdateFromResponse(resp *fasthttp.Response, route, guildID string) {
	key := route + ":" + guildID

	bucket := &rateLimitBucket{}
	if remaining := string(resp.Header.Peek("X-RateLimit-Remaining")); remaining != "" {
		bucket.Remaining, _ = strconv.Atoi(remaining)
	}
	if limit := string(resp.Header.Peek("X-RateLimit-Limit")); limit != "" {
		bucket.Limit, _ = strconv.Atoi(limit)
	}
	if reset := string(resp.Header.Peek("X-RateLimit-Reset")); reset != "" {
		resetUnix, _ := strconv.ParseFloat(reset, 64)
		bucket.ResetAt = time.Unix(int64(resetUnix), 0)
	}

	rlm.mu.Lock()
	rlm.buckets[key] = bucket
	rlm.mu.Unlock()
}
