// Package ratelimiter provides token bucket rate limiting with pluggable
// storage and HTTP middleware.
//
// A Bucket allows bursts up to Config.Capacity and refills RefillRate tokens
// every RefillInterval. State lives in a Store: MemoryStore for a single
// instance, RedisStore to share limits between instances.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       30,
//		RefillRate:     1,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.MiddlewareConfig{})).Post("/api/qr", h)
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every response, plus Retry-After on 429.
package ratelimiter
