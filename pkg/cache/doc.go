// Package cache provides a generic in-memory LRU cache with optional TTL.
//
//	c := cache.NewLRU[string, []byte](1024, cache.WithTTL[string, []byte](time.Hour))
//	c.Put("key", data)
//	if v, ok := c.Get("key"); ok {
//		// use v
//	}
//
// All methods are safe for concurrent use.
package cache
