package ratelimiter

import (
	"context"
	"time"
)

// Store persists bucket state. ConsumeTokens refills the bucket for elapsed
// intervals and takes n tokens when enough are available. A negative
// remaining value reports a rejected request; rejected requests leave the
// bucket untouched. n == 0 only refreshes state.
type Store interface {
	ConsumeTokens(ctx context.Context, key string, n int, config Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}
