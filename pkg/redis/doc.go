// Package redis connects to an optional redis server and exposes small
// helpers on top of github.com/redis/go-redis/v9.
//
//	if cfg.Redis.Enabled() {
//		client, err := redis.Connect(ctx, cfg.Redis)
//		if err != nil {
//			return err
//		}
//		defer client.Close()
//		store := redis.NewStorage(client, "qrgen:render:")
//	}
//
// Connect retries the initial ping, Healthcheck adapts a client into a
// readiness probe and Storage is a prefixed byte store used for shared
// caches. Errors wrap the package sentinels via errors.Join.
package redis
