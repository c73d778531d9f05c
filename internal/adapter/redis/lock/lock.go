// Package lock is a single-key distributed mutex on Redis. The holder owns
// the key through a random token; the key expires on its own if the holder
// dies without releasing.
package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/skillhub-backend/internal/domain"
)

// EnrichmentKey guards the enrichment batch job.
const EnrichmentKey = "locks:skill_enrich"

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker acquires and releases one named lock.
type Locker struct {
	client goredis.UniversalClient
	key    string
	log    *slog.Logger
}

// New creates a Locker for key.
func New(client goredis.UniversalClient, key string, logger *slog.Logger) *Locker {
	return &Locker{
		client: client,
		key:    key,
		log:    logger.With("adapter", "lock", "key", key),
	}
}

// Acquire sets the key to a fresh token with the given TTL if it is free.
// It returns domain.ErrLockHeld when another owner holds the key.
func (l *Locker) Acquire(ctx context.Context, ttl time.Duration) (domain.Lease, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.key, token, ttl).Result()
	if err != nil {
		return domain.Lease{}, fmt.Errorf("lock.Acquire %s: %w", l.key, err)
	}
	if !ok {
		return domain.Lease{}, fmt.Errorf("lock.Acquire %s: %w", l.key, domain.ErrLockHeld)
	}

	l.log.DebugContext(ctx, "lock acquired", slog.Duration("ttl", ttl))
	return domain.Lease{Key: l.key, Token: token}, nil
}

// Release deletes the key if it still holds lease.Token. A lease that expired
// or was taken over by another owner is left alone.
func (l *Locker) Release(ctx context.Context, lease domain.Lease) error {
	deleted, err := releaseScript.Run(ctx, l.client, []string{lease.Key}, lease.Token).Int()
	if err != nil {
		return fmt.Errorf("lock.Release %s: %w", lease.Key, err)
	}
	if deleted == 0 {
		l.log.WarnContext(ctx, "lock not released: expired or held by another owner")
		return nil
	}

	l.log.DebugContext(ctx, "lock released")
	return nil
}
