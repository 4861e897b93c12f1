package eventcache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BelleVueSalon/salon-booking-api/internal/config"
)

// Store remembers which webhook events have already been handled, so a
// redelivered event skips the notification path. It is advisory only:
// the paid-status check against the database is the real idempotency
// guarantee, so redis being down just means a duplicate email at worst.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(cfg config.RedisConfig) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &Store{
		rdb: rdb,
		ttl: 24 * time.Hour,
	}
}

// Seen reports whether the event id has already been recorded.
func (s *Store) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, "webhook:event:"+eventID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkProcessed records the event id and reports whether this is the
// first time it was seen. Callers must only record an event once its
// handling actually succeeded, otherwise a failed delivery would be
// suppressed instead of redelivered.
func (s *Store) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	return s.rdb.SetNX(ctx, "webhook:event:"+eventID, 1, s.ttl).Result()
}
