package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotAcquired means another booking currently holds the slot
	ErrNotAcquired = errors.New("slot hold not acquired")
)

// SlotLocker guards the critical section between the conflict check and the
// appointment insert for a single clinic slot.
type SlotLocker interface {
	WithSlotHold(ctx context.Context, clinicID uuid.UUID, date, slot string, fn func(ctx context.Context) error) error
}

type redisSlotLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotLocker(client *redis.Client, ttl time.Duration) SlotLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &redisSlotLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisSlotLocker) WithSlotHold(ctx context.Context, clinicID uuid.UUID, date, slot string, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("hold:slot:%s:%s:%s", clinicID, date, slot)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire slot hold: %w", err)
	}
	if !ok {
		return ErrNotAcquired
	}

	defer func() {
		_ = l.release(ctx, key, token)
	}()

	holdCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(holdCtx)
}

// releaseScript deletes the hold only if we still own it
var releaseScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisSlotLocker) release(ctx context.Context, key, token string) error {
	_, err := releaseScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release slot hold: %w", err)
	}
	return nil
}
