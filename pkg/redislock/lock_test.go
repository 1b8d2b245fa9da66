package redislock

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T) (SlotLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSlotLocker(client, time.Second), mr
}

func TestWithSlotHold_RunsAndReleases(t *testing.T) {
	locker, mr := newLocker(t)

	clinicID := uuid.New()
	key := fmt.Sprintf("hold:slot:%s:2025-03-10:14:00", clinicID)

	called := false
	err := locker.WithSlotHold(context.Background(), clinicID, "2025-03-10", "14:00", func(ctx context.Context) error {
		called = true
		assert.True(t, mr.Exists(key), "hold must be present inside the critical section")
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, mr.Exists(key), "hold must be released afterwards")
}

func TestWithSlotHold_ContendedSlot(t *testing.T) {
	locker, mr := newLocker(t)

	clinicID := uuid.New()
	key := fmt.Sprintf("hold:slot:%s:2025-03-10:14:00", clinicID)
	require.NoError(t, mr.Set(key, "other-booking"))

	err := locker.WithSlotHold(context.Background(), clinicID, "2025-03-10", "14:00", func(ctx context.Context) error {
		t.Fatal("critical section must not run")
		return nil
	})
	assert.ErrorIs(t, err, ErrNotAcquired)

	// the foreign hold is left untouched
	val, _ := mr.Get(key)
	assert.Equal(t, "other-booking", val)
}

func TestWithSlotHold_PropagatesCallbackError(t *testing.T) {
	locker, mr := newLocker(t)

	boom := errors.New("insert failed")
	clinicID := uuid.New()
	err := locker.WithSlotHold(context.Background(), clinicID, "2025-03-10", "14:00", func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// released even on failure
	key := fmt.Sprintf("hold:slot:%s:2025-03-10:14:00", clinicID)
	assert.False(t, mr.Exists(key))
}

func TestWithSlotHold_DistinctSlotsDoNotContend(t *testing.T) {
	locker, _ := newLocker(t)
	clinicID := uuid.New()

	err := locker.WithSlotHold(context.Background(), clinicID, "2025-03-10", "14:00", func(ctx context.Context) error {
		return locker.WithSlotHold(ctx, clinicID, "2025-03-10", "14:30", func(ctx context.Context) error {
			return nil
		})
	})
	assert.NoError(t, err)
}
