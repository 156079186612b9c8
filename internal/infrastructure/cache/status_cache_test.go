package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/domain/evaluator"
	"github.com/bivex/school-access/internal/domain/valueobject"
)

func setupCache(t *testing.T) *StatusCache {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewStatusCache(client, zap.NewNop())
}

func activeView(label string) (evaluator.Snapshot, evaluator.View) {
	snap := evaluator.Snapshot{Status: "active", Plan: "monthly"}
	view := evaluator.View{
		Status:    valueobject.StatusActive,
		Label:     label,
		HasAccess: true,
	}
	return snap, view
}

func TestStatusCache_SetAndGet(t *testing.T) {
	cache := setupCache(t)
	ctx := context.Background()
	schoolID := uuid.New()

	snap, view := activeView("10d 0h")
	applied, err := cache.Set(ctx, schoolID, snap, view, 100)
	require.NoError(t, err)
	assert.True(t, applied)

	cached, err := cache.Get(ctx, schoolID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, uint64(100), cached.Seq)
	assert.Equal(t, snap, cached.Snapshot)
	assert.Equal(t, view, cached.View)
}

func TestStatusCache_GetMiss(t *testing.T) {
	cache := setupCache(t)

	cached, err := cache.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestStatusCache_StaleWriteDropped(t *testing.T) {
	cache := setupCache(t)
	ctx := context.Background()
	schoolID := uuid.New()

	newSnap, newView := activeView("10d 0h")
	applied, err := cache.Set(ctx, schoolID, newSnap, newView, 200)
	require.NoError(t, err)
	require.True(t, applied)

	staleSnap, staleView := activeView("11d 0h")
	applied, err = cache.Set(ctx, schoolID, staleSnap, staleView, 100)
	require.NoError(t, err)
	assert.False(t, applied)

	cached, err := cache.Get(ctx, schoolID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, uint64(200), cached.Seq)
	assert.Equal(t, "10d 0h", cached.View.Label)
}

func TestStatusCache_NewerWriteWins(t *testing.T) {
	cache := setupCache(t)
	ctx := context.Background()
	schoolID := uuid.New()

	oldSnap, oldView := activeView("10d 0h")
	_, err := cache.Set(ctx, schoolID, oldSnap, oldView, 100)
	require.NoError(t, err)

	newSnap, newView := activeView("9d 23h")
	applied, err := cache.Set(ctx, schoolID, newSnap, newView, 300)
	require.NoError(t, err)
	assert.True(t, applied)

	cached, err := cache.Get(ctx, schoolID)
	require.NoError(t, err)
	assert.Equal(t, "9d 23h", cached.View.Label)
}

// Nanosecond sequences sit far above float64's integer range, so two
// fetches one tick apart must still order correctly.
func TestStatusCache_AdjacentNanosecondSequences(t *testing.T) {
	cache := setupCache(t)
	ctx := context.Background()
	schoolID := uuid.New()

	base := uint64(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC).UnixNano())

	newSnap, newView := activeView("newer")
	applied, err := cache.Set(ctx, schoolID, newSnap, newView, base+1)
	require.NoError(t, err)
	require.True(t, applied)

	staleSnap, staleView := activeView("older")
	applied, err = cache.Set(ctx, schoolID, staleSnap, staleView, base)
	require.NoError(t, err)
	assert.False(t, applied)

	cached, err := cache.Get(ctx, schoolID)
	require.NoError(t, err)
	assert.Equal(t, "newer", cached.View.Label)
}

func TestStatusCache_Invalidate(t *testing.T) {
	cache := setupCache(t)
	ctx := context.Background()
	schoolID := uuid.New()

	snap, view := activeView("10d 0h")
	_, err := cache.Set(ctx, schoolID, snap, view, 100)
	require.NoError(t, err)

	require.NoError(t, cache.Invalidate(ctx, schoolID))

	cached, err := cache.Get(ctx, schoolID)
	require.NoError(t, err)
	assert.Nil(t, cached)

	// Invalidation clears the sequence too, an older fetch may refill
	applied, err := cache.Set(ctx, schoolID, snap, view, 50)
	require.NoError(t, err)
	assert.True(t, applied)
}
