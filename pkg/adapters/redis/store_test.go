package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ernest-Sab/IPR-Tool/pkg/adapters/redis"
	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
	"github.com/Ernest-Sab/IPR-Tool/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return redis.NewFromClient(client, opts...), mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newTestStore(t)
	ports.RunOperationStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	store, mr := newTestStore(t, redis.WithTTL(time.Second))
	ctx := context.Background()

	rec := &domain.OperationRecord{
		ID:        "op-ttl",
		Kind:      domain.KindSmoothing,
		Status:    domain.StatusSucceeded,
		StartedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Save(ctx, rec))

	recs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	mr.FastForward(2 * time.Second)

	_, err = store.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, domain.ErrOperationNotFound)

	// Expired records have been pruned from the index too.
	recs, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRedisStore_Prefix(t *testing.T) {
	store, mr := newTestStore(t, redis.WithPrefix("studio:ops:"))
	ctx := context.Background()

	rec := &domain.OperationRecord{
		ID:        "op-1",
		Kind:      domain.KindSurfaceOffset,
		Status:    domain.StatusSucceeded,
		StartedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Save(ctx, rec))

	assert.True(t, mr.Exists("studio:ops:op-1"), "expected record key with custom prefix")
	assert.True(t, mr.Exists("studio:ops:index"), "expected index key with custom prefix")
}
