package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/LocalBizGo/internal/store"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *Backend) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	b := New(client, "")
	t.Cleanup(func() { _ = b.Close() })
	return mr, b
}

func TestBackend_LoadMissing(t *testing.T) {
	_, b := setupRedis(t)
	_, err := b.Load(context.Background(), "reviews")
	assert.ErrorIs(t, err, store.ErrNotExist)
}

func TestBackend_SaveUsesPrefixedKey(t *testing.T) {
	mr, b := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, "reviews", []byte(`[{"id":"r1"}]`)))

	raw, err := mr.Get("localbiz:collection:reviews")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"r1"}]`, raw)

	data, err := b.Load(ctx, "reviews")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"r1"}]`, string(data))
}

func TestBackend_NoExpiry(t *testing.T) {
	mr, b := setupRedis(t)
	require.NoError(t, b.Save(context.Background(), "users", []byte(`[]`)))
	assert.Zero(t, mr.TTL("localbiz:collection:users"))
}

func TestBackend_Ping(t *testing.T) {
	mr, b := setupRedis(t)
	require.NoError(t, b.Ping(context.Background()))

	mr.Close()
	assert.Error(t, b.Ping(context.Background()))
}

func TestBackend_UnavailableSurfacesAsStorageError(t *testing.T) {
	mr, b := setupRedis(t)
	s := store.New("redis", b, nil)
	mr.Close()

	_, err := store.Open[map[string]any](s, "categories").List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_UNAVAILABLE")
}

func TestBackend_LockExcludesSecondHolder(t *testing.T) {
	mr, b := setupRedis(t)
	ctx := context.Background()

	unlock, err := b.Lock(ctx, "reviews")
	require.NoError(t, err)
	assert.True(t, mr.Exists("localbiz:collection:reviews:lock"))
	assert.Equal(t, lockTTL, mr.TTL("localbiz:collection:reviews:lock"))

	short, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
	defer cancel()
	_, err = b.Lock(short, "reviews")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("localbiz:collection:reviews:lock"))

	again, err := b.Lock(ctx, "reviews")
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestBackend_UnlockLeavesExpiredLockTakenByOthers(t *testing.T) {
	mr, b := setupRedis(t)
	ctx := context.Background()

	stale, err := b.Lock(ctx, "users")
	require.NoError(t, err)
	mr.FastForward(lockTTL + time.Second)

	fresh, err := b.Lock(ctx, "users")
	require.NoError(t, err)

	require.NoError(t, stale(ctx))
	assert.True(t, mr.Exists("localbiz:collection:users:lock"))
	require.NoError(t, fresh(ctx))
	assert.False(t, mr.Exists("localbiz:collection:users:lock"))
}

// Two stores over one redis stand in for two replicas: their in-process
// mutexes are independent, so only the redis lock prevents lost updates.
func TestStore_MutateAcrossStoresLosesNoUpdates(t *testing.T) {
	mr := miniredis.RunT(t)
	newStore := func() *store.Store {
		b := New(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "")
		t.Cleanup(func() { _ = b.Close() })
		return store.New("redis", b, nil)
	}
	replicas := []*store.Store{newStore(), newStore()}

	const perReplica = 15
	var wg sync.WaitGroup
	for r, s := range replicas {
		col := store.Open[string](s, "reviews")
		for i := 0; i < perReplica; i++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				err := col.Mutate(context.Background(), func(items []string) ([]string, error) {
					return append(items, id), nil
				})
				assert.NoError(t, err)
			}(fmt.Sprintf("r%d-%d", r, i))
		}
	}
	wg.Wait()

	all, err := store.Open[string](replicas[0], "reviews").List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2*perReplica)
	assert.False(t, mr.Exists("localbiz:collection:reviews:lock"))
}
