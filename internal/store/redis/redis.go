// Package redis stores each collection as a single string key.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/utafrali/LocalBizGo/internal/store"
)

// DefaultKeyPrefix namespaces collection keys.
const DefaultKeyPrefix = "localbiz:collection:"

const (
	lockTTL     = 10 * time.Second
	lockWaitMin = 5 * time.Millisecond
	lockWaitMax = 200 * time.Millisecond
)

// unlockScript deletes the lock only if it still holds our token, so an
// expired lock re-taken by another process is left alone.
var unlockScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Backend implements store.Backend on Redis.
type Backend struct {
	client goredis.UniversalClient
	prefix string
}

// New wraps client. The backend owns the client and closes it on Close.
func New(client goredis.UniversalClient, prefix string) *Backend {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Backend{client: client, prefix: prefix}
}

func (b *Backend) key(collection string) string {
	return b.prefix + collection
}

func (b *Backend) Load(ctx context.Context, collection string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key(collection)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, store.ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *Backend) Save(ctx context.Context, collection string, data []byte) error {
	return b.client.Set(ctx, b.key(collection), data, 0).Err()
}

func (b *Backend) lockKey(collection string) string {
	return b.key(collection) + ":lock"
}

// Lock takes a SET NX lock with a token and TTL, polling with backoff until
// it is free or ctx is done.
func (b *Backend) Lock(ctx context.Context, collection string) (func(context.Context) error, error) {
	key := b.lockKey(collection)
	token := uuid.NewString()
	wait := lockWaitMin

	for {
		ok, err := b.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func(ctx context.Context) error {
				return unlockScript.Run(ctx, b.client, []string{key}, token).Err()
			}, nil
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, fmt.Errorf("wait for %s lock: %w", collection, ctx.Err())
		case <-t.C:
		}
		wait = min(wait*2, lockWaitMax)
	}
}

var _ store.Locker = (*Backend)(nil)

func (b *Backend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *Backend) Close() error {
	return b.client.Close()
}
