package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/LocalBizGo/internal/store"
)

func openInMemory(t *testing.T) *Backend {
	t.Helper()
	b, err := Open("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBackend_LoadMissing(t *testing.T) {
	b := openInMemory(t)
	_, err := b.Load(context.Background(), "businesses")
	assert.ErrorIs(t, err, store.ErrNotExist)
}

func TestBackend_SaveAndLoad(t *testing.T) {
	b := openInMemory(t)
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, "businesses", []byte(`[{"id":"b1"}]`)))
	require.NoError(t, b.Save(ctx, "categories", []byte(`[]`)))

	data, err := b.Load(ctx, "businesses")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"b1"}]`, string(data))

	data, err = b.Load(ctx, "categories")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestBackend_ReopenFromDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	b, err := Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, b.Save(ctx, "users", []byte(`[{"id":"u1"}]`)))
	require.NoError(t, b.Close())

	b, err = Open(dir, nil)
	require.NoError(t, err)
	defer b.Close()

	data, err := b.Load(ctx, "users")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"u1"}]`, string(data))
}

func TestBackend_PingAfterClose(t *testing.T) {
	b, err := Open("", nil)
	require.NoError(t, err)
	require.NoError(t, b.Ping(context.Background()))
	require.NoError(t, b.Close())
	assert.Error(t, b.Ping(context.Background()))
}
