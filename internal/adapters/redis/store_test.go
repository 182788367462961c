package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/valence/internal/adapters/redis"
	"github.com/aretw0/valence/pkg/domain"
	"github.com/aretw0/valence/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	_, store := setup(t)
	ports.RunDocumentStoreContract(t, store)
}

func TestRedisStore_KeyLayout(t *testing.T) {
	mr, store := setup(t, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "index", domain.NewDocument("index")))

	assert.True(t, mr.Exists("test:doc:index"))
	members, err := mr.ZMembers("test:index")
	require.NoError(t, err)
	assert.Equal(t, []string{"index"}, members, "a document named index does not clash with the index key")

	require.NoError(t, store.Ping(ctx))
}

func TestRedisStore_TTL(t *testing.T) {
	mr, store := setup(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short", domain.NewDocument("short")))
	assert.Equal(t, time.Minute, mr.TTL(valenceKey("short")))

	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, "short")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	mr, store := setup(t)
	require.NoError(t, mr.Set(valenceKey("bad"), "{not json"))

	_, err := store.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDocumentNotFound)
}

func valenceKey(id string) string {
	return redis.DefaultPrefix + "doc:" + id
}
