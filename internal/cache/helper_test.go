package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(c)
	t.Cleanup(func() {
		SetClient(nil)
		c.Close()
	})
	return mr
}

type cachedProfile struct {
	Username string `json:"username"`
	Views    int    `json:"views"`
}

func TestGetSetJSON(t *testing.T) {
	useMiniredis(t)
	ctx := context.Background()

	t.Run("miss on empty cache", func(t *testing.T) {
		var dest cachedProfile
		found, err := GetJSON(ctx, "missing", &dest)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("round trip", func(t *testing.T) {
		in := cachedProfile{Username: "kim", Views: 3}
		require.NoError(t, SetJSON(ctx, "profile", in, time.Minute))

		var out cachedProfile
		found, err := GetJSON(ctx, "profile", &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, in, out)
	})
}

func TestHelpersAreNoopsWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "k", "v", time.Minute))
	var dest string
	found, err := GetJSON(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	calls := 0
	err = CacheAside(ctx, "k", &dest, time.Minute, func() error {
		calls++
		dest = "fetched"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "without a cache every read goes to the fetcher")
	assert.Equal(t, "fetched", dest)

	Invalidate(ctx, "k")
}

func TestCacheAside(t *testing.T) {
	useMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedProfile) func() error {
		return func() error {
			calls++
			*dest = cachedProfile{Username: "kim", Views: calls}
			return nil
		}
	}

	var first cachedProfile
	require.NoError(t, CacheAside(ctx, "profile", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)

	var second cachedProfile
	require.NoError(t, CacheAside(ctx, "profile", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls, "second read is served from the cache")
	assert.Equal(t, first, second)
}

func TestInvalidate(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, VideoKey(3), "detail", time.Minute))
	require.NoError(t, SetJSON(ctx, ChannelKey("kim"), "profile", time.Minute))

	InvalidateVideo(ctx, 3)
	assert.False(t, mr.Exists(VideoKey(3)))
	assert.True(t, mr.Exists(ChannelKey("kim")))

	InvalidateChannel(ctx, "kim")
	assert.False(t, mr.Exists(ChannelKey("kim")))
}

func TestKeys(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "video:3", VideoKey(3))
	assert.Equal(t, "channel:kim", ChannelKey("kim"))
	assert.Equal(t, "token:blacklist:abc", BlacklistKey("abc"))
}
