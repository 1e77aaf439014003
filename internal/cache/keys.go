package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache TTLs tuned per access pattern.
const (
	VideoTTL          = 5 * time.Minute
	ChannelProfileTTL = 2 * time.Minute
	TokenBlacklistTTL = 24 * time.Hour
)

// VideoKey returns the cache key for a published video detail.
func VideoKey(id uint) string {
	return fmt.Sprintf("video:%d", id)
}

// ChannelKey returns the cache key for a channel profile looked up by username.
func ChannelKey(username string) string {
	return fmt.Sprintf("channel:%s", username)
}

// BlacklistKey returns the key marking a revoked access token by its JTI claim.
func BlacklistKey(jti string) string {
	return fmt.Sprintf("token:blacklist:%s", jti)
}

// Invalidate removes the given keys from the cache. Missing keys are not an
// error.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateVideo drops the cached detail for a video after a write touching
// it (new comment, like toggle, update, delete).
func InvalidateVideo(ctx context.Context, id uint) {
	Invalidate(ctx, VideoKey(id))
}

// InvalidateChannel drops the cached channel profile for a user.
func InvalidateChannel(ctx context.Context, username string) {
	Invalidate(ctx, ChannelKey(username))
}
