package models

// ChannelStats aggregates a channel's dashboard numbers. Computed on demand,
// never persisted.
type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalLikes       int64 `json:"total_likes"`
}
