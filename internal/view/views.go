package view

// Registered view names.
const (
	VideoListView          = "VideoListView"
	VideoDetailView        = "VideoDetailView"
	VideoCommentsView      = "VideoCommentsView"
	UserTweetsView         = "UserTweetsView"
	LikedVideosView        = "LikedVideosView"
	PlaylistView           = "PlaylistView"
	UserPlaylistsView      = "UserPlaylistsView"
	ChannelProfileView     = "ChannelProfileView"
	ChannelSubscribersView = "ChannelSubscribersView"
	SubscribedChannelsView = "SubscribedChannelsView"
	WatchHistoryView       = "WatchHistoryView"
)

// ownerJoin is the common "single related owner" join: collapse to the first
// matched user, expose only public profile fields.
func ownerJoin(localKey, as string) JoinSpec {
	return JoinSpec{
		Table:      "users",
		LocalKey:   localKey,
		ForeignKey: "id",
		As:         as,
		Collapse:   true,
		SoftDelete: true,
		Project:    []string{"id", "username", "full_name", "avatar_url"},
	}
}

// videoJoin joins full video rows with the uniform visibility rule applied.
func videoJoin(localKey, as string, collapse bool) JoinSpec {
	return JoinSpec{
		Table:      "videos",
		LocalKey:   localKey,
		ForeignKey: "id",
		As:         as,
		Collapse:   collapse,
		SoftDelete: true,
		Visibility: VisibilityPublishedOrOwner,
		Project: []string{
			"id", "title", "description", "owner_id", "thumbnail_url",
			"duration", "views", "is_published", "created_at",
		},
	}
}

func init() {
	Register(&Spec{
		Name:       VideoListView,
		Resource:   "Video",
		Table:      "videos",
		SoftDelete: true,
		Visibility: VisibilityPublishedOrOwner,
		Filters: []FilterSpec{
			{Name: "owner", Column: "owner_id", Kind: FilterID},
			{Name: "query", Columns: []string{"title", "description"}, Kind: FilterText},
		},
		Joins: []JoinSpec{
			ownerJoin("owner_id", "owner"),
		},
		Project: []string{
			"id", "title", "description", "owner_id", "owner", "thumbnail_url",
			"duration", "views", "is_published", "created_at",
		},
		SortFields: map[string]string{
			"created_at": "created_at",
			"views":      "views",
			"duration":   "duration",
			"title":      "title",
		},
	})

	Register(&Spec{
		Name:       VideoDetailView,
		Resource:   "Video",
		Table:      "videos",
		SoftDelete: true,
		Detail:     true,
		Visibility: VisibilityPublishedOrOwner,
		Filters: []FilterSpec{
			{Name: "id", Column: "id", Kind: FilterID, Required: true},
		},
		Joins: []JoinSpec{
			{Table: "likes", LocalKey: "id", ForeignKey: "video_id", As: "likes", Hidden: true},
			{Table: "comments", LocalKey: "id", ForeignKey: "video_id", As: "comments", Hidden: true, SoftDelete: true},
			{
				Table:      "users",
				LocalKey:   "owner_id",
				ForeignKey: "id",
				As:         "owner",
				Collapse:   true,
				SoftDelete: true,
				Joins: []JoinSpec{
					{Table: "subscriptions", LocalKey: "id", ForeignKey: "channel_id", As: "subscribers", Hidden: true},
				},
				Derived: []DerivedField{
					{Name: "subscribers_count", Kind: DerivedCount, Of: "subscribers"},
					{Name: "is_subscribed", Kind: DerivedExists, Of: "subscribers", MatchColumn: "subscriber_id"},
				},
				Project: []string{
					"id", "username", "full_name", "avatar_url",
					"subscribers_count", "is_subscribed",
				},
			},
		},
		Derived: []DerivedField{
			{Name: "likes_count", Kind: DerivedCount, Of: "likes"},
			{Name: "comments_count", Kind: DerivedCount, Of: "comments"},
			{Name: "is_liked", Kind: DerivedExists, Of: "likes", MatchColumn: "user_id"},
		},
		Project: []string{
			"id", "title", "description", "owner_id", "owner", "video_url",
			"thumbnail_url", "duration", "views", "is_published", "created_at",
			"likes_count", "comments_count", "is_liked",
		},
		SortFields: map[string]string{"created_at": "created_at"},
	})

	Register(&Spec{
		Name:       VideoCommentsView,
		Resource:   "Comment",
		Table:      "comments",
		SoftDelete: true,
		Filters: []FilterSpec{
			{Name: "video", Column: "video_id", Kind: FilterID, Required: true},
		},
		Joins: []JoinSpec{
			{Table: "likes", LocalKey: "id", ForeignKey: "comment_id", As: "likes", Hidden: true},
			ownerJoin("owner_id", "owner"),
		},
		Derived: []DerivedField{
			{Name: "likes_count", Kind: DerivedCount, Of: "likes"},
			{Name: "is_liked", Kind: DerivedExists, Of: "likes", MatchColumn: "user_id"},
		},
		Project: []string{
			"id", "content", "owner_id", "owner", "video_id", "created_at",
			"likes_count", "is_liked",
		},
		SortFields: map[string]string{"created_at": "created_at"},
	})

	Register(&Spec{
		Name:       UserTweetsView,
		Resource:   "Tweet",
		Table:      "tweets",
		SoftDelete: true,
		Filters: []FilterSpec{
			{Name: "owner", Column: "owner_id", Kind: FilterID, Required: true},
		},
		Joins: []JoinSpec{
			{Table: "likes", LocalKey: "id", ForeignKey: "tweet_id", As: "likes", Hidden: true},
			ownerJoin("owner_id", "owner"),
		},
		Derived: []DerivedField{
			{Name: "likes_count", Kind: DerivedCount, Of: "likes"},
			{Name: "is_liked", Kind: DerivedExists, Of: "likes", MatchColumn: "user_id"},
		},
		Project: []string{
			"id", "content", "owner_id", "owner", "created_at",
			"likes_count", "is_liked",
		},
		SortFields: map[string]string{"created_at": "created_at"},
	})

	Register(&Spec{
		Name:     LikedVideosView,
		Resource: "Like",
		Table:    "likes",
		Static:   []Cond{{SQL: "video_id IS NOT NULL"}},
		Filters: []FilterSpec{
			{Name: "user", Column: "user_id", Kind: FilterID, Required: true},
		},
		Joins: []JoinSpec{
			videoJoin("video_id", "video", true),
		},
		Project:    []string{"id", "video", "created_at"},
		SortFields: map[string]string{"created_at": "created_at"},
	})

	Register(&Spec{
		Name:       PlaylistView,
		Resource:   "Playlist",
		Table:      "playlists",
		SoftDelete: true,
		Detail:     true,
		Filters: []FilterSpec{
			{Name: "id", Column: "id", Kind: FilterID, Required: true},
		},
		Joins: []JoinSpec{
			ownerJoin("owner_id", "owner"),
			playlistVideosJoin(),
		},
		Derived: []DerivedField{
			{Name: "videos_count", Kind: DerivedCount, Of: "videos"},
		},
		Project: []string{
			"id", "name", "description", "owner_id", "owner", "videos",
			"videos_count", "created_at", "updated_at",
		},
		SortFields: map[string]string{"created_at": "created_at"},
	})

	Register(&Spec{
		Name:       UserPlaylistsView,
		Resource:   "Playlist",
		Table:      "playlists",
		SoftDelete: true,
		Filters: []FilterSpec{
			{Name: "owner", Column: "owner_id", Kind: FilterID, Required: true},
		},
		Joins: []JoinSpec{
			playlistVideosJoin(),
		},
		Derived: []DerivedField{
			{Name: "videos_count", Kind: DerivedCount, Of: "videos"},
		},
		Project: []string{
			"id", "name", "description", "owner_id", "videos", "videos_count",
			"created_at", "updated_at",
		},
		SortFields: map[string]string{"created_at": "created_at", "name": "name"},
	})

	Register(&Spec{
		Name:       ChannelProfileView,
		Resource:   "Channel",
		Table:      "users",
		SoftDelete: true,
		Detail:     true,
		Filters: []FilterSpec{
			{Name: "username", Column: "username", Kind: FilterString, Required: true},
		},
		Joins: []JoinSpec{
			{Table: "subscriptions", LocalKey: "id", ForeignKey: "channel_id", As: "subscribers", Hidden: true},
			{Table: "subscriptions", LocalKey: "id", ForeignKey: "subscriber_id", As: "subscribed_to", Hidden: true},
		},
		Derived: []DerivedField{
			{Name: "subscribers_count", Kind: DerivedCount, Of: "subscribers"},
			{Name: "subscribed_to_count", Kind: DerivedCount, Of: "subscribed_to"},
			{Name: "is_subscribed", Kind: DerivedExists, Of: "subscribers", MatchColumn: "subscriber_id"},
		},
		Project: []string{
			"id", "username", "full_name", "email", "avatar_url", "cover_url",
			"subscribers_count", "subscribed_to_count", "is_subscribed",
			"created_at",
		},
		SortFields: map[string]string{"created_at": "created_at"},
	})

	Register(&Spec{
		Name:     ChannelSubscribersView,
		Resource: "Subscription",
		Table:    "subscriptions",
		Filters: []FilterSpec{
			{Name: "channel", Column: "channel_id", Kind: FilterID, Required: true},
		},
		Joins: []JoinSpec{
			ownerJoin("subscriber_id", "subscriber"),
		},
		Project:    []string{"id", "subscriber", "created_at"},
		SortFields: map[string]string{"created_at": "created_at"},
	})

	Register(&Spec{
		Name:     SubscribedChannelsView,
		Resource: "Subscription",
		Table:    "subscriptions",
		Filters: []FilterSpec{
			{Name: "subscriber", Column: "subscriber_id", Kind: FilterID, Required: true},
		},
		Joins: []JoinSpec{
			ownerJoin("channel_id", "channel"),
		},
		Project:    []string{"id", "channel", "created_at"},
		SortFields: map[string]string{"created_at": "created_at"},
	})

	Register(&Spec{
		Name:     WatchHistoryView,
		Resource: "WatchEvent",
		Table:    "watch_events",
		Filters: []FilterSpec{
			{Name: "user", Column: "user_id", Kind: FilterID, Required: true},
		},
		Joins: []JoinSpec{
			videoJoin("video_id", "video", true),
		},
		Project:    []string{"id", "video", "created_at"},
		SortFields: map[string]string{"created_at": "created_at"},
	})
}

// playlistVideosJoin resolves playlist membership through the join table and
// then the visible videos themselves.
func playlistVideosJoin() JoinSpec {
	return JoinSpec{
		Table:      "videos",
		LocalKey:   "id",
		ForeignKey: "id",
		As:         "videos",
		SoftDelete: true,
		Visibility: VisibilityPublishedOrOwner,
		Through: &Through{
			Table:      "playlist_videos",
			ForeignKey: "playlist_id",
			TargetKey:  "video_id",
		},
		Project: []string{
			"id", "title", "description", "owner_id", "thumbnail_url",
			"duration", "views", "is_published", "created_at",
		},
	}
}
