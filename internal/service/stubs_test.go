package service

import (
	"context"
	"io"

	"vidtube/internal/models"
	"vidtube/internal/storage"
	"vidtube/internal/view"
)

// fn-field stubs for every dependency a service takes. The noop constructors
// return stubs whose every call succeeds with zero values; tests override
// only the calls they care about.

type userRepoStub struct {
	createFn             func(ctx context.Context, user *models.User) error
	getByIDFn            func(ctx context.Context, id uint) (*models.User, error)
	getByIdentifierFn    func(ctx context.Context, ident string) (*models.User, error)
	existsFn             func(ctx context.Context, username, email string) (bool, error)
	updateFn             func(ctx context.Context, user *models.User) error
	updateRefreshTokenFn func(ctx context.Context, id uint, token string) error
	updatePasswordFn     func(ctx context.Context, id uint, hash string) error
	addWatchEventFn      func(ctx context.Context, userID, videoID uint) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIdentifier(ctx context.Context, ident string) (*models.User, error) {
	return s.getByIdentifierFn(ctx, ident)
}
func (s *userRepoStub) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	return s.existsFn(ctx, username, email)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateRefreshToken(ctx context.Context, id uint, token string) error {
	return s.updateRefreshTokenFn(ctx, id, token)
}
func (s *userRepoStub) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return s.updatePasswordFn(ctx, id, hash)
}
func (s *userRepoStub) AddWatchEvent(ctx context.Context, userID, videoID uint) error {
	return s.addWatchEventFn(ctx, userID, videoID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:             func(context.Context, *models.User) error { return nil },
		getByIDFn:            func(context.Context, uint) (*models.User, error) { return nil, nil },
		getByIdentifierFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		existsFn:             func(context.Context, string, string) (bool, error) { return false, nil },
		updateFn:             func(context.Context, *models.User) error { return nil },
		updateRefreshTokenFn: func(context.Context, uint, string) error { return nil },
		updatePasswordFn:     func(context.Context, uint, string) error { return nil },
		addWatchEventFn:      func(context.Context, uint, uint) error { return nil },
	}
}

type videoRepoStub struct {
	createFn         func(ctx context.Context, video *models.Video) error
	getByIDFn        func(ctx context.Context, id uint) (*models.Video, error)
	updateFn         func(ctx context.Context, video *models.Video) error
	setPublishedFn   func(ctx context.Context, id uint, published bool) error
	incrementViewsFn func(ctx context.Context, id uint) error
	deleteFn         func(ctx context.Context, id uint) error
}

func (s *videoRepoStub) Create(ctx context.Context, video *models.Video) error {
	return s.createFn(ctx, video)
}
func (s *videoRepoStub) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	return s.getByIDFn(ctx, id)
}
func (s *videoRepoStub) Update(ctx context.Context, video *models.Video) error {
	return s.updateFn(ctx, video)
}
func (s *videoRepoStub) SetPublished(ctx context.Context, id uint, published bool) error {
	return s.setPublishedFn(ctx, id, published)
}
func (s *videoRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *videoRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopVideoRepo() *videoRepoStub {
	return &videoRepoStub{
		createFn:         func(context.Context, *models.Video) error { return nil },
		getByIDFn:        func(context.Context, uint) (*models.Video, error) { return nil, nil },
		updateFn:         func(context.Context, *models.Video) error { return nil },
		setPublishedFn:   func(context.Context, uint, bool) error { return nil },
		incrementViewsFn: func(context.Context, uint) error { return nil },
		deleteFn:         func(context.Context, uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn  func(ctx context.Context, comment *models.Comment) error
	getByIDFn func(ctx context.Context, id uint) (*models.Comment, error)
	updateFn  func(ctx context.Context, comment *models.Comment) error
	deleteFn  func(ctx context.Context, id uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(context.Context, *models.Comment) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.Comment, error) { return nil, nil },
		updateFn:  func(context.Context, *models.Comment) error { return nil },
		deleteFn:  func(context.Context, uint) error { return nil },
	}
}

type likeRepoStub struct {
	toggleVideoFn   func(ctx context.Context, userID, videoID uint) (bool, error)
	toggleCommentFn func(ctx context.Context, userID, commentID uint) (bool, error)
	toggleTweetFn   func(ctx context.Context, userID, tweetID uint) (bool, error)
}

func (s *likeRepoStub) ToggleVideo(ctx context.Context, userID, videoID uint) (bool, error) {
	return s.toggleVideoFn(ctx, userID, videoID)
}
func (s *likeRepoStub) ToggleComment(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.toggleCommentFn(ctx, userID, commentID)
}
func (s *likeRepoStub) ToggleTweet(ctx context.Context, userID, tweetID uint) (bool, error) {
	return s.toggleTweetFn(ctx, userID, tweetID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		toggleVideoFn:   func(context.Context, uint, uint) (bool, error) { return false, nil },
		toggleCommentFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		toggleTweetFn:   func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}

type subRepoStub struct {
	toggleFn func(ctx context.Context, subscriberID, channelID uint) (bool, error)
}

func (s *subRepoStub) Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	return s.toggleFn(ctx, subscriberID, channelID)
}

func noopSubRepo() *subRepoStub {
	return &subRepoStub{
		toggleFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}

type playlistRepoStub struct {
	createFn      func(ctx context.Context, playlist *models.Playlist) error
	getByIDFn     func(ctx context.Context, id uint) (*models.Playlist, error)
	updateFn      func(ctx context.Context, playlist *models.Playlist) error
	deleteFn      func(ctx context.Context, id uint) error
	addVideoFn    func(ctx context.Context, playlistID, videoID uint) error
	removeVideoFn func(ctx context.Context, playlistID, videoID uint) error
}

func (s *playlistRepoStub) Create(ctx context.Context, playlist *models.Playlist) error {
	return s.createFn(ctx, playlist)
}
func (s *playlistRepoStub) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	return s.getByIDFn(ctx, id)
}
func (s *playlistRepoStub) Update(ctx context.Context, playlist *models.Playlist) error {
	return s.updateFn(ctx, playlist)
}
func (s *playlistRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *playlistRepoStub) AddVideo(ctx context.Context, playlistID, videoID uint) error {
	return s.addVideoFn(ctx, playlistID, videoID)
}
func (s *playlistRepoStub) RemoveVideo(ctx context.Context, playlistID, videoID uint) error {
	return s.removeVideoFn(ctx, playlistID, videoID)
}

func noopPlaylistRepo() *playlistRepoStub {
	return &playlistRepoStub{
		createFn:      func(context.Context, *models.Playlist) error { return nil },
		getByIDFn:     func(context.Context, uint) (*models.Playlist, error) { return nil, nil },
		updateFn:      func(context.Context, *models.Playlist) error { return nil },
		deleteFn:      func(context.Context, uint) error { return nil },
		addVideoFn:    func(context.Context, uint, uint) error { return nil },
		removeVideoFn: func(context.Context, uint, uint) error { return nil },
	}
}

type tweetRepoStub struct {
	createFn  func(ctx context.Context, tweet *models.Tweet) error
	getByIDFn func(ctx context.Context, id uint) (*models.Tweet, error)
	updateFn  func(ctx context.Context, tweet *models.Tweet) error
	deleteFn  func(ctx context.Context, id uint) error
}

func (s *tweetRepoStub) Create(ctx context.Context, tweet *models.Tweet) error {
	return s.createFn(ctx, tweet)
}
func (s *tweetRepoStub) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tweetRepoStub) Update(ctx context.Context, tweet *models.Tweet) error {
	return s.updateFn(ctx, tweet)
}
func (s *tweetRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopTweetRepo() *tweetRepoStub {
	return &tweetRepoStub{
		createFn:  func(context.Context, *models.Tweet) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.Tweet, error) { return nil, nil },
		updateFn:  func(context.Context, *models.Tweet) error { return nil },
		deleteFn:  func(context.Context, uint) error { return nil },
	}
}

type statsRepoStub struct {
	channelStatsFn func(ctx context.Context, channelID uint) (*models.ChannelStats, error)
}

func (s *statsRepoStub) ChannelStats(ctx context.Context, channelID uint) (*models.ChannelStats, error) {
	return s.channelStatsFn(ctx, channelID)
}

type storeStub struct {
	uploadFn func(ctx context.Context, r io.Reader, size int64, contentType, prefix string) (*storage.UploadResult, error)
	deleteFn func(ctx context.Context, key string) error
}

func (s *storeStub) Upload(ctx context.Context, r io.Reader, size int64, contentType, prefix string) (*storage.UploadResult, error) {
	return s.uploadFn(ctx, r, size, contentType, prefix)
}
func (s *storeStub) Delete(ctx context.Context, key string) error {
	return s.deleteFn(ctx, key)
}

func noopStore() *storeStub {
	return &storeStub{
		uploadFn: func(_ context.Context, _ io.Reader, _ int64, _, prefix string) (*storage.UploadResult, error) {
			return &storage.UploadResult{
				URL: "https://cdn.example.com/" + prefix + "/object",
				Key: prefix + "/object",
			}, nil
		},
		deleteFn: func(context.Context, string) error { return nil },
	}
}

// viewsStub records the last Build call and returns a canned page.
type viewsStub struct {
	buildFn func(ctx context.Context, name string, callerID uint, p view.Params) (*view.Page, error)

	lastView   string
	lastCaller uint
	lastParams view.Params
}

func (s *viewsStub) Build(ctx context.Context, name string, callerID uint, p view.Params) (*view.Page, error) {
	s.lastView = name
	s.lastCaller = callerID
	s.lastParams = p
	if s.buildFn != nil {
		return s.buildFn(ctx, name, callerID, p)
	}
	return &view.Page{Items: []view.Row{{}}, Page: 1, PageSize: 10, TotalItems: 1, TotalPages: 1}, nil
}
