package service

import (
	"context"
	"strconv"

	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/view"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
	views       view.Runner
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
	views view.Runner,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
		views:       views,
	}
}

// ToggleVideoLike flips the caller's like on a video and reports the
// resulting state: true when the like now exists.
func (s *LikeService) ToggleVideoLike(ctx context.Context, userID, videoID uint) (bool, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return false, err
	}
	if video == nil || (!video.IsPublished && video.OwnerID != userID) {
		return false, models.NewNotFoundError("Video", videoID)
	}
	return s.likeRepo.ToggleVideo(ctx, userID, videoID)
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (bool, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return false, err
	}
	if comment == nil {
		return false, models.NewNotFoundError("Comment", commentID)
	}
	return s.likeRepo.ToggleComment(ctx, userID, commentID)
}

func (s *LikeService) ToggleTweetLike(ctx context.Context, userID, tweetID uint) (bool, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return false, err
	}
	if tweet == nil {
		return false, models.NewNotFoundError("Tweet", tweetID)
	}
	return s.likeRepo.ToggleTweet(ctx, userID, tweetID)
}

// LikedVideos lists the videos the caller has liked. Videos that have since
// been unpublished by their owners drop out of the listing.
func (s *LikeService) LikedVideos(ctx context.Context, userID uint, p view.Params) (*view.Page, error) {
	if p.Filters == nil {
		p.Filters = map[string]string{}
	}
	p.Filters["user"] = strconv.FormatUint(uint64(userID), 10)
	return s.views.Build(ctx, view.LikedVideosView, userID, p)
}
