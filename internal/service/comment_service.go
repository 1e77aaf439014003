package service

import (
	"context"
	"strconv"
	"strings"

	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/validation"
	"vidtube/internal/view"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	views       view.Runner
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
	views view.Runner,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		views:       views,
	}
}

// ListByVideo pages through a video's comments, newest first.
func (s *CommentService) ListByVideo(ctx context.Context, videoID, callerID uint, p view.Params) (*view.Page, error) {
	if err := s.requireVisibleVideo(ctx, videoID, callerID); err != nil {
		return nil, err
	}
	if p.Filters == nil {
		p.Filters = map[string]string{}
	}
	p.Filters["video"] = strconv.FormatUint(uint64(videoID), 10)
	return s.views.Build(ctx, view.VideoCommentsView, callerID, p)
}

func (s *CommentService) Add(ctx context.Context, userID, videoID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if err := validation.ValidateComment(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if err := s.requireVisibleVideo(ctx, videoID, userID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		OwnerID: userID,
		VideoID: videoID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, userID, commentID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if err := validation.ValidateComment(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment, err := s.ownedComment(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, userID, commentID uint) error {
	if _, err := s.ownedComment(ctx, commentID, userID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func (s *CommentService) ownedComment(ctx context.Context, commentID, userID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	if comment.OwnerID != userID {
		return nil, models.NewForbiddenError("You can only modify your own comments")
	}
	return comment, nil
}

// requireVisibleVideo 404s for videos the caller cannot see, so the existence
// of unpublished videos never leaks through the comments API.
func (s *CommentService) requireVisibleVideo(ctx context.Context, videoID, callerID uint) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video == nil || (!video.IsPublished && video.OwnerID != callerID) {
		return models.NewNotFoundError("Video", videoID)
	}
	return nil
}
