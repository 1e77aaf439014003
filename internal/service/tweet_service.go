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

type TweetService struct {
	tweetRepo repository.TweetRepository
	views     view.Runner
}

func NewTweetService(tweetRepo repository.TweetRepository, views view.Runner) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, views: views}
}

func (s *TweetService) Create(ctx context.Context, userID uint, content string) (*models.Tweet, error) {
	content = strings.TrimSpace(content)
	if err := validation.ValidateTweet(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	tweet := &models.Tweet{
		Content: content,
		OwnerID: userID,
	}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// ListByOwner pages through a user's tweets, newest first.
func (s *TweetService) ListByOwner(ctx context.Context, ownerID, callerID uint, p view.Params) (*view.Page, error) {
	if p.Filters == nil {
		p.Filters = map[string]string{}
	}
	p.Filters["owner"] = strconv.FormatUint(uint64(ownerID), 10)
	return s.views.Build(ctx, view.UserTweetsView, callerID, p)
}

func (s *TweetService) Update(ctx context.Context, userID, tweetID uint, content string) (*models.Tweet, error) {
	content = strings.TrimSpace(content)
	if err := validation.ValidateTweet(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	tweet, err := s.ownedTweet(ctx, tweetID, userID)
	if err != nil {
		return nil, err
	}

	tweet.Content = content
	if err := s.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) Delete(ctx context.Context, userID, tweetID uint) error {
	if _, err := s.ownedTweet(ctx, tweetID, userID); err != nil {
		return err
	}
	return s.tweetRepo.Delete(ctx, tweetID)
}

func (s *TweetService) ownedTweet(ctx context.Context, tweetID, userID uint) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet == nil {
		return nil, models.NewNotFoundError("Tweet", tweetID)
	}
	if tweet.OwnerID != userID {
		return nil, models.NewForbiddenError("You can only modify your own tweets")
	}
	return tweet, nil
}
