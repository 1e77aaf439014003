package service

import (
	"context"
	"strconv"

	"vidtube/internal/cache"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/view"
)

type SubscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
	views    view.Runner
}

func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	views view.Runner,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:  subRepo,
		userRepo: userRepo,
		views:    views,
	}
}

// Toggle flips the caller's subscription to a channel and reports the
// resulting state. Self-subscription is rejected.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	if subscriberID == channelID {
		return false, models.NewValidationError("You cannot subscribe to your own channel")
	}

	channel, err := s.userRepo.GetByID(ctx, channelID)
	if err != nil {
		return false, err
	}
	if channel == nil {
		return false, models.NewNotFoundError("Channel", channelID)
	}

	subscribed, err := s.subRepo.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return false, err
	}
	cache.InvalidateChannel(ctx, channel.Username)
	return subscribed, nil
}

// Subscribers lists the users subscribed to a channel.
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID, callerID uint, p view.Params) (*view.Page, error) {
	if err := s.requireUser(ctx, channelID, "Channel"); err != nil {
		return nil, err
	}
	if p.Filters == nil {
		p.Filters = map[string]string{}
	}
	p.Filters["channel"] = strconv.FormatUint(uint64(channelID), 10)
	return s.views.Build(ctx, view.ChannelSubscribersView, callerID, p)
}

// Subscriptions lists the channels a user is subscribed to.
func (s *SubscriptionService) Subscriptions(ctx context.Context, subscriberID, callerID uint, p view.Params) (*view.Page, error) {
	if err := s.requireUser(ctx, subscriberID, "User"); err != nil {
		return nil, err
	}
	if p.Filters == nil {
		p.Filters = map[string]string{}
	}
	p.Filters["subscriber"] = strconv.FormatUint(uint64(subscriberID), 10)
	return s.views.Build(ctx, view.SubscribedChannelsView, callerID, p)
}

func (s *SubscriptionService) requireUser(ctx context.Context, id uint, resource string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError(resource, id)
	}
	return nil
}
