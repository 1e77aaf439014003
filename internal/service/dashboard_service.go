package service

import (
	"context"
	"strconv"

	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/view"
)

// DashboardService serves the channel owner's private dashboard.
type DashboardService struct {
	statsRepo repository.StatsRepository
	views     view.Runner
}

func NewDashboardService(statsRepo repository.StatsRepository, views view.Runner) *DashboardService {
	return &DashboardService{statsRepo: statsRepo, views: views}
}

// Stats aggregates the caller's channel numbers.
func (s *DashboardService) Stats(ctx context.Context, userID uint) (*models.ChannelStats, error) {
	return s.statsRepo.ChannelStats(ctx, userID)
}

// Videos lists the caller's own videos, published or not.
func (s *DashboardService) Videos(ctx context.Context, userID uint, p view.Params) (*view.Page, error) {
	if p.Filters == nil {
		p.Filters = map[string]string{}
	}
	p.Filters["owner"] = strconv.FormatUint(uint64(userID), 10)
	return s.views.Build(ctx, view.VideoListView, userID, p)
}
