package service

import (
	"context"
	"time"

	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/scheduler"
	"github.com/asig/closed-loop/internal/store"
	"github.com/asig/closed-loop/internal/utils"
	"github.com/asig/closed-loop/models"
)

// heatmapDays is the size of the trailing activity window, ending today.
const heatmapDays = 365

// statsService is the concrete implementation of StatsService. All
// aggregates are computed by a full scan of the user's item set; the data
// volumes here make an index pointless.
//
// Calendar bucketing uses the clock's local timezone: an item reviewed at
// 23:30 and another at 00:30 the next day land in different buckets even
// though they are an hour apart.
type statsService struct {
	items  store.ItemRepository
	clock  utils.Clock
	logger *logger.Logger
}

// NewStatsService constructs a StatsService over the given item repository
// and clock.
func NewStatsService(items store.ItemRepository, clock utils.Clock, log *logger.Logger) StatsService {
	return &statsService{items: items, clock: clock, logger: log}
}

// DashboardStats computes the dashboard counters over the user's full item
// set: items currently due, items mastered, the sum of all review streaks,
// and the number of distinct calendar dates with review activity.
func (s *statsService) DashboardStats(ctx context.Context, userID string) (models.DashboardStats, error) {
	items, err := s.items.ListAllItemsForUser(ctx, userID)
	if err != nil {
		return models.DashboardStats{}, err
	}

	now := s.clock.Now()
	activeDates := make(map[string]struct{})

	var stats models.DashboardStats
	for _, item := range items {
		if scheduler.IsDue(item, now) {
			stats.Due++
		}
		if item.Status == models.StatusMastered {
			stats.Mastered++
		}
		stats.TotalReviews += item.ReviewCount

		if reviewed, ok := item.LastReviewedTime(); ok {
			activeDates[reviewed.In(now.Location()).Format(time.DateOnly)] = struct{}{}
		}
	}
	stats.ActiveDays = len(activeDates)

	return stats, nil
}

// Heatmap buckets the user's items by the calendar date of their most recent
// review, over the trailing 365 days ending today. Only the latest review
// per item is retained, so an item reviewed twice contributes to a single
// bucket, that of its later review.
func (s *statsService) Heatmap(ctx context.Context, userID string) ([]models.ActivityBucket, error) {
	items, err := s.items.ListAllItemsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -(heatmapDays - 1))

	counts := make(map[string]int)
	for _, item := range items {
		reviewed, ok := item.LastReviewedTime()
		if !ok {
			continue
		}
		counts[reviewed.In(now.Location()).Format(time.DateOnly)]++
	}

	buckets := make([]models.ActivityBucket, 0, heatmapDays)
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		date := day.Format(time.DateOnly)
		buckets = append(buckets, models.ActivityBucket{Date: date, Count: counts[date]})
	}

	return buckets, nil
}
