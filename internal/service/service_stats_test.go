package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/utils"
	"github.com/asig/closed-loop/models"
)

var statsInstant = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestStatsService(items []models.ReviewItem) StatsService {
	repo := &mockItemRepository{
		listAllItemsForUserFn: func(ctx context.Context, userID string) ([]models.ReviewItem, error) {
			return items, nil
		},
	}

	return NewStatsService(repo, utils.FixedClock{Time: statsInstant}, logger.Nop())
}

func TestStatsService_DashboardStats(t *testing.T) {
	now := statsInstant
	items := []models.ReviewItem{
		// Due: learning, past due time.
		{Status: models.StatusLearning, ReviewCount: 2, NextReviewAt: now.Add(-time.Hour).UnixMilli(), LastReviewedAt: now.Add(-24 * time.Hour).UnixMilli()},
		// Not due yet.
		{Status: models.StatusLearning, ReviewCount: 1, NextReviewAt: now.Add(time.Hour).UnixMilli(), LastReviewedAt: now.Add(-24 * time.Hour).UnixMilli()},
		// Mastered items are never due, whatever their due time says.
		{Status: models.StatusMastered, ReviewCount: 3, NextReviewAt: now.Add(-time.Hour).UnixMilli(), LastReviewedAt: now.Add(-48 * time.Hour).UnixMilli()},
		// Fresh item, never reviewed, due immediately.
		{Status: models.StatusNew, ReviewCount: 0, NextReviewAt: now.UnixMilli()},
	}

	stats, err := newTestStatsService(items).DashboardStats(context.Background(), "u-1")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Due)
	assert.Equal(t, 1, stats.Mastered)
	assert.Equal(t, 6, stats.TotalReviews)
	assert.Equal(t, 2, stats.ActiveDays, "two distinct review dates across all items")
}

func TestStatsService_DashboardStatsEmpty(t *testing.T) {
	stats, err := newTestStatsService(nil).DashboardStats(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{}, stats)
}

func TestStatsService_HeatmapWindow(t *testing.T) {
	buckets, err := newTestStatsService(nil).Heatmap(context.Background(), "u-1")
	require.NoError(t, err)

	require.Len(t, buckets, 365)
	assert.Equal(t, "2024-03-11", buckets[0].Date, "window starts 364 days before today")
	assert.Equal(t, "2025-03-10", buckets[364].Date, "window ends today")
	for _, b := range buckets {
		assert.Zero(t, b.Count)
	}
}

func TestStatsService_HeatmapBucketsByLastReview(t *testing.T) {
	now := statsInstant
	items := []models.ReviewItem{
		{Status: models.StatusLearning, LastReviewedAt: now.UnixMilli()},
		{Status: models.StatusLearning, LastReviewedAt: now.Add(-2 * time.Hour).UnixMilli()},
		{Status: models.StatusMastered, LastReviewedAt: now.AddDate(0, 0, -1).UnixMilli()},
		// Never reviewed, contributes nowhere.
		{Status: models.StatusNew},
		// Outside the trailing window.
		{Status: models.StatusMastered, LastReviewedAt: now.AddDate(-2, 0, 0).UnixMilli()},
	}

	buckets, err := newTestStatsService(items).Heatmap(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, buckets, 365)

	byDate := make(map[string]int, len(buckets))
	for _, b := range buckets {
		byDate[b.Date] = b.Count
	}

	assert.Equal(t, 2, byDate["2025-03-10"])
	assert.Equal(t, 1, byDate["2025-03-09"])
}

// Only the most recent review timestamp is kept per item, so reviewing the
// same item on a second day moves its contribution instead of adding one.
func TestStatsService_HeatmapHistoryTruncation(t *testing.T) {
	now := statsInstant

	item := models.ReviewItem{Status: models.StatusLearning, LastReviewedAt: now.AddDate(0, 0, -3).UnixMilli()}

	// Reviewed again two days later; the earlier day's activity is lost.
	item.LastReviewedAt = now.AddDate(0, 0, -1).UnixMilli()

	buckets, err := newTestStatsService([]models.ReviewItem{item}).Heatmap(context.Background(), "u-1")
	require.NoError(t, err)

	byDate := make(map[string]int, len(buckets))
	for _, b := range buckets {
		byDate[b.Date] = b.Count
	}

	assert.Equal(t, 1, byDate["2025-03-09"], "count lands on the later review day")
	assert.Equal(t, 0, byDate["2025-03-07"], "the earlier review day shows nothing")
}
