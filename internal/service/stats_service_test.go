package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/studioclass/review-api/internal/models"
	"github.com/studioclass/review-api/internal/repository"
)

func seedStatsSubmission(t *testing.T, repo repository.SubmissionRepository, score int, status string, createdAt time.Time) {
	t.Helper()

	require.NoError(t, repo.Insert(context.Background(), &models.Submission{
		StudentID: "7",
		FileName:  "a.png",
		AIScore:   score,
		Status:    status,
		CreatedAt: createdAt,
	}))
}

func TestStatsOnEmptyStore(t *testing.T) {
	svc := NewStatsService(repository.NewMemorySubmissionRepository(), nil, 0, testLogger())

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.TotalSubmissions)
	require.Zero(t, stats.PendingReview)
	require.Zero(t, stats.AverageAIScore)
	require.NotNil(t, stats.RecentSubmissions)
	require.Empty(t, stats.RecentSubmissions)
	require.Equal(t, 0, stats.StatusCounts[models.StatusPending])
	require.Equal(t, 0, stats.StatusCounts[models.StatusExcellent])
}

func TestStatsAggregates(t *testing.T) {
	repo := repository.NewMemorySubmissionRepository()
	now := time.Now().UTC()

	scores := []int{80, 85, 90, 95, 88, 92, 84}
	statuses := []string{
		models.StatusPending, models.StatusPending, models.StatusGood,
		models.StatusExcellent, models.StatusGood, models.StatusNeedsWork,
		models.StatusPending,
	}
	for i := range scores {
		seedStatsSubmission(t, repo, scores[i], statuses[i], now.Add(time.Duration(i)*time.Minute))
	}

	svc := NewStatsService(repo, nil, 0, testLogger())
	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	require.Equal(t, 7, stats.TotalSubmissions)
	require.Equal(t, 3, stats.PendingReview)
	require.Equal(t, 2, stats.StatusCounts[models.StatusGood])
	require.Equal(t, 1, stats.StatusCounts[models.StatusExcellent])
	require.Equal(t, 88, stats.AverageAIScore) // round(614/7)

	require.Len(t, stats.RecentSubmissions, 5)
	// Preview is newest-first.
	require.Equal(t, 84, stats.RecentSubmissions[0].AIScore)
}

func TestStatsCacheServesStaleReads(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	repo := repository.NewMemorySubmissionRepository()
	seedStatsSubmission(t, repo, 90, models.StatusPending, time.Now().UTC())

	svc := NewStatsService(repo, cache, 30*time.Second, testLogger())

	first, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.TotalSubmissions)
	require.True(t, mr.Exists(statsCacheKey))

	// A second submission is invisible until the cached entry expires.
	seedStatsSubmission(t, repo, 80, models.StatusPending, time.Now().UTC())

	cached, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, cached.TotalSubmissions)

	mr.FastForward(time.Minute)

	fresh, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, fresh.TotalSubmissions)
}
