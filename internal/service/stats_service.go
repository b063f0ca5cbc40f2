package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/studioclass/review-api/internal/dto"
	"github.com/studioclass/review-api/internal/models"
	"github.com/studioclass/review-api/internal/repository"
)

const statsCacheKey = "review:stats:overview"

// StatsService aggregates the dashboard overview numbers.
type StatsService interface {
	GetStats(ctx context.Context) (dto.StatsResponse, error)
}

type statsService struct {
	submissions repository.SubmissionRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewStatsService builds the stats aggregator. The redis client is optional;
// without it every call computes from the store directly.
func NewStatsService(submissions repository.SubmissionRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) StatsService {
	return &statsService{
		submissions: submissions,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "stats_service").Logger(),
	}
}

func (s *statsService) GetStats(ctx context.Context) (dto.StatsResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey).Result(); err == nil {
			var response dto.StatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Msg("stats cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read stats cache")
		}
	}

	submissions, err := s.submissions.List(ctx, repository.ListOptions{SortBy: "createdAt", Order: "desc"})
	if err != nil {
		return dto.StatsResponse{}, err
	}

	response := buildStats(submissions)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store stats cache")
			}
		}
	}

	return response, nil
}

func buildStats(submissions []models.Submission) dto.StatsResponse {
	statusCounts := map[string]int{
		models.StatusPending:   0,
		models.StatusExcellent: 0,
		models.StatusGood:      0,
		models.StatusNeedsWork: 0,
	}

	var scoreTotal int
	for _, submission := range submissions {
		statusCounts[submission.Status]++
		scoreTotal += submission.AIScore
	}

	average := 0
	if len(submissions) > 0 {
		average = int(math.Round(float64(scoreTotal) / float64(len(submissions))))
	}

	recent := submissions
	if len(recent) > 5 {
		recent = recent[:5]
	}
	// Keep the preview a non-nil slice so the JSON shape stays stable.
	preview := append([]models.Submission{}, recent...)

	return dto.StatsResponse{
		TotalSubmissions:  len(submissions),
		PendingReview:     statusCounts[models.StatusPending],
		StatusCounts:      statusCounts,
		AverageAIScore:    average,
		RecentSubmissions: preview,
	}
}
