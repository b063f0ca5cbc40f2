package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studioclass/review-api/internal/service"
	"github.com/studioclass/review-api/internal/utils"
)

// StatsHandler serves the dashboard overview aggregates.
type StatsHandler struct {
	service service.StatsService
	logger  zerolog.Logger
}

// NewStatsHandler builds a stats handler instance.
func NewStatsHandler(service service.StatsService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger.With().Str("component", "stats_handler").Logger(),
	}
}

// Get returns the current aggregate counts and recent-activity preview.
func (h *StatsHandler) Get(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "stats retrieved", stats)
}
