package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studioclass/review-api/internal/dto"
	"github.com/studioclass/review-api/internal/middleware"
	"github.com/studioclass/review-api/internal/service"
	"github.com/studioclass/review-api/internal/utils"
)

// SubmissionHandler manages the teacher dashboard's submission endpoints.
type SubmissionHandler struct {
	service service.SubmissionService
	logger  zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance.
func NewSubmissionHandler(service service.SubmissionService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Put("/:id/assess", h.assess)
	router.Delete("/:id", h.remove)
}

func (h *SubmissionHandler) list(c *fiber.Ctx) error {
	query := dto.ListSubmissionsQuery{
		SortBy: c.Query("sortBy"),
		Order:  c.Query("order"),
		Status: c.Query("status"),
	}

	submissions, err := h.service.List(c.Context(), query)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *SubmissionHandler) assess(c *fiber.Ctx) error {
	id := c.Params("id")

	var payload dto.AssessSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	teacherName := middleware.Username(c)
	if teacherName == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authenticated identity missing")
	}

	submission, err := h.service.Assess(c.Context(), id, teacherName, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission assessed", submission)
}

func (h *SubmissionHandler) remove(c *fiber.Ctx) error {
	id := c.Params("id")

	removedID, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission deleted", dto.DeleteSubmissionResponse{SubmissionID: removedID})
}

func (h *SubmissionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
