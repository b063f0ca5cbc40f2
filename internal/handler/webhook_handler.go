package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studioclass/review-api/internal/dto"
	"github.com/studioclass/review-api/internal/repository"
	"github.com/studioclass/review-api/internal/service"
	"github.com/studioclass/review-api/internal/utils"
)

// WebhookHandler receives bot-forwarded submissions. The endpoint is
// deliberately unauthenticated: the bot is a trusted caller reached only over
// the deployment's private network.
type WebhookHandler struct {
	service service.SubmissionService
	logger  zerolog.Logger
}

// NewWebhookHandler builds a webhook handler instance.
func NewWebhookHandler(service service.SubmissionService, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		logger:  logger.With().Str("component", "webhook_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *WebhookHandler) Register(router fiber.Router) {
	router.Post("/submission", h.create)
}

func (h *WebhookHandler) create(c *fiber.Ctx) error {
	var payload dto.WebhookSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.CreateFromWebhook(c.Context(), payload)
	if err != nil {
		var validationErrors validator.ValidationErrors
		switch {
		case errors.As(err, &validationErrors):
			return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
		case errors.Is(err, repository.ErrMissingFields):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("webhook processing failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendCreated(c, "submission received", dto.WebhookAck{SubmissionID: submission.ID})
}
