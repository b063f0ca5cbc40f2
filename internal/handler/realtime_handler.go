package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/studioclass/review-api/internal/service"
)

// RealtimeHandler upgrades dashboard viewers onto the live-update channel.
type RealtimeHandler struct {
	hub    *service.RealtimeHub
	logger zerolog.Logger
}

// NewRealtimeHandler builds a realtime handler instance.
func NewRealtimeHandler(hub *service.RealtimeHub, logger zerolog.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		hub:    hub,
		logger: logger.With().Str("component", "realtime_handler").Logger(),
	}
}

// Register binds the websocket upgrade route on the provided router.
func (h *RealtimeHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/ws", websocket.New(h.handleConnection))
}

func (h *RealtimeHandler) handleConnection(conn *websocket.Conn) {
	h.logger.Info().Str("remote", conn.RemoteAddr().String()).Msg("viewer websocket connected")
	h.hub.ServeConnection(conn)
	h.logger.Info().Str("remote", conn.RemoteAddr().String()).Msg("viewer websocket disconnected")
}
