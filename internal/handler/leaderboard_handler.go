package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/skor-go-api/internal/service"
	"github.com/noah-isme/skor-go-api/internal/utils"
)

// LeaderboardHandler serves class leaderboard endpoints.
type LeaderboardHandler struct {
	service service.LeaderboardService
	logger  zerolog.Logger
}

// NewLeaderboardHandler constructs the handler.
func NewLeaderboardHandler(service service.LeaderboardService, logger zerolog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
		logger:  logger.With().Str("component", "leaderboard_handler").Logger(),
	}
}

// Register attaches the leaderboard routes to the class router group.
// Extra guards only apply to the recompute endpoint.
func (h *LeaderboardHandler) Register(router fiber.Router, recomputeGuards ...fiber.Handler) {
	router.Get("/:classID/leaderboard", h.get)

	handlers := make([]fiber.Handler, 0, len(recomputeGuards)+1)
	handlers = append(handlers, recomputeGuards...)
	handlers = append(handlers, h.recompute)
	router.Post("/:classID/leaderboard/recompute", handlers...)
}

func (h *LeaderboardHandler) get(c *fiber.Ctx) error {
	classID, err := parseUintParam(c, "classID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class identifier")
	}

	leaderboard, err := h.service.Get(c.Context(), classID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Uint("class_id", classID).Msg("failed to load leaderboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load leaderboard")
	}

	return utils.SendSuccess(c, "leaderboard retrieved", leaderboard)
}

func (h *LeaderboardHandler) recompute(c *fiber.Ctx) error {
	classID, err := parseUintParam(c, "classID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class identifier")
	}

	leaderboard, err := h.service.Recompute(c.Context(), classID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Uint("class_id", classID).Msg("failed to recompute leaderboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to recompute leaderboard")
	}

	return utils.SendSuccess(c, "leaderboard recomputed", leaderboard)
}
