package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/skor-go-api/internal/dto"
	"github.com/noah-isme/skor-go-api/internal/observability"
	"github.com/noah-isme/skor-go-api/internal/scoring"
	"github.com/noah-isme/skor-go-api/internal/service"
	"github.com/noah-isme/skor-go-api/internal/utils"
)

// GradingHandler wires grading endpoints for teachers and admins.
type GradingHandler struct {
	service service.GradingService
	logger  zerolog.Logger
}

// NewGradingHandler constructs the handler.
func NewGradingHandler(service service.GradingService, logger zerolog.Logger) *GradingHandler {
	return &GradingHandler{
		service: service,
		logger:  logger.With().Str("component", "grading_handler").Logger(),
	}
}

// Register attaches grading endpoints to the router group.
func (h *GradingHandler) Register(router fiber.Router) {
	router.Patch("/:id/grade", h.grade)
}

func (h *GradingHandler) grade(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.GradeSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := activityActorFromContext(c)
	submission, err := h.service.Grade(c.Context(), id, payload, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			observability.GradingActions().WithLabelValues("not_found").Inc()
			return utils.SendError(c, fiber.StatusNotFound, "submission not found")
		case errors.Is(err, service.ErrScoreExceedsMax):
			observability.GradingActions().WithLabelValues("rejected").Inc()
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, scoring.ErrInvalidMaxScore), errors.Is(err, scoring.ErrPolicyMismatch), errors.Is(err, scoring.ErrNegativeInput):
			observability.GradingActions().WithLabelValues("rejected").Inc()
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			observability.GradingActions().WithLabelValues("rejected").Inc()
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			observability.GradingActions().WithLabelValues("failed").Inc()
			requestLogger(h.logger, c).Error().Err(err).Uint("submission_id", id).Msg("failed to grade submission")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to grade submission")
		}
	}

	observability.GradingActions().WithLabelValues("graded").Inc()
	return utils.SendSuccess(c, "submission graded", submission)
}
