package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/raida-labs/diag-raida-api/internal/dto"
	"github.com/raida-labs/diag-raida-api/internal/service"
	"github.com/raida-labs/diag-raida-api/internal/utils"
)

// RecommendationHandler manages the recommendation endpoint.
type RecommendationHandler struct {
	service service.RecommendationService
	logger  zerolog.Logger
}

// NewRecommendationHandler builds a recommendation handler instance.
func NewRecommendationHandler(service service.RecommendationService, logger zerolog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		logger:  logger.With().Str("component", "recommendation_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *RecommendationHandler) Register(router fiber.Router) {
	router.Post("", h.generate)
}

func (h *RecommendationHandler) generate(c *fiber.Ctx) error {
	var payload dto.RecommendationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Generate(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(response)
}

func (h *RecommendationHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingAnalysis):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
