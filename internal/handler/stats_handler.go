package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/act-survey-api/internal/service"
	"github.com/noah-isme/act-survey-api/internal/utils"
)

// StatsHandler exposes aggregate statistics.
type StatsHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(svc service.ReportService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		service: svc,
		logger:  logger.With().Str("component", "stats_handler").Logger(),
	}
}

// Register attaches stats routes to the router group.
func (h *StatsHandler) Register(router fiber.Router) {
	router.Get("", h.get)
}

// get replies with the bare stats object so existing dashboards keep parsing it.
func (h *StatsHandler) get(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load statistics")
	}

	return c.JSON(stats)
}
