package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/act-survey-api/internal/export"
	"github.com/noah-isme/act-survey-api/internal/service"
	"github.com/noah-isme/act-survey-api/internal/utils"
)

// AdminHandler serves the response listing and the spreadsheet export.
// It expects to be mounted behind the admin auth middleware.
type AdminHandler struct {
	surveys service.SurveyService
	reports service.ReportService
	logger  zerolog.Logger
	now     func() time.Time
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(surveys service.SurveyService, reports service.ReportService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		surveys: surveys,
		reports: reports,
		logger:  logger.With().Str("component", "admin_handler").Logger(),
		now:     time.Now,
	}
}

// Register attaches admin routes to the router group.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/responses", h.list)
	router.Get("/export", h.Export)
}

func (h *AdminHandler) list(c *fiber.Ctx) error {
	records, err := h.surveys.ListResponses(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list responses")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load responses")
	}

	return utils.OK(c, records, "responses retrieved", fiber.Map{"total": len(records)})
}

// Export streams the spreadsheet snapshot as a download.
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	workbook, err := h.reports.ExportWorkbook(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to export responses")
		return utils.SendError(c, fiber.StatusInternalServerError, "Error exporting data")
	}

	c.Attachment(export.FileName(h.now()))
	c.Set(fiber.HeaderContentType, export.ContentType)
	return c.Send(workbook)
}
