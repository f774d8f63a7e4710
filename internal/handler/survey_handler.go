package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/act-survey-api/internal/service"
	"github.com/noah-isme/act-survey-api/internal/utils"
)

// User-facing messages for rejected submissions.
const (
	msgNameRequired    = "Name is required!"
	msgAnswerAll       = "Please answer all questions!"
	msgProcessingError = "Error processing form"
)

// SurveyHandler serves the questionnaire and accepts submissions.
type SurveyHandler struct {
	service service.SurveyService
	fields  []string
	logger  zerolog.Logger
}

// NewSurveyHandler builds a survey handler instance.
func NewSurveyHandler(svc service.SurveyService, logger zerolog.Logger) *SurveyHandler {
	fields := []string{service.FieldName, service.FieldAge, service.FieldGender, service.FieldPhone}
	for _, q := range svc.Catalog().Questions {
		fields = append(fields, q.ID)
	}

	return &SurveyHandler{
		service: svc,
		fields:  fields,
		logger:  logger.With().Str("component", "survey_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group. Extra handlers run
// before the submit route.
func (h *SurveyHandler) Register(router fiber.Router, submitMiddleware ...fiber.Handler) {
	router.Get("", h.catalog)
	router.Post("/submit", append(submitMiddleware, h.Submit)...)
}

func (h *SurveyHandler) catalog(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "survey retrieved", h.service.Catalog())
}

// Submit validates, scores and stores one submission.
func (h *SurveyHandler) Submit(c *fiber.Ctx) error {
	form, err := submissionForm(c, h.fields)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Submit(c.UserContext(), form)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "survey submitted", result)
}

func (h *SurveyHandler) handleError(c *fiber.Ctx, err error) error {
	var (
		missing    *service.MissingRequiredFieldError
		incomplete *service.IncompleteSubmissionError
		invalid    *service.InvalidFieldError
	)

	switch {
	case errors.As(err, &missing):
		return utils.Fail(c, fiber.StatusUnprocessableEntity, msgNameRequired, fiber.Map{"field": missing.Field})
	case errors.As(err, &incomplete):
		return utils.Fail(c, fiber.StatusUnprocessableEntity, msgAnswerAll, fiber.Map{"question": incomplete.QuestionID})
	case errors.As(err, &invalid):
		return utils.Fail(c, fiber.StatusUnprocessableEntity, invalid.Error(), fiber.Map{"field": invalid.Field})
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to store survey response")
		return utils.SendError(c, fiber.StatusInternalServerError, msgProcessingError)
	}
}
