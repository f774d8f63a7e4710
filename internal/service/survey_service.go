package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noah-isme/act-survey-api/internal/dto"
	"github.com/noah-isme/act-survey-api/internal/events"
	"github.com/noah-isme/act-survey-api/internal/models"
	"github.com/noah-isme/act-survey-api/internal/observability"
	"github.com/noah-isme/act-survey-api/internal/repository"
)

// SurveyService runs the validate, score and persist flow for submissions.
type SurveyService interface {
	Catalog() dto.CatalogResponse
	Submit(ctx context.Context, form SubmissionForm) (dto.SubmissionResult, error)
	ListResponses(ctx context.Context) ([]dto.ResponseRecord, error)
}

// StatsInvalidator drops cached aggregates after the store changes.
type StatsInvalidator interface {
	InvalidateStats(ctx context.Context)
}

type surveyService struct {
	scorer    *ResponseScorer
	responses repository.ResponseRepository
	publisher events.Publisher
	stats     StatsInvalidator
	logger    zerolog.Logger
}

// NewSurveyService constructs a SurveyService. It fails when the scorer's catalog
// contains questions the responses table cannot store.
func NewSurveyService(scorer *ResponseScorer, responses repository.ResponseRepository, publisher events.Publisher, stats StatsInvalidator, logger zerolog.Logger) (SurveyService, error) {
	var probe models.Response
	for _, id := range scorer.Catalog().IDs() {
		if err := probe.SetScore(id, 0); err != nil {
			return nil, fmt.Errorf("catalog not storable: %w", err)
		}
	}

	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return &surveyService{
		scorer:    scorer,
		responses: responses,
		publisher: publisher,
		stats:     stats,
		logger:    logger.With().Str("component", "survey_service").Logger(),
	}, nil
}

func (s *surveyService) Catalog() dto.CatalogResponse {
	return dto.NewCatalogResponse(s.scorer.Catalog())
}

func (s *surveyService) Submit(ctx context.Context, form SubmissionForm) (dto.SubmissionResult, error) {
	scored, err := s.scorer.Score(form)
	if err != nil {
		observability.SubmissionsTotal().WithLabelValues(observability.OutcomeRejected).Inc()
		return dto.SubmissionResult{}, err
	}

	response, err := scored.Model()
	if err != nil {
		observability.SubmissionsTotal().WithLabelValues(observability.OutcomeFailed).Inc()
		return dto.SubmissionResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.responses.Create(ctx, &response); err != nil {
		observability.SubmissionsTotal().WithLabelValues(observability.OutcomeFailed).Inc()
		return dto.SubmissionResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	observability.SubmissionsTotal().WithLabelValues(observability.OutcomeAccepted).Inc()
	s.logger.Info().
		Uint("response_id", response.ID).
		Int("total_score", response.TotalScore).
		Msg("survey response stored")

	if s.stats != nil {
		s.stats.InvalidateStats(ctx)
	}

	event := events.ResponseSubmitted{
		ResponseID:  response.ID,
		TotalScore:  response.TotalScore,
		SubmittedAt: response.SubmissionDate,
	}
	if err := s.publisher.PublishResponseSubmitted(ctx, event); err != nil {
		s.logger.Warn().Err(err).Uint("response_id", response.ID).Msg("failed to publish response event")
	}

	return dto.SubmissionResult{
		ID:         response.ID,
		Name:       response.Name,
		TotalScore: response.TotalScore,
		MaxScore:   s.scorer.Catalog().MaxScore(),
	}, nil
}

func (s *surveyService) ListResponses(ctx context.Context) ([]dto.ResponseRecord, error) {
	responses, err := s.responses.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return dto.NewResponseRecordSlice(responses), nil
}
