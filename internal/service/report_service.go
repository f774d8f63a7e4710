package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/act-survey-api/internal/dto"
	"github.com/noah-isme/act-survey-api/internal/export"
	"github.com/noah-isme/act-survey-api/internal/observability"
	"github.com/noah-isme/act-survey-api/internal/repository"
)

// Cached stats live under statsCacheKey:<generation>. Every accepted submission
// bumps the generation, so a value computed before the bump is never read again.
const (
	statsCacheKey      = "survey:stats"
	statsGenerationKey = "survey:stats:gen"
)

// Score interpretation labels.
const (
	InterpretationGood     = "Good control"
	InterpretationModerate = "Moderate control"
	InterpretationPoor     = "Poor control"
)

// Thresholds for the 5..25 ACT total.
const (
	goodControlThreshold     = 20
	moderateControlThreshold = 15
)

// InterpretScore maps a total score onto its control category.
func InterpretScore(total int) string {
	switch {
	case total >= goodControlThreshold:
		return InterpretationGood
	case total >= moderateControlThreshold:
		return InterpretationModerate
	default:
		return InterpretationPoor
	}
}

// ReportService answers read-only questions about stored responses.
type ReportService interface {
	Stats(ctx context.Context) (dto.StatsResponse, error)
	Export(ctx context.Context) ([]dto.ExportRow, error)
	ExportWorkbook(ctx context.Context) ([]byte, error)
	InvalidateStats(ctx context.Context)
}

type reportService struct {
	responses repository.ResponseRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewReportService constructs the reporting service. cache may be nil.
func NewReportService(responses repository.ResponseRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ReportService {
	return &reportService{
		responses: responses,
		cache:     cache,
		cacheTTL:  ttl,
		logger:    logger.With().Str("component", "report_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/act-survey-api/internal/service/report"),
	}
}

func (s *reportService) Stats(ctx context.Context) (dto.StatsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "report.stats")
	defer span.End()

	cacheKey, cacheable := s.statsKey(ctx)
	span.SetAttributes(attribute.String("stats.cache_key", cacheKey))

	if cacheable {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var stats dto.StatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &stats); unmarshalErr == nil {
				span.SetAttributes(attribute.Bool("stats.cache_hit", true))
				return stats, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read stats cache")
			span.RecordError(err)
		}
	}

	count, err := s.responses.Count(ctx)
	if err != nil {
		return dto.StatsResponse{}, s.fail(span, "count_failed", err)
	}

	average, err := s.responses.AverageTotalScore(ctx)
	if err != nil {
		return dto.StatsResponse{}, s.fail(span, "average_failed", err)
	}

	stats := dto.StatsResponse{
		TotalResponses: count,
		AverageScore:   roundTo2(average),
	}
	span.SetAttributes(attribute.Int64("stats.total_responses", count))

	if cacheable && s.cacheTTL > 0 {
		payload, err := json.Marshal(stats)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store stats cache")
				span.RecordError(err)
			}
		}
	}

	return stats, nil
}

func (s *reportService) InvalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, statsGenerationKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate stats cache")
	}
}

// statsKey reads the current generation before any aggregate is computed. The
// cache is skipped when the generation cannot be read.
func (s *reportService) statsKey(ctx context.Context) (string, bool) {
	if s.cache == nil {
		return statsCacheKey, false
	}

	generation, err := s.cache.Get(ctx, statsGenerationKey).Int64()
	switch {
	case err == redis.Nil:
		generation = 0
	case err != nil:
		s.logger.Warn().Err(err).Msg("failed to read stats cache generation")
		return statsCacheKey, false
	}

	return fmt.Sprintf("%s:%d", statsCacheKey, generation), true
}

func (s *reportService) Export(ctx context.Context) ([]dto.ExportRow, error) {
	ctx, span := s.tracer.Start(ctx, "report.export")
	defer span.End()

	responses, err := s.responses.ListAll(ctx)
	if err != nil {
		return nil, s.fail(span, "list_failed", err)
	}

	rows := make([]dto.ExportRow, 0, len(responses))
	for _, response := range responses {
		rows = append(rows, dto.ExportRow{
			ResponseRecord:      dto.NewResponseRecord(response),
			ScoreInterpretation: InterpretScore(response.TotalScore),
		})
	}
	span.SetAttributes(attribute.Int("export.rows", len(rows)))

	return rows, nil
}

func (s *reportService) ExportWorkbook(ctx context.Context) ([]byte, error) {
	rows, err := s.Export(ctx)
	if err != nil {
		observability.ExportsTotal().WithLabelValues(observability.OutcomeFailed).Inc()
		return nil, err
	}

	workbook, err := export.WriteXLSX(rows)
	if err != nil {
		observability.ExportsTotal().WithLabelValues(observability.OutcomeFailed).Inc()
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}

	observability.ExportsTotal().WithLabelValues(observability.OutcomeAccepted).Inc()
	s.logger.Info().Int("rows", len(rows)).Msg("survey export generated")

	return workbook, nil
}

func (s *reportService) fail(span trace.Span, status string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, status)
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

// roundTo2 rounds half away from zero to two decimals.
func roundTo2(value float64) float64 {
	return math.Round(value*100) / 100
}
