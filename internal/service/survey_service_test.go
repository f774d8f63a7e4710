package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/act-survey-api/internal/catalog"
	"github.com/noah-isme/act-survey-api/internal/events"
	"github.com/noah-isme/act-survey-api/internal/models"
	"github.com/noah-isme/act-survey-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func setupSurveyTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Response{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

type recordingPublisher struct {
	events []events.ResponseSubmitted
	err    error
}

func (p *recordingPublisher) PublishResponseSubmitted(_ context.Context, event events.ResponseSubmitted) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() {}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) InvalidateStats(context.Context) {
	c.calls++
}

type failingResponseRepo struct {
	repository.ResponseRepository
}

func (failingResponseRepo) Create(context.Context, *models.Response) error {
	return errors.New("disk full")
}

func (failingResponseRepo) ListAll(context.Context) ([]models.Response, error) {
	return nil, errors.New("disk full")
}

func newSurveyFixture(t *testing.T) (SurveyService, repository.ResponseRepository, *recordingPublisher, *countingInvalidator) {
	t.Helper()

	repo := repository.NewResponseRepository(setupSurveyTestDB(t))
	publisher := &recordingPublisher{}
	invalidator := &countingInvalidator{}
	svc, err := NewSurveyService(newTestScorer(), repo, publisher, invalidator, testLogger())
	require.NoError(t, err)

	return svc, repo, publisher, invalidator
}

func TestSurveyServiceSubmitEndToEnd(t *testing.T) {
	svc, repo, publisher, invalidator := newSurveyFixture(t)
	ctx := context.Background()

	result, err := svc.Submit(ctx, validForm("A", "A", "A", "A", "A"))
	require.NoError(t, err)
	require.Equal(t, "Li", result.Name)
	require.Equal(t, 5, result.TotalScore)
	require.Equal(t, 25, result.MaxScore)
	require.NotZero(t, result.ID)

	items, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	stored := items[0]
	require.Equal(t, "Li", stored.Name)
	require.Equal(t, 30, *stored.Age)
	require.Equal(t, "F", stored.Gender)
	require.Equal(t, "123", stored.Phone)
	for _, id := range models.ScoredQuestionIDs {
		score, err := stored.Score(id)
		require.NoError(t, err)
		require.Equal(t, 1, score)
	}
	require.Equal(t, 5, stored.TotalScore)
	require.False(t, stored.SubmissionDate.IsZero())

	require.Len(t, publisher.events, 1)
	require.Equal(t, result.ID, publisher.events[0].ResponseID)
	require.Equal(t, 1, invalidator.calls)

	stats, err := NewReportService(repo, nil, 0, testLogger()).Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.TotalResponses)
	require.Equal(t, 5.0, stats.AverageScore)
}

func TestSurveyServiceRejectedSubmissionsAreNotStored(t *testing.T) {
	svc, repo, publisher, invalidator := newSurveyFixture(t)
	ctx := context.Background()

	noName := validForm("A", "A", "A", "A", "A")
	delete(noName, FieldName)
	_, err := svc.Submit(ctx, noName)
	require.True(t, errors.Is(err, ErrMissingRequiredField))

	_, err = svc.Submit(ctx, validForm("A", "A", "A", "A"))
	require.True(t, errors.Is(err, ErrIncompleteSubmission))

	_, err = svc.Submit(ctx, validForm("A", "A", "A", "A", "G"))
	require.True(t, errors.Is(err, ErrIncompleteSubmission))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
	require.Empty(t, publisher.events)
	require.Zero(t, invalidator.calls)
}

func TestSurveyServicePublishFailureDoesNotFailSubmission(t *testing.T) {
	svc, repo, publisher, _ := newSurveyFixture(t)
	publisher.err = errors.New("nats down")

	_, err := svc.Submit(context.Background(), validForm("E", "E", "E", "E", "E"))
	require.NoError(t, err)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestSurveyServicePersistenceError(t *testing.T) {
	svc, err := NewSurveyService(newTestScorer(), failingResponseRepo{}, nil, nil, testLogger())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), validForm("A", "A", "A", "A", "A"))
	require.True(t, errors.Is(err, ErrPersistence))
	require.False(t, IsValidationError(err))

	_, err = svc.ListResponses(context.Background())
	require.True(t, errors.Is(err, ErrPersistence))
}

func TestSurveyServiceListResponsesMostRecentFirst(t *testing.T) {
	svc, _, _, _ := newSurveyFixture(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, validForm("A", "A", "A", "A", "A"))
	require.NoError(t, err)
	second, err := svc.Submit(ctx, validForm("E", "E", "E", "E", "E"))
	require.NoError(t, err)

	records, err := svc.ListResponses(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, second.ID, records[0].ID)
	require.Equal(t, first.ID, records[1].ID)
}

func TestNewSurveyServiceRejectsUnstorableCatalog(t *testing.T) {
	c, err := catalog.New([]catalog.Question{
		{ID: "q1", Options: []catalog.Option{{Code: "A", Score: 1}}},
		{ID: "q6", Options: []catalog.Option{{Code: "A", Score: 1}}},
	})
	require.NoError(t, err)

	_, err = NewSurveyService(NewResponseScorer(c, nil), failingResponseRepo{}, nil, nil, testLogger())
	require.Error(t, err)
}

func TestSurveyServiceCatalog(t *testing.T) {
	svc, _, _, _ := newSurveyFixture(t)

	def := svc.Catalog()
	require.Len(t, def.Questions, 5)
	require.Equal(t, 25, def.MaxScore)
	require.Equal(t, "q1", def.Questions[0].ID)
	require.Len(t, def.Questions[0].Options, 5)
}
