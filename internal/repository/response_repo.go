package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/act-survey-api/internal/models"
)

// ResponseRepository defines data operations for survey responses.
type ResponseRepository interface {
	Create(ctx context.Context, response *models.Response) error
	ListAll(ctx context.Context) ([]models.Response, error)
	Count(ctx context.Context) (int64, error)
	AverageTotalScore(ctx context.Context) (float64, error)
}

type responseRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewResponseRepository instantiates the repository.
func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db, now: time.Now}
}

// Create appends a response. The submission date always comes from the server clock.
func (r *responseRepository) Create(ctx context.Context, response *models.Response) error {
	response.ID = 0
	response.SubmissionDate = r.now().UTC()
	return r.db.WithContext(ctx).Create(response).Error
}

func (r *responseRepository) ListAll(ctx context.Context) ([]models.Response, error) {
	var responses []models.Response
	if err := r.db.WithContext(ctx).
		Model(&models.Response{}).
		Order("submission_date DESC").
		Order("id DESC").
		Find(&responses).Error; err != nil {
		return nil, err
	}

	return responses, nil
}

func (r *responseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Response{}).Count(&count).Error
	return count, err
}

func (r *responseRepository) AverageTotalScore(ctx context.Context) (float64, error) {
	var average float64
	err := r.db.WithContext(ctx).
		Model(&models.Response{}).
		Select("COALESCE(AVG(total_score), 0)").
		Scan(&average).Error
	return average, err
}
