package dto

import (
	"time"

	"github.com/samber/lo"

	"github.com/noah-isme/act-survey-api/internal/catalog"
	"github.com/noah-isme/act-survey-api/internal/models"
)

// OptionalFields carries the respondent details that may be left blank.
type OptionalFields struct {
	Age    string `validate:"omitempty,numeric"`
	Gender string `validate:"omitempty,max=32"`
	Phone  string `validate:"omitempty,max=32"`
}

// OptionResponse describes one answer option for form rendering.
type OptionResponse struct {
	Code  string `json:"code"`
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// QuestionResponse describes one question for form rendering.
type QuestionResponse struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Options []OptionResponse `json:"options"`
}

// CatalogResponse is returned by the survey definition endpoint.
type CatalogResponse struct {
	Questions []QuestionResponse `json:"questions"`
	MaxScore  int                `json:"max_score"`
}

// SubmissionResult is returned after a successful submission.
type SubmissionResult struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	TotalScore int    `json:"total_score"`
	MaxScore   int    `json:"max_score"`
}

// StatsResponse summarises stored responses.
type StatsResponse struct {
	TotalResponses int64   `json:"total_responses"`
	AverageScore   float64 `json:"average_score"`
}

// ResponseRecord is the admin view of a stored response.
type ResponseRecord struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Age            *int      `json:"age"`
	Gender         string    `json:"gender"`
	Phone          string    `json:"phone"`
	Q1Score        int       `json:"q1_score"`
	Q2Score        int       `json:"q2_score"`
	Q3Score        int       `json:"q3_score"`
	Q4Score        int       `json:"q4_score"`
	Q5Score        int       `json:"q5_score"`
	TotalScore     int       `json:"total_score"`
	SubmissionDate time.Time `json:"submission_date"`
}

// ExportRow is a stored response plus its derived interpretation.
type ExportRow struct {
	ResponseRecord
	ScoreInterpretation string `json:"score_interpretation"`
}

// NewCatalogResponse converts the catalog into its wire form.
func NewCatalogResponse(c *catalog.Catalog) CatalogResponse {
	return CatalogResponse{
		Questions: lo.Map(c.Questions(), func(q catalog.Question, _ int) QuestionResponse {
			return QuestionResponse{
				ID:   q.ID,
				Text: q.Text,
				Options: lo.Map(q.Options, func(o catalog.Option, _ int) OptionResponse {
					return OptionResponse{Code: o.Code, Text: o.Text, Score: o.Score}
				}),
			}
		}),
		MaxScore: c.MaxScore(),
	}
}

// NewResponseRecord converts a Response model into a DTO.
func NewResponseRecord(model models.Response) ResponseRecord {
	return ResponseRecord{
		ID:             model.ID,
		Name:           model.Name,
		Age:            model.Age,
		Gender:         model.Gender,
		Phone:          model.Phone,
		Q1Score:        model.Q1Score,
		Q2Score:        model.Q2Score,
		Q3Score:        model.Q3Score,
		Q4Score:        model.Q4Score,
		Q5Score:        model.Q5Score,
		TotalScore:     model.TotalScore,
		SubmissionDate: model.SubmissionDate,
	}
}

// NewResponseRecordSlice converts response models into DTOs.
func NewResponseRecordSlice(items []models.Response) []ResponseRecord {
	return lo.Map(items, func(item models.Response, _ int) ResponseRecord {
		return NewResponseRecord(item)
	})
}
