package models

import (
	"fmt"
	"time"
)

// Response is one scored survey submission. Rows are append-only.
type Response struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	Age            *int      `json:"age"`
	Gender         string    `gorm:"type:text" json:"gender"`
	Phone          string    `gorm:"type:text" json:"phone"`
	Q1Score        int       `gorm:"column:q1_score" json:"q1_score"`
	Q2Score        int       `gorm:"column:q2_score" json:"q2_score"`
	Q3Score        int       `gorm:"column:q3_score" json:"q3_score"`
	Q4Score        int       `gorm:"column:q4_score" json:"q4_score"`
	Q5Score        int       `gorm:"column:q5_score" json:"q5_score"`
	TotalScore     int       `json:"total_score"`
	SubmissionDate time.Time `gorm:"index;not null" json:"submission_date"`
}

// TableName pins the table name used by existing deployments.
func (Response) TableName() string {
	return "responses"
}

// ScoredQuestionIDs lists the question ids the responses table has a column for.
var ScoredQuestionIDs = []string{"q1", "q2", "q3", "q4", "q5"}

// SetScore stores the per-question score in its column.
func (r *Response) SetScore(questionID string, score int) error {
	field, err := r.scoreField(questionID)
	if err != nil {
		return err
	}
	*field = score
	return nil
}

// Score returns the stored per-question score.
func (r *Response) Score(questionID string) (int, error) {
	field, err := r.scoreField(questionID)
	if err != nil {
		return 0, err
	}
	return *field, nil
}

func (r *Response) scoreField(questionID string) (*int, error) {
	switch questionID {
	case "q1":
		return &r.Q1Score, nil
	case "q2":
		return &r.Q2Score, nil
	case "q3":
		return &r.Q3Score, nil
	case "q4":
		return &r.Q4Score, nil
	case "q5":
		return &r.Q5Score, nil
	default:
		return nil, fmt.Errorf("no score column for question %q", questionID)
	}
}
