package service

import (
	"errors"
	"html"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/noah-isme/act-survey-api/internal/catalog"
	"github.com/noah-isme/act-survey-api/internal/dto"
	"github.com/noah-isme/act-survey-api/internal/models"
)

// Respondent form field names.
const (
	FieldName   = "name"
	FieldAge    = "age"
	FieldGender = "gender"
	FieldPhone  = "phone"
)

const maxAge = 150

// SubmissionForm maps a field name to its submitted value; nil means the field was absent.
type SubmissionForm map[string]*string

// Value returns the trimmed field value and whether it was present and non-blank.
func (f SubmissionForm) Value(field string) (string, bool) {
	raw, ok := f[field]
	if !ok || raw == nil {
		return "", false
	}
	value := strings.TrimSpace(*raw)
	return value, value != ""
}

// Answer returns the option code exactly as submitted and whether the field was present.
func (f SubmissionForm) Answer(questionID string) (string, bool) {
	raw, ok := f[questionID]
	if !ok || raw == nil || *raw == "" {
		return "", false
	}
	return *raw, true
}

// QuestionScore is the scored answer to one question.
type QuestionScore struct {
	QuestionID string
	Code       string
	Score      int
}

// ScoredResponse is a fully validated submission that has not been persisted yet.
type ScoredResponse struct {
	Name       string
	Age        *int
	Gender     string
	Phone      string
	Scores     []QuestionScore
	TotalScore int
}

// Model maps the scored submission onto the responses table.
func (s ScoredResponse) Model() (models.Response, error) {
	response := models.Response{
		Name:       s.Name,
		Age:        s.Age,
		Gender:     s.Gender,
		Phone:      s.Phone,
		TotalScore: s.TotalScore,
	}
	for _, score := range s.Scores {
		if err := response.SetScore(score.QuestionID, score.Score); err != nil {
			return models.Response{}, err
		}
	}
	return response, nil
}

// ResponseScorer validates raw submissions against a catalog and scores them.
type ResponseScorer struct {
	catalog   *catalog.Catalog
	validator *validator.Validate
	sanitizer *bluemonday.Policy
}

// NewResponseScorer builds a scorer bound to the given catalog.
func NewResponseScorer(c *catalog.Catalog, validate *validator.Validate) *ResponseScorer {
	return &ResponseScorer{
		catalog:   c,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Catalog exposes the catalog the scorer validates against.
func (s *ResponseScorer) Catalog() *catalog.Catalog {
	return s.catalog
}

// Score checks the name, then every question in catalog order, and sums the point values.
// The first failed check is returned.
func (s *ResponseScorer) Score(form SubmissionForm) (ScoredResponse, error) {
	name, _ := form.Value(FieldName)
	name = s.clean(name)
	if name == "" {
		return ScoredResponse{}, &MissingRequiredFieldError{Field: FieldName}
	}

	questions := s.catalog.Questions()
	scores := make([]QuestionScore, 0, len(questions))
	total := 0
	for _, q := range questions {
		code, ok := form.Answer(q.ID)
		if !ok {
			return ScoredResponse{}, &IncompleteSubmissionError{QuestionID: q.ID}
		}
		points, err := s.catalog.Score(q.ID, code)
		if err != nil {
			return ScoredResponse{}, &IncompleteSubmissionError{QuestionID: q.ID, Err: err}
		}
		scores = append(scores, QuestionScore{QuestionID: q.ID, Code: code, Score: points})
		total += points
	}

	optional := dto.OptionalFields{}
	optional.Age, _ = form.Value(FieldAge)
	gender, _ := form.Value(FieldGender)
	optional.Gender = s.clean(gender)
	phone, _ := form.Value(FieldPhone)
	optional.Phone = s.clean(phone)

	if err := s.validator.Struct(optional); err != nil {
		return ScoredResponse{}, optionalFieldError(err)
	}

	age, err := parseAge(optional.Age)
	if err != nil {
		return ScoredResponse{}, err
	}

	return ScoredResponse{
		Name:       name,
		Age:        age,
		Gender:     optional.Gender,
		Phone:      optional.Phone,
		Scores:     scores,
		TotalScore: total,
	}, nil
}

func (s *ResponseScorer) clean(value string) string {
	// Ampersands are escaped first so typed entities such as "&lt;" survive as text.
	// Unescaping then only undoes the escaping the sanitizer applied itself.
	escaped := strings.ReplaceAll(value, "&", "&amp;")
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(escaped)))
}

func parseAge(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	age, err := strconv.Atoi(value)
	if err != nil || age < 0 || age > maxAge {
		return nil, &InvalidFieldError{Field: FieldAge, Reason: "must be a whole number between 0 and 150"}
	}
	return &age, nil
}

func optionalFieldError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return &InvalidFieldError{Field: strings.ToLower(fe.Field()), Reason: "failed " + fe.Tag() + " check"}
	}
	return &InvalidFieldError{Field: "form", Reason: err.Error()}
}
