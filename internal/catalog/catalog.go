// Package catalog holds the immutable question/option/point-value definition
// a survey is scored against.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var (
	// ErrUnknownQuestion indicates the question id is not part of the catalog.
	ErrUnknownQuestion = errors.New("unknown question")
	// ErrMissingOption indicates the letter code is not an option of the question.
	ErrMissingOption = errors.New("missing option")
	// ErrInvalidCatalog indicates the definition violates a catalog invariant.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Option is a single selectable answer of a question.
type Option struct {
	Code  string `json:"code"`
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Question is a prompt with its ordered answer options.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// Catalog is a read-only, ordered set of questions.
type Catalog struct {
	questions []Question
	index     map[string]int
	scores    map[string]map[string]int
}

// New validates the definition and returns an immutable catalog.
func New(questions []Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions defined", ErrInvalidCatalog)
	}

	c := &Catalog{
		questions: make([]Question, 0, len(questions)),
		index:     make(map[string]int, len(questions)),
		scores:    make(map[string]map[string]int, len(questions)),
	}

	for _, q := range questions {
		id := strings.TrimSpace(q.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: question without id", ErrInvalidCatalog)
		}
		if _, exists := c.index[id]; exists {
			return nil, fmt.Errorf("%w: duplicate question %q", ErrInvalidCatalog, id)
		}
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("%w: question %q has no options", ErrInvalidCatalog, id)
		}

		options := make([]Option, 0, len(q.Options))
		scores := make(map[string]int, len(q.Options))
		for _, opt := range q.Options {
			code := strings.TrimSpace(opt.Code)
			if code == "" {
				return nil, fmt.Errorf("%w: question %q has an option without code", ErrInvalidCatalog, id)
			}
			if _, exists := scores[code]; exists {
				return nil, fmt.Errorf("%w: question %q repeats option %q", ErrInvalidCatalog, id, code)
			}
			scores[code] = opt.Score
			options = append(options, Option{Code: code, Text: opt.Text, Score: opt.Score})
		}

		c.index[id] = len(c.questions)
		c.scores[id] = scores
		c.questions = append(c.questions, Question{ID: id, Text: q.Text, Options: options})
	}

	return c, nil
}

// Questions returns a copy of the questions in catalog order.
func (c *Catalog) Questions() []Question {
	return lo.Map(c.questions, func(q Question, _ int) Question {
		q.Options = append([]Option(nil), q.Options...)
		return q
	})
}

// IDs returns the question ids in catalog order.
func (c *Catalog) IDs() []string {
	return lo.Map(c.questions, func(q Question, _ int) string { return q.ID })
}

// Question looks up a single question by id.
func (c *Catalog) Question(id string) (Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return Question{}, false
	}
	q := c.questions[i]
	q.Options = append([]Option(nil), q.Options...)
	return q, true
}

// Score returns the point value of the option code for the question. Codes are
// matched exactly, so "a" is not an option of a question offering "A".
func (c *Catalog) Score(questionID, code string) (int, error) {
	scores, ok := c.scores[questionID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	score, ok := scores[code]
	if !ok {
		return 0, fmt.Errorf("%w: %s/%s", ErrMissingOption, questionID, code)
	}
	return score, nil
}

// MaxScore is the highest achievable total.
func (c *Catalog) MaxScore() int {
	return lo.SumBy(c.questions, func(q Question) int {
		return lo.MaxBy(q.Options, func(a, b Option) bool { return a.Score > b.Score }).Score
	})
}

// MinScore is the lowest achievable total.
func (c *Catalog) MinScore() int {
	return lo.SumBy(c.questions, func(q Question) int {
		return lo.MinBy(q.Options, func(a, b Option) bool { return a.Score < b.Score }).Score
	})
}
