package service

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequiredField indicates a mandatory respondent field is blank.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrIncompleteSubmission indicates a question is unanswered or answered with an unknown code.
	ErrIncompleteSubmission = errors.New("incomplete submission")
	// ErrInvalidField indicates an optional field carries an unusable value.
	ErrInvalidField = errors.New("invalid field")
	// ErrPersistence wraps storage layer failures.
	ErrPersistence = errors.New("persistence failure")
	// ErrExport wraps failures while producing the tabular export.
	ErrExport = errors.New("export failure")
)

// MissingRequiredFieldError names the required field that was absent.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Is matches ErrMissingRequiredField.
func (e *MissingRequiredFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// IncompleteSubmissionError names the first question that failed the completeness check.
type IncompleteSubmissionError struct {
	QuestionID string
	Err        error
}

func (e *IncompleteSubmissionError) Error() string {
	return fmt.Sprintf("question %q is unanswered or invalid", e.QuestionID)
}

// Is matches ErrIncompleteSubmission.
func (e *IncompleteSubmissionError) Is(target error) bool {
	return target == ErrIncompleteSubmission
}

func (e *IncompleteSubmissionError) Unwrap() error {
	return e.Err
}

// InvalidFieldError names an optional field that could not be accepted.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is matches ErrInvalidField.
func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}

// IsValidationError reports whether err is a submission rejection rather than a system failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField) ||
		errors.Is(err, ErrIncompleteSubmission) ||
		errors.Is(err, ErrInvalidField)
}
