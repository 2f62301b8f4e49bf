package quiz

import "errors"

var (
	// ErrMissingPayload is returned when the submission body is empty.
	ErrMissingPayload = errors.New("no data provided")
	// ErrMissingField is returned when questions or answers are absent.
	ErrMissingField = errors.New("questions or answers missing")
	// ErrTypeMismatch is returned when questions is not a list or answers is not an object.
	ErrTypeMismatch = errors.New("incorrect data types for questions or answers")
	// ErrMissingBounds is returned when a question has no lower or upper bound.
	ErrMissingBounds = errors.New("bounds not provided")
	// ErrNonNumericBound is returned when a bound cannot be read as a finite number.
	ErrNonNumericBound = errors.New("non-numeric bounds provided")
	// ErrEmptyQuestionSet is returned when a submission carries no questions.
	ErrEmptyQuestionSet = errors.New("question set is empty")
	// ErrInsufficientBank is returned when the bank cannot fill a sample.
	ErrInsufficientBank = errors.New("question bank holds too few questions")
)

// Kind returns a stable machine-readable code for a quiz error, or "" when
// err is not one of the package errors.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrMissingPayload):
		return "missing_payload"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrMissingBounds):
		return "missing_bounds"
	case errors.Is(err, ErrNonNumericBound):
		return "non_numeric_bound"
	case errors.Is(err, ErrEmptyQuestionSet):
		return "empty_question_set"
	case errors.Is(err, ErrInsufficientBank):
		return "insufficient_bank"
	}
	return ""
}

// IsValidationError reports whether err is caused by a malformed submission.
func IsValidationError(err error) bool {
	k := Kind(err)
	return k != "" && k != "insufficient_bank"
}
