package quiz

import (
	"fmt"
)

// Validator checks the structure of a submission before it is scored.
// MaxQuestions bounds the caller-supplied question count; zero means no limit.
type Validator struct {
	MaxQuestions int
}

// Validate checks p with no question limit.
func Validate(p Payload) (*Submission, error) {
	return Validator{}.Validate(p)
}

// Validate checks that p holds a question list and an answer object with a
// numeric lower and upper bound for every question, in that order of checks.
// It has no side effects.
func (v Validator) Validate(p Payload) (*Submission, error) {
	if len(p) == 0 {
		return nil, ErrMissingPayload
	}

	rawQuestions, okQ := p["questions"]
	rawAnswers, okA := p["answers"]
	if !okQ || !okA {
		return nil, ErrMissingField
	}

	items, ok := rawQuestions.([]any)
	if !ok {
		return nil, ErrTypeMismatch
	}
	answers, ok := asAnswers(rawAnswers)
	if !ok {
		return nil, ErrTypeMismatch
	}

	if len(items) == 0 {
		return nil, ErrEmptyQuestionSet
	}
	if v.MaxQuestions > 0 && len(items) > v.MaxQuestions {
		return nil, fmt.Errorf("%w: %d questions submitted, limit is %d", ErrTypeMismatch, len(items), v.MaxQuestions)
	}

	questions := make([]Question, len(items))
	for i, item := range items {
		if _, _, err := answers.Bounds(i); err != nil {
			return nil, err
		}
		q, err := decodeQuestion(item)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d %v", ErrTypeMismatch, i, err)
		}
		questions[i] = q
	}

	return &Submission{Questions: questions, Answers: answers}, nil
}

func asAnswers(v any) (Answers, bool) {
	switch a := v.(type) {
	case map[string]any:
		return Answers(a), true
	case Answers:
		return a, true
	}
	return nil, false
}

func decodeQuestion(v any) (Question, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return Question{}, fmt.Errorf("is not an object")
	}
	text, ok := m["question"].(string)
	if !ok {
		return Question{}, fmt.Errorf("has no question text")
	}
	answer, ok := parseNumber(m["answer"])
	if !ok {
		return Question{}, fmt.Errorf("has no numeric answer")
	}
	return Question{Text: text, Answer: answer}, nil
}
