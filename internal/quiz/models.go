// Package quiz holds the calibration quiz core: the question bank, the
// submission validator and the interval scorer. Everything here is pure and
// safe for concurrent use.
package quiz

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultSampleSize is the number of questions served per quiz.
const DefaultSampleSize = 10

// Question is a calibration question with a known numeric answer.
type Question struct {
	Text   string  `json:"question" yaml:"question"`
	Answer float64 `json:"answer" yaml:"answer"`
}

// PerQuestionResult is the scoring outcome of a single question.
type PerQuestionResult struct {
	Question      string  `json:"question"`
	Correct       bool    `json:"correct"`
	CorrectAnswer float64 `json:"correct_answer"`
	LowerBound    float64 `json:"lower_bound"`
	UpperBound    float64 `json:"upper_bound"`
}

// ScoredResult is the outcome of one submission. Score is a percentage in [0, 100].
type ScoredResult struct {
	Score   int                 `json:"score"`
	Details []PerQuestionResult `json:"detailed_results"`
}

// CorrectCount returns how many questions were answered correctly.
func (r *ScoredResult) CorrectCount() int {
	n := 0
	for _, d := range r.Details {
		if d.Correct {
			n++
		}
	}
	return n
}

// Payload is a decoded submission body as received from the client.
type Payload map[string]any

// Answers maps "lower_<i>" and "upper_<i>" keys to caller-supplied bounds.
// Values may be JSON numbers or numeric strings.
type Answers map[string]any

// Submission is a payload that passed validation.
type Submission struct {
	Questions []Question
	Answers   Answers
}

func lowerKey(i int) string { return "lower_" + strconv.Itoa(i) }
func upperKey(i int) string { return "upper_" + strconv.Itoa(i) }

// Bounds returns the parsed lower and upper bound for question i.
func (a Answers) Bounds(i int) (float64, float64, error) {
	rawLower, okLower := a[lowerKey(i)]
	rawUpper, okUpper := a[upperKey(i)]
	if !okLower || !okUpper {
		return 0, 0, fmt.Errorf("%w for question %d", ErrMissingBounds, i)
	}

	lower, okLower := parseBound(rawLower)
	upper, okUpper := parseBound(rawUpper)
	if !okLower || !okUpper {
		return 0, 0, fmt.Errorf("%w for question %d", ErrNonNumericBound, i)
	}
	return lower, upper, nil
}

// parseBound accepts numbers and numeric strings. Non-finite values are rejected.
func parseBound(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || !finite(f) {
			return 0, false
		}
		return f, true
	}
	return parseNumber(v)
}

// parseNumber accepts only numeric values, never strings.
func parseNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	return f, finite(f)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
