package quiz

import "math"

// Score grades each question by whether its true answer lies inside the
// submitted [lower, upper] interval, both ends inclusive. Bounds are looked up
// by position, so question order is significant.
//
// The percentage is rounded half away from zero: 1 correct of 8 scores 13.
func Score(questions []Question, answers Answers) (*ScoredResult, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}

	correctCount := 0
	details := make([]PerQuestionResult, 0, len(questions))
	for i, q := range questions {
		lower, upper, err := answers.Bounds(i)
		if err != nil {
			return nil, err
		}

		correct := lower <= q.Answer && q.Answer <= upper
		if correct {
			correctCount++
		}
		details = append(details, PerQuestionResult{
			Question:      q.Text,
			Correct:       correct,
			CorrectAnswer: q.Answer,
			LowerBound:    lower,
			UpperBound:    upper,
		})
	}

	return &ScoredResult{
		Score:   Percentage(correctCount, len(questions)),
		Details: details,
	}, nil
}

// Percentage returns round(100 * correct / total). total must be positive.
// Multiplying first keeps exact halves such as 23 of 40 at .5.
func Percentage(correct, total int) int {
	return int(math.Round(float64(100*correct) / float64(total)))
}
