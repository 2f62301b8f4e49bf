package quiz_test

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"testing"

	"calibration_quiz/internal/quiz"

	"github.com/cucumber/godog"
)

// TestScoringScenarios runs the scoring feature scenarios.
func TestScoringScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "scoring",
		ScenarioInitializer: initializeScoringScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("features", "scoring.feature")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

func initializeScoringScenario(ctx *godog.ScenarioContext) {
	state := &scoringState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^the questions:$`, state.givenQuestions)
	ctx.Step(`^the answers:$`, state.givenAnswers)
	ctx.Step(`^an empty submission$`, state.givenEmptySubmission)
	ctx.Step(`^the submission is scored$`, state.whenScored)
	ctx.Step(`^the score is (\d+)$`, state.thenScore)
	ctx.Step(`^there are (\d+) detailed results$`, state.thenDetailCount)
	ctx.Step(`^question (\d+) is marked (correct|incorrect)$`, state.thenQuestionMarked)
	ctx.Step(`^every question is marked incorrect$`, state.thenAllIncorrect)
	ctx.Step(`^the submission is rejected with "([^"]+)"$`, state.thenRejected)
}

// scoringState holds one scenario's submission and its outcome.
type scoringState struct {
	body   map[string]any
	result *quiz.ScoredResult
	err    error
}

func (s *scoringState) reset() {
	s.body = map[string]any{}
	s.result = nil
	s.err = nil
}

func (s *scoringState) givenQuestions(table *godog.Table) error {
	questions := make([]map[string]any, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		answer, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return fmt.Errorf("answer %q: %w", row.Cells[1].Value, err)
		}
		questions = append(questions, map[string]any{
			"question": row.Cells[0].Value,
			"answer":   answer,
		})
	}
	s.body["questions"] = questions
	return nil
}

func (s *scoringState) givenAnswers(table *godog.Table) error {
	answers := make(map[string]any, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		raw := row.Cells[1].Value
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			answers[row.Cells[0].Value] = f
		} else {
			answers[row.Cells[0].Value] = raw
		}
	}
	s.body["answers"] = answers
	return nil
}

func (s *scoringState) givenEmptySubmission() error {
	s.body = map[string]any{}
	return nil
}

// whenScored sends the body through a JSON round trip, as a request would.
func (s *scoringState) whenScored() error {
	raw, err := json.Marshal(s.body)
	if err != nil {
		return err
	}
	var payload quiz.Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}

	sub, err := quiz.Validate(payload)
	if err != nil {
		s.err = err
		return nil
	}
	s.result, s.err = quiz.Score(sub.Questions, sub.Answers)
	return nil
}

func (s *scoringState) thenScore(expected int) error {
	if s.err != nil {
		return fmt.Errorf("unexpected error: %v", s.err)
	}
	if s.result.Score != expected {
		return fmt.Errorf("expected score %d, got %d", expected, s.result.Score)
	}
	return nil
}

func (s *scoringState) thenDetailCount(expected int) error {
	if s.result == nil {
		return fmt.Errorf("no result, error: %v", s.err)
	}
	if len(s.result.Details) != expected {
		return fmt.Errorf("expected %d details, got %d", expected, len(s.result.Details))
	}
	return nil
}

func (s *scoringState) thenQuestionMarked(position int, mark string) error {
	if s.result == nil {
		return fmt.Errorf("no result, error: %v", s.err)
	}
	if position < 1 || position > len(s.result.Details) {
		return fmt.Errorf("question %d out of range", position)
	}
	got := s.result.Details[position-1].Correct
	if got != (mark == "correct") {
		return fmt.Errorf("question %d: expected %s", position, mark)
	}
	return nil
}

func (s *scoringState) thenAllIncorrect() error {
	if s.result == nil {
		return fmt.Errorf("no result, error: %v", s.err)
	}
	for i, d := range s.result.Details {
		if d.Correct {
			return fmt.Errorf("question %d marked correct", i+1)
		}
	}
	return nil
}

func (s *scoringState) thenRejected(kind string) error {
	if s.err == nil {
		return fmt.Errorf("expected %s rejection, submission was accepted", kind)
	}
	if got := quiz.Kind(s.err); got != kind {
		return fmt.Errorf("expected %s, got %s (%v)", kind, got, s.err)
	}
	return nil
}
