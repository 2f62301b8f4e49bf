package service

import (
	"calibration_quiz/internal/config"
	"calibration_quiz/internal/quiz"
	"calibration_quiz/internal/util"
	"calibration_quiz/pkg/logger"
	"calibration_quiz/pkg/monitoring"
	"calibration_quiz/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SubmitResult is a scored submission plus the id of its stored record, if
// one was stored.
type SubmitResult struct {
	quiz.ScoredResult
	RecordID *uint `json:"record_id,omitempty"`
}

type QuizService struct {
	Scores  *ScoreService
	Storage *StorageService
	Cfg     *config.QuizConfig
	bank    atomic.Pointer[quiz.Bank]
}

func NewQuizService(bank *quiz.Bank, scores *ScoreService, storage *StorageService, cfg *config.QuizConfig) *QuizService {
	s := &QuizService{Scores: scores, Storage: storage, Cfg: cfg}
	s.bank.Store(bank)
	return s
}

// Bank returns the bank questions are currently drawn from.
func (s *QuizService) Bank() *quiz.Bank {
	return s.bank.Load()
}

// ReloadBank swaps in a freshly loaded bank. The old bank keeps serving if
// the new one cannot be loaded or is too small to sample from.
func (s *QuizService) ReloadBank(ctx context.Context) error {
	if s.Storage == nil {
		return fmt.Errorf("no question bank storage configured")
	}
	bank, err := s.Storage.LoadBank(ctx)
	if err != nil {
		return err
	}
	if bank.Len() < s.sampleSize() {
		return fmt.Errorf("%w: have %d, need %d", quiz.ErrInsufficientBank, bank.Len(), s.sampleSize())
	}
	s.bank.Store(bank)
	logger.Log.Info("question bank reloaded", zap.Int("questions", bank.Len()))
	return nil
}

func (s *QuizService) sampleSize() int {
	if s.Cfg == nil || s.Cfg.SampleSize <= 0 {
		return quiz.DefaultSampleSize
	}
	return s.Cfg.SampleSize
}

// Questions draws a fresh sample for one quiz.
func (s *QuizService) Questions(ctx context.Context) ([]quiz.Question, error) {
	_, span := tracing.StartSpan(ctx, "QuizService.Questions")
	qs, err := s.Bank().Sample(s.sampleSize())
	tracing.EndSpan(span, err)
	return qs, err
}

// Submit validates and scores p. When id is authenticated the result is also
// recorded; a recording failure returns the scored result together with an
// error wrapping util.ErrRecordFailed.
func (s *QuizService) Submit(ctx context.Context, id util.Identity, p quiz.Payload) (res *SubmitResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuizService.Submit",
		attribute.Bool("identity.authenticated", id.IsAuthenticated),
	)
	defer func() { tracing.EndSpan(span, err) }()

	validator := quiz.Validator{}
	if s.Cfg != nil {
		validator.MaxQuestions = s.Cfg.MaxSubmitted
	}
	sub, err := validator.Validate(p)
	if err != nil {
		monitoring.ObserveSubmission(monitoring.OutcomeRejected, 0)
		return nil, err
	}

	scored, err := quiz.Score(sub.Questions, sub.Answers)
	if err != nil {
		monitoring.ObserveSubmission(monitoring.OutcomeRejected, 0)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("quiz.questions", len(sub.Questions)),
		attribute.Int("quiz.correct", scored.CorrectCount()),
		attribute.Int("quiz.score", scored.Score),
	)

	res = &SubmitResult{ScoredResult: *scored}
	if !id.IsAuthenticated {
		monitoring.ObserveSubmission(monitoring.OutcomeScored, scored.Score)
		return res, nil
	}

	record, err := s.Scores.Record(ctx, id, scored)
	if errors.Is(err, util.ErrUnauthorized) {
		// session outlived its account
		logger.Log.Warn("score not recorded", zap.String("username", id.Username), zap.Error(err))
		monitoring.ObserveSubmission(monitoring.OutcomeScored, scored.Score)
		return res, nil
	}
	if err != nil {
		monitoring.ObserveSubmission(monitoring.OutcomeRecordFailed, scored.Score)
		return res, fmt.Errorf("%w: %w", util.ErrRecordFailed, err)
	}
	res.RecordID = &record.ID
	monitoring.ObserveSubmission(monitoring.OutcomeScored, scored.Score)
	return res, nil
}
