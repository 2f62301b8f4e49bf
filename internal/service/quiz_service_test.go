package service

import (
	"calibration_quiz/internal/model"
	"calibration_quiz/internal/quiz"
	"calibration_quiz/internal/util"
	"errors"
	"path/filepath"
	"testing"
)

func TestQuestionsDrawsConfiguredSample(t *testing.T) {
	f := newFixture(t)
	qs, err := f.quiz.Questions(t.Context())
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(qs) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(qs))
	}
}

func TestQuestionsFailsOnSmallBank(t *testing.T) {
	f := newFixture(t)
	small := NewQuizService(testBank(3), f.score, nil, &f.cfg.Quiz)
	if _, err := small.Questions(t.Context()); !errors.Is(err, quiz.ErrInsufficientBank) {
		t.Fatalf("expected ErrInsufficientBank, got %v", err)
	}
}

func TestSubmitAnonymousIsNotRecorded(t *testing.T) {
	f := newFixture(t)
	qs := []quiz.Question{{Text: "a", Answer: 10}, {Text: "b", Answer: 20}}

	res, err := f.quiz.Submit(t.Context(), util.Anonymous(), payload(qs, [2]float64{5, 15}, [2]float64{0, 1}))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Score != 50 || res.RecordID != nil {
		t.Fatalf("unexpected result %+v", res)
	}

	var count int64
	f.db.Model(&model.ScoreRecord{}).Count(&count)
	if count != 0 {
		t.Fatalf("anonymous submission must not be stored, found %d", count)
	}
}

func TestSubmitAuthenticatedIsRecorded(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ada")
	qs := []quiz.Question{{Text: "a", Answer: 10}}

	res, err := f.quiz.Submit(t.Context(), util.Authenticated("ada"), payload(qs, [2]float64{10, 10}))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Score != 100 || res.RecordID == nil {
		t.Fatalf("unexpected result %+v", res)
	}

	history, err := f.score.History(t.Context(), util.Authenticated("ada"))
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].UserID != u.ID || history[0].Score != 100 {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestSubmitRejectsInvalidPayload(t *testing.T) {
	f := newFixture(t)
	_, err := f.quiz.Submit(t.Context(), util.Anonymous(), quiz.Payload{})
	if !errors.Is(err, quiz.ErrMissingPayload) {
		t.Fatalf("expected ErrMissingPayload, got %v", err)
	}
}

func TestSubmitKeepsScoreWhenRecordingFails(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ada")
	if err := f.db.Migrator().DropTable(&model.ScoreRecord{}); err != nil {
		t.Fatalf("drop scores: %v", err)
	}
	qs := []quiz.Question{{Text: "a", Answer: 10}, {Text: "b", Answer: 20}}

	res, err := f.quiz.Submit(t.Context(), util.Authenticated("ada"), payload(qs, [2]float64{0, 100}, [2]float64{0, 100}))
	if !errors.Is(err, util.ErrRecordFailed) {
		t.Fatalf("expected ErrRecordFailed, got %v", err)
	}
	if res == nil || res.Score != 100 || len(res.Details) != 2 {
		t.Fatalf("scored result must survive a storage failure, got %+v", res)
	}
}

func TestSubmitForDeletedAccountStillScores(t *testing.T) {
	f := newFixture(t)
	qs := []quiz.Question{{Text: "a", Answer: 10}}

	res, err := f.quiz.Submit(t.Context(), util.Authenticated("ghost"), payload(qs, [2]float64{0, 1}))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Score != 0 || res.RecordID != nil {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestReloadBankSwapsBank(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "questions.json")
	writeBank(t, path, 25)

	cfg := f.cfg.Quiz
	cfg.Path = path
	storage := &StorageService{Provider: &LocalStorageProvider{}, Cfg: &cfg}
	svc := NewQuizService(testBank(20), f.score, storage, &cfg)

	if err := svc.ReloadBank(t.Context()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if svc.Bank().Len() != 25 {
		t.Fatalf("expected reloaded bank of 25, got %d", svc.Bank().Len())
	}
}

func TestReloadBankKeepsOldBankWhenTooSmall(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "questions.json")
	writeBank(t, path, 4)

	cfg := f.cfg.Quiz
	cfg.Path = path
	storage := &StorageService{Provider: &LocalStorageProvider{}, Cfg: &cfg}
	svc := NewQuizService(testBank(20), f.score, storage, &cfg)

	if err := svc.ReloadBank(t.Context()); !errors.Is(err, quiz.ErrInsufficientBank) {
		t.Fatalf("expected ErrInsufficientBank, got %v", err)
	}
	if svc.Bank().Len() != 20 {
		t.Fatalf("old bank should stay active, got %d questions", svc.Bank().Len())
	}
}

func TestReloadBankWithoutStorage(t *testing.T) {
	f := newFixture(t)
	if err := f.quiz.ReloadBank(t.Context()); err == nil {
		t.Fatalf("expected reload without storage to fail")
	}
}
