package service

import (
	"calibration_quiz/internal/config"
	"calibration_quiz/internal/model"
	"calibration_quiz/internal/quiz"
	"calibration_quiz/internal/repository"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db       *gorm.DB
	cfg      *config.Config
	users    *repository.UserRepository
	scores   *repository.ScoreRepository
	sessions *repository.MemorySessionRepository
	auth     *AuthService
	user     *UserService
	score    *ScoreService
	quiz     *QuizService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "service.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.ScoreRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: "test-secret", ExpireTime: 15 * time.Minute},
		Session: config.SessionConfig{CookieName: "session", MaxAge: time.Hour},
		Quiz:    config.QuizConfig{Source: "local", SampleSize: 10, MaxSubmitted: 100},
	}

	f := &fixture{
		db:       db,
		cfg:      cfg,
		users:    repository.NewUserRepository(db),
		scores:   repository.NewScoreRepository(db),
		sessions: repository.NewMemorySessionRepository(),
	}
	f.auth = NewAuthService(f.users, f.sessions, cfg)
	f.user = NewUserService(f.users)
	f.score = NewScoreService(f.users, f.scores)
	f.quiz = NewQuizService(testBank(20), f.score, nil, &cfg.Quiz)
	return f
}

func testBank(n int) *quiz.Bank {
	qs := make([]quiz.Question, n)
	for i := range qs {
		qs[i] = quiz.Question{Text: fmt.Sprintf("question %d", i), Answer: float64(i * 10)}
	}
	return quiz.NewBank(qs)
}

func (f *fixture) register(t *testing.T, username string) *model.User {
	t.Helper()
	u, err := f.auth.Register(t.Context(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return u
}

// payload builds a submission body the way it arrives after JSON decoding.
func payload(questions []quiz.Question, bounds ...[2]float64) quiz.Payload {
	items := make([]any, len(questions))
	answers := map[string]any{}
	for i, q := range questions {
		items[i] = map[string]any{"question": q.Text, "answer": q.Answer}
		answers[fmt.Sprintf("lower_%d", i)] = bounds[i][0]
		answers[fmt.Sprintf("upper_%d", i)] = bounds[i][1]
	}
	return quiz.Payload{"questions": items, "answers": answers}
}
