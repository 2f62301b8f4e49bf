package app

import (
	"bytes"
	"calibration_quiz/internal/config"
	"calibration_quiz/internal/quiz"
	"calibration_quiz/pkg/database"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "app.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		Server:  config.ServerConfig{Port: "0", Mode: "test"},
		JWT:     config.JWTConfig{Secret: "router-test-secret", ExpireTime: 15 * time.Minute},
		Session: config.SessionConfig{CookieName: "session", MaxAge: time.Hour},
		Quiz:    config.QuizConfig{Source: "local", SampleSize: 10, MaxSubmitted: 100, ImprintContact: "quiz@example.com"},
	}

	qs := make([]quiz.Question, 20)
	for i := range qs {
		qs[i] = quiz.Question{Text: fmt.Sprintf("question %d", i), Answer: float64(i)}
	}

	a, err := New(cfg, db, nil, quiz.NewBank(qs), nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

type request struct {
	method  string
	path    string
	body    string
	form    url.Values
	cookies []*http.Cookie
	token   string
}

func (a *App) do(r request) *httptest.ResponseRecorder {
	var req *http.Request
	switch {
	case r.form != nil:
		req = httptest.NewRequest(r.method, r.path, strings.NewReader(r.form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	case r.body != "":
		req = httptest.NewRequest(r.method, r.path, strings.NewReader(r.body))
		req.Header.Set("Content-Type", "application/json")
	default:
		req = httptest.NewRequest(r.method, r.path, nil)
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

// submission answers question i with bounds [lo, hi].
func submission(qs []quiz.Question, bounds ...[2]any) string {
	answers := map[string]any{}
	for i, b := range bounds {
		answers[fmt.Sprintf("lower_%d", i)] = b[0]
		answers[fmt.Sprintf("upper_%d", i)] = b[1]
	}
	body, _ := json.Marshal(map[string]any{"questions": qs, "answers": answers})
	return string(body)
}

func TestGetQuestionsReturnsTenDistinct(t *testing.T) {
	a := newTestApp(t)
	w := a.do(request{method: http.MethodGet, path: "/questions"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	qs := decode[[]quiz.Question](t, w)
	if len(qs) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(qs))
	}
	seen := map[string]bool{}
	for _, q := range qs {
		if seen[q.Text] {
			t.Fatalf("duplicate question %q", q.Text)
		}
		seen[q.Text] = true
	}
}

func TestSubmitAnonymous(t *testing.T) {
	a := newTestApp(t)
	qs := []quiz.Question{{Text: "a", Answer: 10}, {Text: "b", Answer: 20}}

	w := a.do(request{method: http.MethodPost, path: "/submit", body: submission(qs, [2]any{5, 15}, [2]any{"21", "30"})})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	got := decode[map[string]any](t, w)
	if got["score"] != float64(50) {
		t.Fatalf("expected score 50, got %v", got["score"])
	}
	if details := got["detailed_results"].([]any); len(details) != 2 {
		t.Fatalf("expected 2 detailed results, got %d", len(details))
	}
	if _, ok := got["record_id"]; ok {
		t.Fatalf("anonymous submissions must not be recorded")
	}
}

func TestSubmitValidationErrors(t *testing.T) {
	a := newTestApp(t)
	one := []quiz.Question{{Text: "a", Answer: 1}}

	cases := []struct {
		name string
		body string
		kind string
	}{
		{"empty body", "", "missing_payload"},
		{"empty object", `{}`, "missing_payload"},
		{"no answers", `{"questions":[]}`, "missing_field"},
		{"questions not a list", `{"questions":"x","answers":{}}`, "type_mismatch"},
		{"not an object", `[1,2]`, "type_mismatch"},
		{"empty question list", `{"questions":[],"answers":{}}`, "empty_question_set"},
		{"missing bound", `{"questions":[{"question":"a","answer":1}],"answers":{"lower_0":1}}`, "missing_bounds"},
		{"non numeric bound", submission(one, [2]any{"one", 2}), "non_numeric_bound"},
		{"boolean bound", submission(one, [2]any{true, 2}), "non_numeric_bound"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := a.do(request{method: http.MethodPost, path: "/submit", body: tc.body})
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			got := decode[map[string]any](t, w)
			if got["error"] != tc.kind {
				t.Fatalf("expected kind %s, got %v", tc.kind, got["error"])
			}
			if msg, _ := got["message"].(string); msg == "" {
				t.Fatalf("expected a human readable message")
			}
		})
	}
}

func TestScoreHistoryRequiresLogin(t *testing.T) {
	a := newTestApp(t)
	w := a.do(request{method: http.MethodGet, path: "/api/score-history"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestCheckAuthAnonymousKeepsUsername(t *testing.T) {
	a := newTestApp(t)
	w := a.do(request{method: http.MethodGet, path: "/check-auth"})
	if w.Body.String() != `{"is_authenticated":false,"username":""}` {
		t.Fatalf("unexpected anonymous check-auth %s", w.Body.String())
	}
}

func register(t *testing.T, a *App, username string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"password123","first_name":"Ada","date_of_birth":"1990-12-10"}`, username, username)
	w := a.do(request{method: http.MethodPost, path: "/register", body: body})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", username, w.Code, w.Body.String())
	}
}

func login(t *testing.T, a *App, username string) (*http.Cookie, string) {
	t.Helper()
	w := a.do(request{
		method: http.MethodPost,
		path:   "/token",
		form:   url.Values{"username": {username}, "password": {"password123"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, w.Code, w.Body.String())
	}
	res := decode[map[string]string](t, w)
	if res["token_type"] != "bearer" || res["access_token"] == "" {
		t.Fatalf("unexpected token response %v", res)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			return c, res["access_token"]
		}
	}
	t.Fatalf("no session cookie set")
	return nil, ""
}

func TestAccountLifecycle(t *testing.T) {
	a := newTestApp(t)
	register(t, a, "ada")

	w := a.do(request{method: http.MethodPost, path: "/register", body: `{"username":"ada","email":"x@example.com","password":"pw"}`})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate username: expected 409, got %d", w.Code)
	}

	cookie, token := login(t, a, "ada")
	cookies := []*http.Cookie{cookie}

	w = a.do(request{method: http.MethodGet, path: "/check-auth", cookies: cookies})
	if w.Body.String() != `{"is_authenticated":true,"username":"ada"}` {
		t.Fatalf("unexpected check-auth %s", w.Body.String())
	}

	qs := []quiz.Question{{Text: "a", Answer: 10}}
	w = a.do(request{method: http.MethodPost, path: "/submit", body: submission(qs, [2]any{10, 10}), cookies: cookies})
	if w.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decode[map[string]any](t, w); got["record_id"] == nil {
		t.Fatalf("authenticated submission should be recorded: %v", got)
	}

	// bearer token resolves the same user
	w = a.do(request{method: http.MethodGet, path: "/api/score-history", token: token})
	if w.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", w.Code)
	}
	history := decode[[]map[string]any](t, w)
	if len(history) != 1 || history[0]["score"] != float64(100) {
		t.Fatalf("unexpected history %v", history)
	}

	w = a.do(request{method: http.MethodGet, path: "/api/profile", cookies: cookies})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"username":"ada"`) {
		t.Fatalf("profile: %d %s", w.Code, w.Body.String())
	}

	w = a.do(request{method: http.MethodGet, path: "/profile", cookies: cookies})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Profile of ada") {
		t.Fatalf("profile page: %d", w.Code)
	}

	w = a.do(request{method: http.MethodDelete, path: "/profile", cookies: cookies})
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = a.do(request{method: http.MethodGet, path: "/check-auth", cookies: cookies})
	if w.Body.String() != `{"is_authenticated":false,"username":""}` {
		t.Fatalf("session should end with the account, got %s", w.Body.String())
	}
	w = a.do(request{method: http.MethodGet, path: "/api/score-history", token: token})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("deleted account history: expected 401, got %d", w.Code)
	}
	w = a.do(request{method: http.MethodGet, path: "/api/users/exists?username=ada"})
	if !strings.Contains(w.Body.String(), `"exists":false`) {
		t.Fatalf("expected ada to be gone: %s", w.Body.String())
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	a := newTestApp(t)
	register(t, a, "ada")

	w := a.do(request{
		method: http.MethodPost,
		path:   "/token",
		form:   url.Values{"username": {"ada"}, "password": {"nope"}},
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Fatalf("expected bearer challenge")
	}
}

func TestLogoutEndsSession(t *testing.T) {
	a := newTestApp(t)
	register(t, a, "ada")
	cookie, _ := login(t, a, "ada")

	w := a.do(request{method: http.MethodGet, path: "/logout", cookies: []*http.Cookie{cookie}})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", w.Code, w.Header().Get("Location"))
	}

	w = a.do(request{method: http.MethodGet, path: "/check-auth", cookies: []*http.Cookie{cookie}})
	if w.Body.String() != `{"is_authenticated":false,"username":""}` {
		t.Fatalf("expected anonymous after logout, got %s", w.Body.String())
	}
}

func TestPages(t *testing.T) {
	a := newTestApp(t)
	for _, path := range []string{"/", "/questionnaire", "/how-to-improve", "/imprint"} {
		w := a.do(request{method: http.MethodGet, path: path})
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "<nav>") {
			t.Fatalf("%s: layout missing", path)
		}
	}

	w := a.do(request{method: http.MethodGet, path: "/imprint"})
	if !strings.Contains(w.Body.String(), "quiz@example.com") {
		t.Fatalf("imprint should show the contact")
	}

	w = a.do(request{method: http.MethodGet, path: "/profile"})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("anonymous profile should redirect, got %d", w.Code)
	}
}

func TestStaticAssetsAndHealth(t *testing.T) {
	a := newTestApp(t)

	for _, path := range []string{"/favicon.ico", "/static/questionnaire.js"} {
		w := a.do(request{method: http.MethodGet, path: path})
		if w.Code != http.StatusOK || w.Body.Len() == 0 {
			t.Fatalf("%s: expected content, got %d", path, w.Code)
		}
	}

	w := a.do(request{method: http.MethodGet, path: "/api/health"})
	if w.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"questions":20`)) {
		t.Fatalf("health should report bank size: %s", w.Body.String())
	}
}
