package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/qna-api/internal/config"
	"github.com/deppfellow/qna-api/internal/handler"
	"github.com/deppfellow/qna-api/internal/repository/repositorytest"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/deppfellow/qna-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	return newTestRouterWithConfig(t, &config.Config{
		Primary: config.Primary{Env: "test"},
		Server:  config.ServerConfig{CORSAllowedOrigins: []string{"http://localhost:3000"}},
	})
}

func newTestRouterWithConfig(t *testing.T, cfg *config.Config) *echo.Echo {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &logger}

	store := repositorytest.NewMemoryStore()
	services := &service.Services{
		Questions: service.NewQuestionService(store, store),
		Answers:   service.NewAnswerService(store, store),
	}

	return NewRouter(s, handler.NewHandlers(s, services))
}

func do(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("%s %s: invalid JSON %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func TestExampleScenario(t *testing.T) {
	e := newTestRouter(t)

	rec, q := do(t, e, http.MethodPost, "/questions/", `{"text": "What is 2+2?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create question status = %d body = %s", rec.Code, rec.Body.String())
	}
	if q["id"] != float64(1) || q["text"] != "What is 2+2?" || q["created_at"] == nil {
		t.Fatalf("question = %v", q)
	}

	rec, a := do(t, e, http.MethodPost, "/questions/1/answers/", `{"text": "4", "user_id": "alice"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create answer status = %d body = %s", rec.Code, rec.Body.String())
	}
	if a["id"] != float64(1) || a["question_id"] != float64(1) || a["user_id"] != "alice" || a["text"] != "4" {
		t.Fatalf("answer = %v", a)
	}

	rec, got := do(t, e, http.MethodGet, "/questions/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get question status = %d", rec.Code)
	}
	answers, ok := got["answers"].([]any)
	if !ok || len(answers) != 1 || answers[0].(map[string]any)["user_id"] != "alice" {
		t.Fatalf("question with answers = %v", got)
	}

	rec, msg := do(t, e, http.MethodDelete, "/questions/1", "")
	if rec.Code != http.StatusOK || msg["message"] != "Question and its answers deleted successfully" {
		t.Fatalf("delete question = %d %v", rec.Code, msg)
	}

	rec, body := do(t, e, http.MethodGet, "/answers/1", "")
	if rec.Code != http.StatusNotFound || body["message"] != "Answer not found" {
		t.Fatalf("get deleted answer = %d %v", rec.Code, body)
	}
}

func TestRoot(t *testing.T) {
	e := newTestRouter(t)

	rec, body := do(t, e, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || body["message"] != "Q&A API is running" {
		t.Fatalf("GET / = %d %v", rec.Code, body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("X-Request-ID header missing")
	}
}

func TestListQuestions(t *testing.T) {
	e := newTestRouter(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/questions", nil))
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty list = %d %s", rec.Code, rec.Body.String())
	}

	for _, text := range []string{"a", "b", "c", "d"} {
		do(t, e, http.MethodPost, "/questions", `{"text":"`+text+`"}`)
	}

	tests := []struct {
		query      string
		wantStatus int
		wantTexts  []string
	}{
		{"", http.StatusOK, []string{"a", "b", "c", "d"}},
		{"?skip=1&limit=2", http.StatusOK, []string{"b", "c"}},
		{"?skip=10", http.StatusOK, []string{}},
		{"?limit=0", http.StatusOK, []string{}},
		{"?skip=-1", http.StatusUnprocessableEntity, nil},
		{"?limit=abc", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/questions/"+tt.query, nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantTexts == nil {
				return
			}

			var list []map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
				t.Fatalf("invalid list %s: %v", rec.Body.String(), err)
			}
			if len(list) != len(tt.wantTexts) {
				t.Fatalf("len = %d, want %d", len(list), len(tt.wantTexts))
			}
			for i, item := range list {
				if item["text"] != tt.wantTexts[i] {
					t.Fatalf("list[%d] = %v, want %s", i, item, tt.wantTexts[i])
				}
			}
		})
	}
}

func TestValidationAndNotFound(t *testing.T) {
	e := newTestRouter(t)
	do(t, e, http.MethodPost, "/questions", `{"text":"q"}`)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"missing question text", http.MethodPost, "/questions", `{}`, http.StatusUnprocessableEntity, ""},
		{"empty question text", http.MethodPost, "/questions", `{"text":""}`, http.StatusUnprocessableEntity, ""},
		{"malformed json", http.MethodPost, "/questions", `{"text":`, http.StatusBadRequest, ""},
		{"non-integer id", http.MethodGet, "/questions/abc", "", http.StatusBadRequest, ""},
		{"missing question", http.MethodGet, "/questions/99", "", http.StatusNotFound, "Question not found"},
		{"delete missing question", http.MethodDelete, "/questions/99", "", http.StatusNotFound, "Question not found"},
		{"answer for missing question", http.MethodPost, "/questions/99/answers", `{"text":"x"}`, http.StatusNotFound, "Question not found"},
		{"missing answer text", http.MethodPost, "/questions/1/answers", `{"user_id":"bob"}`, http.StatusUnprocessableEntity, ""},
		{"missing answer", http.MethodGet, "/answers/42", "", http.StatusNotFound, "Answer not found"},
		{"delete missing answer", http.MethodDelete, "/answers/42", "", http.StatusNotFound, "Answer not found"},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound, "Route not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, e, tt.method, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if body["status"] != float64(tt.wantStatus) {
				t.Fatalf("error body = %v", body)
			}
			if tt.wantMsg != "" && body["message"] != tt.wantMsg {
				t.Fatalf("message = %v, want %q", body["message"], tt.wantMsg)
			}
		})
	}

	rec, body := do(t, e, http.MethodPost, "/questions", `{}`)
	errors, _ := body["errors"].([]any)
	if rec.Code != http.StatusUnprocessableEntity || len(errors) != 1 || errors[0].(map[string]any)["field"] != "text" {
		t.Fatalf("field errors = %v", body)
	}

	rec, list := do(t, e, http.MethodGet, "/questions/1", "")
	if rec.Code != http.StatusOK || len(list["answers"].([]any)) != 0 {
		t.Fatalf("failed requests must not change state: %v", list)
	}
}

func TestDeleteAnswerKeepsSiblings(t *testing.T) {
	e := newTestRouter(t)

	do(t, e, http.MethodPost, "/questions", `{"text":"q"}`)
	do(t, e, http.MethodPost, "/questions/1/answers", `{"text":"one","user_id":"a"}`)
	do(t, e, http.MethodPost, "/questions/1/answers", `{"text":"two","user_id":"b"}`)

	rec, msg := do(t, e, http.MethodDelete, "/answers/1", "")
	if rec.Code != http.StatusOK || msg["message"] != "Answer deleted successfully" {
		t.Fatalf("delete answer = %d %v", rec.Code, msg)
	}

	rec, _ = do(t, e, http.MethodGet, "/answers/2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("sibling answer status = %d", rec.Code)
	}

	_, q := do(t, e, http.MethodGet, "/questions/1", "")
	if answers := q["answers"].([]any); len(answers) != 1 {
		t.Fatalf("answers after delete = %v", answers)
	}
}

func TestGeneratedUserID(t *testing.T) {
	e := newTestRouter(t)

	do(t, e, http.MethodPost, "/questions", `{"text":"q"}`)
	_, first := do(t, e, http.MethodPost, "/questions/1/answers", `{"text":"x"}`)
	_, second := do(t, e, http.MethodPost, "/questions/1/answers", `{"text":"y","user_id":""}`)

	id1, _ := first["user_id"].(string)
	id2, _ := second["user_id"].(string)
	if id1 == "" || id2 == "" || id1 == id2 {
		t.Fatalf("generated user ids = %q, %q", id1, id2)
	}
}

func TestBodyCannotOverridePathID(t *testing.T) {
	e := newTestRouter(t)

	do(t, e, http.MethodPost, "/questions", `{"text":"one"}`)
	do(t, e, http.MethodPost, "/questions", `{"text":"two"}`)

	_, a := do(t, e, http.MethodPost, "/questions/2/answers", `{"text":"x","question_id":1}`)
	if a["question_id"] != float64(2) {
		t.Fatalf("question_id = %v, want 2", a["question_id"])
	}
}

func sendForwarded(e *echo.Echo, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	req.Header.Set(echo.HeaderXForwardedFor, forwardedFor)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitKeysOnPeerAddress(t *testing.T) {
	e := newTestRouterWithConfig(t, &config.Config{
		Primary:   config.Primary{Env: "test"},
		RateLimit: &config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2},
	})

	limited := 0
	for i := 0; i < 50; i++ {
		if sendForwarded(e, "203.0.113.7:4321", fmt.Sprintf("198.51.100.%d", i)) == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited != 48 {
		t.Fatalf("limited = %d, want 48 when X-Forwarded-For rotates", limited)
	}
}

func TestRateLimitTrustsConfiguredProxies(t *testing.T) {
	e := newTestRouterWithConfig(t, &config.Config{
		Primary:   config.Primary{Env: "test"},
		Server:    config.ServerConfig{TrustedProxies: []string{"203.0.113.0/24"}},
		RateLimit: &config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2},
	})

	// Each client behind the trusted proxy gets its own budget.
	for i := 0; i < 5; i++ {
		if code := sendForwarded(e, "203.0.113.7:4321", fmt.Sprintf("198.51.100.%d", i)); code != http.StatusOK {
			t.Fatalf("client %d status = %d, want 200", i, code)
		}
	}

	// The same client is still limited.
	codes := []int{
		sendForwarded(e, "203.0.113.7:4321", "198.51.100.200"),
		sendForwarded(e, "203.0.113.7:4321", "198.51.100.200"),
		sendForwarded(e, "203.0.113.7:4321", "198.51.100.200"),
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("statuses = %v, want third request limited", codes)
	}
}

func TestIPExtractor(t *testing.T) {
	tests := []struct {
		name    string
		proxies []string
		remote  string
		xff     string
		want    string
	}{
		{"no proxies ignores header", nil, "203.0.113.7:1", "198.51.100.1", "203.0.113.7"},
		{"private peer untrusted by default", nil, "10.0.0.5:1", "198.51.100.1", "10.0.0.5"},
		{"trusted proxy", []string{"10.0.0.0/8"}, "10.0.0.5:1", "198.51.100.1", "198.51.100.1"},
		{"untrusted peer", []string{"10.0.0.0/8"}, "203.0.113.7:1", "198.51.100.1", "203.0.113.7"},
		{"spoofed leftmost hop", []string{"10.0.0.0/8"}, "10.0.0.5:1", "1.2.3.4, 198.51.100.1", "198.51.100.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			req.Header.Set(echo.HeaderXForwardedFor, tt.xff)

			if got := ipExtractor(tt.proxies)(req); got != tt.want {
				t.Fatalf("ip = %q, want %q", got, tt.want)
			}
		})
	}
}
