package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	red "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/R2Ace/number-ninja/internal/infra/config"
	redisrepo "github.com/R2Ace/number-ninja/internal/repository/redis"
	httproutes "github.com/R2Ace/number-ninja/internal/transport/http/routes"
	"github.com/R2Ace/number-ninja/internal/usecase"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	cfg := &config.AppConfig{App: config.AppSettings{Env: "test"}}

	r := httproutes.Register(httproutes.Dependencies{
		Config: cfg,
		Logger: logger,
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.AppConfig{App: config.AppSettings{Env: "test"}}

	r := httproutes.Register(httproutes.Dependencies{
		Config: cfg,
		Logger: zap.NewNop(),
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestGameFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(server.Close)

	client := red.NewClient(&red.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := redisrepo.NewSessionStore(client, "ninja:session", time.Hour)

	game := usecase.NewGameService(store, nil, nil, zap.NewNop())
	game.WithRandom(func(min, max int) int { return 500 })

	cfg := &config.AppConfig{App: config.AppSettings{Env: "test"}}
	r := httproutes.Register(httproutes.Dependencies{
		Config: cfg,
		Logger: zap.NewNop(),
		Services: httproutes.ServiceSet{
			Game: game,
		},
	})

	start := postJSON(t, r, "/api/v1/game/start", map[string]any{
		"session_id": "sess-http",
		"difficulty": "ninja",
	})
	if start.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", start.Code, start.Body.String())
	}

	guess := postJSON(t, r, "/api/v1/game/guess", map[string]any{
		"session_id": "sess-http",
		"guess":      250,
	})
	if guess.Code != http.StatusOK {
		t.Fatalf("guess: expected 200, got %d: %s", guess.Code, guess.Body.String())
	}

	var payload struct {
		FeedbackType string `json:"feedback_type"`
		Attempts     int    `json:"attempts"`
		GameOver     bool   `json:"game_over"`
	}
	if err := json.Unmarshal(guess.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode guess response: %v", err)
	}
	if payload.FeedbackType != "too_low" || payload.Attempts != 1 || payload.GameOver {
		t.Fatalf("unexpected guess payload: %+v", payload)
	}

	win := postJSON(t, r, "/api/v1/game/guess", map[string]any{
		"session_id": "sess-http",
		"guess":      500,
	})
	if win.Code != http.StatusOK {
		t.Fatalf("winning guess: expected 200, got %d", win.Code)
	}

	missing := postJSON(t, r, "/api/v1/game/guess", map[string]any{
		"session_id": "ghost",
		"guess":      1,
	})
	if missing.Code != http.StatusNotFound {
		t.Fatalf("unknown session: expected 404, got %d", missing.Code)
	}

	badDifficulty := postJSON(t, r, "/api/v1/game/start", map[string]any{
		"difficulty": "impossible",
	})
	if badDifficulty.Code != http.StatusBadRequest {
		t.Fatalf("unknown difficulty: expected 400, got %d", badDifficulty.Code)
	}

	badGuess := postJSON(t, r, "/api/v1/game/guess", map[string]any{
		"session_id": "sess-http",
		"guess":      "not-a-number",
	})
	if badGuess.Code != http.StatusBadRequest {
		t.Fatalf("non-integer guess: expected 400, got %d", badGuess.Code)
	}
	var badGuessBody struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(badGuess.Body.Bytes(), &badGuessBody); err != nil {
		t.Fatalf("decode bad guess response: %v", err)
	}
	if badGuessBody.Error != "invalid guess" {
		t.Fatalf("non-integer guess: expected %q, got %q", "invalid guess", badGuessBody.Error)
	}
}

func postJSON(t *testing.T, r *gin.Engine, path string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	r.ServeHTTP(w, req)
	return w
}
