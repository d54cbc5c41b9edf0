package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fitbuddy/backend/internal/catalog"
	"fitbuddy/backend/internal/db"
	"fitbuddy/backend/internal/handler"
	"fitbuddy/backend/internal/metrics"
	"fitbuddy/backend/internal/repository"
	"fitbuddy/backend/internal/router"
	"fitbuddy/backend/internal/service"
	"fitbuddy/backend/internal/storage"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

type exerciseJSON struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Duration string `json:"duration"`
}

type favoritesEnvelope struct {
	Favorites  []exerciseJSON `json:"favorites"`
	IsFavorite bool           `json:"isFavorite"`
}

type historyEnvelope struct {
	History []struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Calories int    `json:"calories"`
	} `json:"history"`
	Stats struct {
		TotalWorkouts        int `json:"totalWorkouts"`
		TotalCalories        int `json:"totalCalories"`
		TotalDurationMinutes int `json:"totalDurationMinutes"`
	} `json:"stats"`
}

type waterEnvelope struct {
	Date          string  `json:"date"`
	CurrentIntake int     `json:"currentIntake"`
	DailyGoal     int     `json:"dailyGoal"`
	Progress      float64 `json:"progress"`
}

type apiErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFavoritesToggleAndIsolation(t *testing.T) {
	engine := setupTestEngine(t)

	user1 := registerUser(t, engine, "Alex", "user1@example.com", "123456")
	user2 := registerUser(t, engine, "Jo", "user2@example.com", "123456")

	status, raw := requestJSON(t, engine, http.MethodPost, "/api/favorites/toggle", user1.Token, map[string]string{"id": "2"})
	if status != http.StatusOK {
		t.Fatalf("expected 200 on toggle, got %d: %s", status, raw)
	}
	var toggled favoritesEnvelope
	decode(t, raw, &toggled)
	if !toggled.IsFavorite || len(toggled.Favorites) != 1 || toggled.Favorites[0].Title != "Squat" {
		t.Fatalf("unexpected toggle result: %+v", toggled)
	}

	// user2 never toggled anything.
	var user2Favorites favoritesEnvelope
	status, raw = requestJSON(t, engine, http.MethodGet, "/api/favorites", user2.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for user2 favorites, got %d", status)
	}
	decode(t, raw, &user2Favorites)
	if len(user2Favorites.Favorites) != 0 {
		t.Fatalf("expected no favorites for user2, got %d", len(user2Favorites.Favorites))
	}

	// Toggling twice restores the empty set.
	status, raw = requestJSON(t, engine, http.MethodPost, "/api/favorites/toggle", user1.Token, map[string]string{"id": "2"})
	if status != http.StatusOK {
		t.Fatalf("expected 200 on second toggle, got %d", status)
	}
	decode(t, raw, &toggled)
	if toggled.IsFavorite || len(toggled.Favorites) != 0 {
		t.Fatalf("expected empty favorites after second toggle, got %+v", toggled)
	}
}

func TestHistoryCompleteAndStats(t *testing.T) {
	engine := setupTestEngine(t)
	user := registerUser(t, engine, "Alex", "history@example.com", "123456")

	status, raw := requestJSON(t, engine, http.MethodPost, "/api/history/complete", user.Token, map[string]string{"exerciseId": "3"})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 on complete, got %d: %s", status, raw)
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/history", user.Token, map[string]interface{}{
		"title":    "Evening Walk",
		"duration": "20 min",
		"calories": 90,
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 on log, got %d: %s", status, raw)
	}

	var history historyEnvelope
	status, raw = requestJSON(t, engine, http.MethodGet, "/api/history", user.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for history, got %d", status)
	}
	decode(t, raw, &history)
	if len(history.History) != 2 {
		t.Fatalf("expected 2 workouts, got %d", len(history.History))
	}
	if history.History[0].Title != "Evening Walk" {
		t.Fatalf("expected newest first, got %s", history.History[0].Title)
	}
	if history.Stats.TotalCalories != 356+90 || history.Stats.TotalDurationMinutes != 50 {
		t.Fatalf("unexpected stats: %+v", history.Stats)
	}

	status, raw = requestJSON(t, engine, http.MethodDelete, "/api/history", user.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on clear, got %d", status)
	}
	decode(t, raw, &history)
	if len(history.History) != 0 || history.Stats.TotalWorkouts != 0 {
		t.Fatalf("expected empty history after clear, got %+v", history)
	}
}

func TestWaterTracking(t *testing.T) {
	engine := setupTestEngine(t)
	user := registerUser(t, engine, "Alex", "water@example.com", "123456")

	for _, amount := range []int{250, 500} {
		status, raw := requestJSON(t, engine, http.MethodPost, "/api/water/add", user.Token, map[string]int{"amount": amount})
		if status != http.StatusOK {
			t.Fatalf("expected 200 on add, got %d: %s", status, raw)
		}
	}

	var water waterEnvelope
	_, raw := requestJSON(t, engine, http.MethodGet, "/api/water", user.Token, nil)
	decode(t, raw, &water)
	if water.CurrentIntake != 750 || water.DailyGoal != 2500 {
		t.Fatalf("unexpected water state: %+v", water)
	}
	if water.Date != time.Now().UTC().Format("2006-01-02") {
		t.Fatalf("unexpected water date %s", water.Date)
	}

	status, raw := requestJSON(t, engine, http.MethodPut, "/api/water/goal", user.Token, map[string]int{"goal": 500})
	if status != http.StatusOK {
		t.Fatalf("expected 200 on goal, got %d: %s", status, raw)
	}
	decode(t, raw, &water)
	if water.Progress != 1 {
		t.Fatalf("expected progress capped at 1, got %v", water.Progress)
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/water/add", user.Token, map[string]int{"amount": -10})
	assertErrorCode(t, status, raw, http.StatusBadRequest, "invalid_input")

	_, raw = requestJSON(t, engine, http.MethodPost, "/api/water/reset", user.Token, nil)
	decode(t, raw, &water)
	if water.CurrentIntake != 0 || water.DailyGoal != 500 {
		t.Fatalf("unexpected water state after reset: %+v", water)
	}
}

func TestToolsAndCatalog(t *testing.T) {
	engine := setupTestEngine(t)

	status, raw := requestJSON(t, engine, http.MethodPost, "/api/tools/calories", "", map[string]interface{}{
		"activity":        "Running",
		"durationMinutes": 30,
	})
	if status != http.StatusOK || !strings.Contains(string(raw), `"calories":356`) {
		t.Fatalf("unexpected calories response %d: %s", status, raw)
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/tools/calories", "", map[string]interface{}{"activity": ""})
	if status != http.StatusOK || strings.TrimSpace(string(raw)) != `{"result":null}` {
		t.Fatalf("expected null result for empty input, got %d: %s", status, raw)
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/tools/bmi", "", map[string]float64{"heightCm": 160, "weightKg": 80})
	if status != http.StatusOK || !strings.Contains(string(raw), `"bmi":31.3`) || !strings.Contains(string(raw), "Obese") {
		t.Fatalf("unexpected bmi response %d: %s", status, raw)
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/tools/bmi", "", map[string]float64{"heightCm": -1, "weightKg": 80})
	assertErrorCode(t, status, raw, http.StatusBadRequest, "invalid_input")

	var list struct {
		Exercises []exerciseJSON `json:"exercises"`
	}
	status, raw = requestJSON(t, engine, http.MethodGet, "/api/exercises?category=Strength&q=pl", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for exercises, got %d", status)
	}
	decode(t, raw, &list)
	if len(list.Exercises) != 1 || list.Exercises[0].Title != "Plank" {
		t.Fatalf("unexpected filtered exercises: %+v", list.Exercises)
	}

	var one struct {
		Exercise exerciseJSON `json:"exercise"`
	}
	_, raw = requestJSON(t, engine, http.MethodGet, "/api/exercises/5", "", nil)
	decode(t, raw, &one)
	if one.Exercise.Title != "Yoga Flow" {
		t.Fatalf("unexpected exercise: %+v", one.Exercise)
	}

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/exercises/categories", "", nil)
	if status != http.StatusOK || !strings.Contains(string(raw), "Flexibility") {
		t.Fatalf("unexpected categories %d: %s", status, raw)
	}

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/tips/daily", "", nil)
	if status != http.StatusOK || !strings.Contains(string(raw), `"title"`) {
		t.Fatalf("unexpected tip %d: %s", status, raw)
	}
}

func TestAuthErrors(t *testing.T) {
	engine := setupTestEngine(t)
	user := registerUser(t, engine, "Alex", "auth@example.com", "123456")

	status, raw := requestJSON(t, engine, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Other", "email": "auth@example.com", "password": "abcdef",
	})
	assertErrorCode(t, status, raw, http.StatusConflict, "email_exists")

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "auth@example.com", "password": "wrong!",
	})
	assertErrorCode(t, status, raw, http.StatusUnauthorized, "unauthorized")

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/water", "", nil)
	assertErrorCode(t, status, raw, http.StatusUnauthorized, "unauthorized")

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/auth/me", user.Token, nil)
	if status != http.StatusOK || !strings.Contains(string(raw), `"name":"Alex"`) {
		t.Fatalf("unexpected me response %d: %s", status, raw)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	engine := setupTestEngine(t)
	requestJSON(t, engine, http.MethodGet, "/health", "", nil)

	status, raw := requestJSON(t, engine, http.MethodGet, "/metrics", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for metrics, got %d", status)
	}
	if !strings.Contains(string(raw), "fitbuddy_requests_total") {
		t.Fatalf("request counter missing from metrics output")
	}
}

func TestCORSPreflight(t *testing.T) {
	engine := setupTestEngine(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	req.Header.Set("Access-Control-Request-Method", "POST")
	recorder := httptest.NewRecorder()

	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", recorder.Code)
	}
	if recorder.Header().Get("Access-Control-Allow-Origin") != "http://localhost:8081" {
		t.Fatalf("unexpected allow-origin header: %s", recorder.Header().Get("Access-Control-Allow-Origin"))
	}
}

func setupTestEngine(t *testing.T) http.Handler {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	if _, err := db.RunMigrations(database, db.MigrationsFS("")); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	recorder := metrics.NewPrometheus()
	logger := zerolog.Nop()
	backend := storage.NewCachedBackend(storage.NewSQLiteBackend(database), 1, time.Minute, recorder)
	catalogClient := catalog.NewClient(catalog.Options{
		BaseURL:  "http://127.0.0.1:1",
		Timeout:  time.Second,
		Recorder: recorder,
		Logger:   logger,
	})

	userRepo := repository.NewUserRepository(database)
	authService := service.NewAuthService(userRepo, "test-secret", 24*time.Hour)
	trackerService := service.NewTrackerService(backend, catalogClient, recorder, logger, nil)

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Exercise: handler.NewExerciseHandler(service.NewExerciseService(catalogClient)),
		Tools:    handler.NewToolsHandler(service.NewCalculatorService()),
		Tracker:  handler.NewTrackerHandler(trackerService),
	}
	return router.New(authService, handlers, router.Options{
		CORSOrigins:    []string{"http://localhost:8081"},
		Logger:         logger,
		Recorder:       recorder,
		MetricsHandler: recorder.Handler(),
	})
}

func registerUser(t *testing.T, server http.Handler, name, email, password string) authResponse {
	t.Helper()
	status, body := requestJSON(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s failed with status %d: %s", email, status, string(body))
	}
	var resp authResponse
	decode(t, body, &resp)
	if resp.Token == "" {
		t.Fatalf("empty token for user %s", email)
	}
	return resp
}

func assertErrorCode(t *testing.T, status int, body []byte, wantStatus int, wantCode string) {
	t.Helper()
	if status != wantStatus {
		t.Fatalf("expected %d, got %d: %s", wantStatus, status, body)
	}
	var resp apiErrorEnvelope
	decode(t, body, &resp)
	if resp.Error.Code != wantCode {
		t.Fatalf("expected %s, got %s", wantCode, resp.Error.Code)
	}
}

func decode(t *testing.T, body []byte, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, dst); err != nil {
		t.Fatalf("unmarshal response: %v: %s", err, body)
	}
}

func requestJSON(
	t *testing.T,
	server http.Handler,
	method, path, token string,
	body interface{},
) (int, []byte) {
	t.Helper()

	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		payload = raw
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder.Code, recorder.Body.Bytes()
}
