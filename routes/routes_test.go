package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Rajeshwar-203/fitness-ai-backend/apperrors"
	"github.com/Rajeshwar-203/fitness-ai-backend/config"
	"github.com/Rajeshwar-203/fitness-ai-backend/metrics"
	"github.com/Rajeshwar-203/fitness-ai-backend/middlewares"
	"github.com/Rajeshwar-203/fitness-ai-backend/services"
	"github.com/Rajeshwar-203/fitness-ai-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type cannedGenerator struct {
	text string
	err  error
}

func (g *cannedGenerator) Generate(context.Context, string) (string, error) {
	return g.text, g.err
}

func (g *cannedGenerator) Configured() bool { return true }

type testServer struct {
	router *gin.Engine
	gen    *cannedGenerator
	auth   *services.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	st := store.NewGormStore(db)
	require.NoError(t, st.AutoMigrate())
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	log := zaptest.NewLogger(t)
	m := metrics.New(prometheus.NewRegistry())
	gen := &cannedGenerator{}
	history := services.NewHistoryService(st, log)
	auth := services.NewAuthService(st, config.AuthConfig{JWTSecret: "test", TokenTTL: time.Hour, BcryptCost: 4}, m, log)

	r := SetupRouter(Deps{
		Middleware: middlewares.New(log, m, false),
		Metrics:    m,
		Auth:       auth,
		AIPlans:    services.NewAIPlanService(gen, history, m, log),
		History:    history,
		Progress:   services.NewProgressService(st, log),
		DB:         st,
		AIEnabled:  true,
	})
	return &testServer{router: r, gen: gen, auth: auth}
}

func (s *testServer) do(method, path string, body any, header ...string) (*httptest.ResponseRecorder, []byte) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if len(header) > 0 {
		req.Header.Set("Authorization", header[0])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec, rec.Body.Bytes()
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

const mealJSON = `{"breakfast":{"dish":"Oats","description":"d","protein":20,"carbs":60,"fats":10,"calories":410},
"lunch":{"dish":"Rice","description":"d","protein":45,"carbs":80,"fats":15,"calories":635},
"snack":{"dish":"Yogurt","description":"d","protein":15,"carbs":10,"fats":5,"calories":145},
"dinner":{"dish":"Salmon","description":"d","protein":40,"carbs":30,"fats":20,"calories":460},
"summary":{"total_protein":120,"total_carbs":180,"total_fats":50,"total_calories":1650}}`

func TestRoutes_HomeAndHealth(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Fitness AI Backend Running Successfully!", decode(t, body)["message"])

	rec, body = s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, body)["status"])

	rec, _ = s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_SignupLogin(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodPost, "/signup", gin.H{"name": "Ada", "email": "ada@example.com", "password": "hunter22"})
	require.Equal(t, http.StatusOK, rec.Code, string(body))
	out := decode(t, body)
	assert.Equal(t, "Signup successful", out["message"])
	assert.Equal(t, "Ada", out["name"])
	assert.NotEmpty(t, out["token"])

	rec, body = s.do(http.MethodPost, "/signup", gin.H{"name": "Ada", "email": "ada@example.com", "password": "hunter22"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already exists", decode(t, body)["error"])

	rec, body = s.do(http.MethodPost, "/login", gin.H{"email": "ada@example.com", "password": "hunter22"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful", decode(t, body)["message"])

	rec, body = s.do(http.MethodPost, "/login", gin.H{"email": "ada@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect password", decode(t, body)["error"])

	rec, body = s.do(http.MethodPost, "/login", gin.H{"email": "bob@example.com", "password": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decode(t, body)["error"])

	rec, body = s.do(http.MethodPost, "/signup", gin.H{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, body)["error"], "name is required")
}

func TestRoutes_GeneratePlan(t *testing.T) {
	s := newTestServer(t)

	profile := gin.H{"name": "Ada", "goal": "Gain Muscle", "height": 180, "weight": 80, "equipment": []string{}, "cuisine": "Indian"}
	rec, body := s.do(http.MethodPost, "/generate-plan", profile)
	require.Equal(t, http.StatusOK, rec.Code, string(body))

	out := decode(t, body)
	assert.Equal(t, float64(2400), out["recommended_calories"])
	assert.Equal(t, map[string]any{"protein_g": 144.0, "carbs_g": 273.6, "fats_g": 81.1}, out["macros"])
	assert.Equal(t, []any{"Pushups", "Squats", "Planks"}, out["workout_plan"])
}

func TestRoutes_GenerateWeeklyPlan(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodPost, "/generate-weekly-plan", gin.H{"name": "Ada", "goal": "Maintenance", "height": 170, "weight": 70})
	require.Equal(t, http.StatusOK, rec.Code, string(body))
	week := decode(t, body)["weekly_plan"].([]any)
	require.Len(t, week, 7)
	assert.Equal(t, "Monday", week[0].(map[string]any)["day"])
	assert.Equal(t, "Light Cardio", week[0].(map[string]any)["workout"])

	rec, body = s.do(http.MethodPost, "/generate-weekly-plan", gin.H{"name": "Ada", "goal": "Bulk", "height": 170, "weight": 70})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(apperrors.CodeInvalidGoal), decode(t, body)["code"])
}

func TestRoutes_MealPlanAndHistory(t *testing.T) {
	s := newTestServer(t)
	s.gen.text = "```json\n" + mealJSON + "\n```"

	req := gin.H{"goal": "Lose Fat", "calories": 1800, "diet_type": "Veg", "cuisine": "Indian", "protein": 90, "user_email": "ada@example.com"}
	for i := 0; i < 6; i++ {
		rec, body := s.do(http.MethodPost, "/generate-meal-plan", req)
		require.Equal(t, http.StatusOK, rec.Code, string(body))
		assert.Equal(t, "Oats", decode(t, body)["meal_plan"].(map[string]any)["breakfast"].(map[string]any)["dish"])
	}

	rec, body := s.do(http.MethodGet, "/meal-history?email=ada@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(body, &records))
	require.Len(t, records, 5)
	assert.Equal(t, "Lose Fat", records[0]["goal"])
	assert.Equal(t, "ada@example.com", records[0]["email"])
	assert.NotContains(t, records[0], "user_email")

	rec, body = s.do(http.MethodGet, "/meal-history?email=nobody@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(body))

	rec, _ = s.do(http.MethodGet, "/meal-history", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoutes_WorkoutPlanUsesTokenIdentity(t *testing.T) {
	s := newTestServer(t)
	s.gen.text = `[{"exercise":"Squats","section":"Main","muscles":"Legs","duration":"3 x 12","difficulty":"OK","tip":"Slow down"}]`

	token, _, err := s.auth.Signup(context.Background(), "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	req := gin.H{"goal": "Gain Muscle", "available_time": 30, "equipment": []string{"dumbbells"}, "fitness_level": "Beginner", "age": 30}
	rec, body := s.do(http.MethodPost, "/generate-workout-plan-ai", req, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code, string(body))
	assert.Len(t, decode(t, body)["workout_plan"], 1)

	rec, body = s.do(http.MethodGet, "/workout-history", nil, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(body, &records))
	assert.Len(t, records, 1)

	rec, _ = s.do(http.MethodPost, "/generate-workout-plan-ai", req, "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoutes_AIFailures(t *testing.T) {
	s := newTestServer(t)
	req := gin.H{"goal": "Lose Fat", "calories": 1800, "diet_type": "Veg", "cuisine": "Indian", "protein": 90}

	s.gen.text = "Here is a lovely plan with no JSON at all"
	rec, body := s.do(http.MethodPost, "/generate-meal-plan", req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	out := decode(t, body)
	assert.Equal(t, string(apperrors.CodeMalformedPlanResponse), out["code"])
	assert.NotContains(t, out, "details")

	s.gen.text, s.gen.err = "", apperrors.ProviderUnavailable("AI provider is not configured", nil)
	rec, _ = s.do(http.MethodPost, "/generate-meal-plan", req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, body = s.do(http.MethodPost, "/generate-meal-plan", gin.H{"goal": "Lose Fat"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(apperrors.CodeValidation), decode(t, body)["code"])
}

func TestRoutes_Progress(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodPost, "/save-progress", gin.H{"email": "ada@example.com", "date": "2024-06-01", "weight": 71.2, "extra": gin.H{"steps": 9000}})
	require.Equal(t, http.StatusOK, rec.Code, string(body))
	assert.Equal(t, "Progress saved", decode(t, body)["message"])

	rec, body = s.do(http.MethodPost, "/save-progress", gin.H{"email": "ada@example.com", "date": "2024-06-02", "weight": 70.8})
	require.Equal(t, http.StatusOK, rec.Code, string(body))

	rec, _ = s.do(http.MethodPost, "/save-progress", gin.H{"email": "ada@example.com", "date": "June 3rd"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = s.do(http.MethodGet, "/get-progress/ada@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(body, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 70.8, entries[0]["weight"])
	assert.Equal(t, map[string]any{"steps": float64(9000)}, entries[1]["extra"])
}

func TestRoutes_ProfileRequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(http.MethodGet, "/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := s.auth.Signup(context.Background(), "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	rec, body := s.do(http.MethodGet, "/profile", nil, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, body)
	assert.Equal(t, "Ada", out["name"])
	assert.Equal(t, "ada@example.com", out["email"])
}

func TestRoutes_SignupAcceptsLegacyCredentials(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(http.MethodPost, "/signup", gin.H{"name": "Kid", "email": "kid", "password": "abc"})
	require.Equal(t, http.StatusOK, rec.Code, string(body))

	rec, body = s.do(http.MethodPost, "/login", gin.H{"email": "KID", "password": "abc"})
	require.Equal(t, http.StatusOK, rec.Code, string(body))
	assert.Equal(t, "Kid", decode(t, body)["name"])

	rec, body = s.do(http.MethodPost, "/signup", gin.H{"name": "Kid", "email": "kid2", "password": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, body)["error"], "password is required")
}

func TestRoutes_HistoryIdentityIgnoresCase(t *testing.T) {
	s := newTestServer(t)
	s.gen.text = mealJSON

	token, _, err := s.auth.Signup(context.Background(), "Ada", "Ada@Example.com", "hunter22")
	require.NoError(t, err)

	req := gin.H{"goal": "Lose Fat", "calories": 1800, "diet_type": "Veg", "cuisine": "Indian", "protein": 90, "user_email": " ADA@example.com"}
	rec, body := s.do(http.MethodPost, "/generate-meal-plan", req)
	require.Equal(t, http.StatusOK, rec.Code, string(body))

	rec, body = s.do(http.MethodGet, "/meal-history", nil, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(body, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "ada@example.com", records[0]["email"])

	rec, body = s.do(http.MethodGet, "/meal-history?email=Ada@EXAMPLE.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(body, &records))
	assert.Len(t, records, 1)
}
