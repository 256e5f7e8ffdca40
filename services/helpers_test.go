package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Rajeshwar-203/fitness-ai-backend/store"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *mockGenerator) Configured() bool {
	return true
}

func newTestStore(t *testing.T) *store.GormStore {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	s := store.NewGormStore(db)
	require.NoError(t, s.AutoMigrate())
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

const validMealJSON = `{
  "breakfast": {"dish": "Oats", "description": "Oats with berries", "protein": 20, "carbs": 60, "fats": 10, "calories": 410},
  "lunch": {"dish": "Chicken rice", "description": "Grilled chicken", "protein": 45, "carbs": 80, "fats": 15, "calories": 635},
  "snack": {"dish": "Greek yogurt", "description": "Plain", "protein": 15, "carbs": 10, "fats": 5, "calories": 145},
  "dinner": {"dish": "Salmon", "description": "With greens", "protein": 40, "carbs": 30, "fats": 20, "calories": 460},
  "summary": {"total_protein": 120, "total_carbs": 180, "total_fats": 50, "total_calories": 1650, "notes": "Drink water"}
}`

const validWorkoutJSON = `[
  {"exercise": "Jumping Jacks", "section": "Warm-up", "muscles": "Full body", "duration": "5 min", "difficulty": "Easy", "tip": "Stay light on your feet"},
  {"exercise": "Squats", "section": "Main", "muscles": "Quads, glutes", "duration": "3 x 12", "difficulty": "OK", "tip": "Knees over toes"},
  {"exercise": "Hamstring stretch", "section": "Cool-down", "muscles": "Hamstrings", "duration": "5 min", "difficulty": "Easy", "tip": "Breathe slowly"}
]`
