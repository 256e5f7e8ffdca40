package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Rajeshwar-203/fitness-ai-backend/apperrors"
	"github.com/Rajeshwar-203/fitness-ai-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `  {"a":1}  `, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```\n", `[1,2]`},
		{"not leading", "here:\n```json\n{}\n```", "here:\n```json\n{}\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}

func TestNormalizeMealPlan_FencedEqualsPlain(t *testing.T) {
	plain, err := NormalizeMealPlan(validMealJSON)
	require.NoError(t, err)

	fenced, err := NormalizeMealPlan("```json\n" + validMealJSON + "\n```")
	require.NoError(t, err)

	assert.Equal(t, plain, fenced)
	assert.Equal(t, "Oats", plain.Breakfast.Dish)
	assert.Equal(t, 1650.0, plain.Summary.TotalCalories)
	assert.Equal(t, "Drink water", plain.Summary.Notes)
}

func TestNormalizeMealPlan_LenientNumbersAndNotes(t *testing.T) {
	text := strings.Replace(validMealJSON, `"protein": 20,`, `"protein": "20.5 g",`, 1)
	text = strings.Replace(text, `"notes": "Drink water"`, `"notes": ["Drink water", "Sleep well"]`, 1)

	plan, err := NormalizeMealPlan(text)
	require.NoError(t, err)
	assert.Equal(t, 20.5, plan.Breakfast.Protein)
	assert.Equal(t, "Drink water\nSleep well", plan.Summary.Notes)
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{`25`, 25},
		{`"25"`, 25},
		{`"20.5 g"`, 20.5},
		{`"20.5g"`, 20.5},
		{`"1,200"`, 1200},
		{`"1,200 kcal"`, 1200},
		{`"12,345,678.5"`, 12345678.5},
		{`" 450 kcal "`, 450},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var n number
			require.NoError(t, json.Unmarshal([]byte(tt.in), &n))
			assert.Equal(t, tt.want, float64(n))
		})
	}

	for _, bad := range []string{`"1.200,5"`, `"1,20"`, `"about 30 g"`, `"30-40 g"`, `"25 g protein"`, `null`, `""`, `true`} {
		t.Run("reject "+bad, func(t *testing.T) {
			var n number
			assert.Error(t, json.Unmarshal([]byte(bad), &n))
		})
	}
}

func TestNormalizeMealPlan_ThousandsSeparators(t *testing.T) {
	text := strings.Replace(validMealJSON, `"total_calories": 1650`, `"total_calories": "1,650 kcal"`, 1)
	text = strings.Replace(text, `"calories": 410`, `"calories": "410 kcal"`, 1)

	plan, err := NormalizeMealPlan(text)
	require.NoError(t, err)
	assert.Equal(t, 1650.0, plan.Summary.TotalCalories)
	assert.Equal(t, 410.0, plan.Breakfast.Calories)
}

func TestNormalizeMealPlan_TrimsMealText(t *testing.T) {
	text := strings.Replace(validMealJSON, `"dish": "Oats"`, `"dish": "  Oats  "`, 1)

	plan, err := NormalizeMealPlan(text)
	require.NoError(t, err)
	assert.Equal(t, "Oats", plan.Breakfast.Dish)
}

func TestNormalizeMealPlan_ProseAroundJSON(t *testing.T) {
	plan, err := NormalizeMealPlan("Sure! Here is your plan:\n" + validMealJSON + "\nEnjoy!")
	require.NoError(t, err)
	assert.Equal(t, "Salmon", plan.Dinner.Dish)
}

func TestNormalizeMealPlan_Failures(t *testing.T) {
	missingSnack := `{"breakfast": {"dish": "a", "protein": 1, "carbs": 1, "fats": 1, "calories": 1},
		"lunch": {"dish": "b", "protein": 1, "carbs": 1, "fats": 1, "calories": 1},
		"dinner": {"dish": "c", "protein": 1, "carbs": 1, "fats": 1, "calories": 1},
		"summary": {"total_protein": 3, "total_carbs": 3, "total_fats": 3, "total_calories": 3}}`
	missingNumber := strings.Replace(validMealJSON, `"fats": 5, `, ``, 1)
	blankDish := strings.Replace(validMealJSON, `"dish": "Salmon"`, `"dish": "   "`, 1)
	ambiguousNumber := strings.Replace(validMealJSON, `"total_calories": 1650`, `"total_calories": "1.200,5"`, 1)

	for name, text := range map[string]string{
		"not json":       "🍽️ **Daily Meal Plan**\n- Oats\n- Chicken",
		"empty":          "   ",
		"missing slot":   missingSnack,
		"missing number": missingNumber,
		"blank dish":     blankDish,
		"ambiguous num":  ambiguousNumber,
		"array":          validWorkoutJSON,
	} {
		t.Run(name, func(t *testing.T) {
			plan, err := NormalizeMealPlan(text)
			assert.Nil(t, plan)
			assert.ErrorIs(t, err, apperrors.ErrMalformedPlanResponse)
		})
	}
}

func TestNormalizeMealPlan_PreviewIsTruncated(t *testing.T) {
	text := strings.Repeat("x", 500)

	_, err := NormalizeMealPlan(text)
	appErr := apperrors.From(err)
	require.Equal(t, apperrors.CodeMalformedPlanResponse, appErr.Code)
	assert.Contains(t, appErr.Details, strings.Repeat("x", previewLimit)+"...")
	assert.NotContains(t, appErr.Details, strings.Repeat("x", previewLimit+1))
}

func TestNormalizeWorkoutPlan(t *testing.T) {
	plan, err := NormalizeWorkoutPlan("```json\n" + validWorkoutJSON + "\n```")
	require.NoError(t, err)
	require.Len(t, plan, 3)
	assert.Equal(t, models.SectionWarmUp, plan[0].Section)
	assert.Equal(t, models.DifficultyOK, plan[1].Difficulty)
	assert.Equal(t, models.SectionCoolDown, plan[2].Section)
}

func TestNormalizeWorkoutPlan_CanonicalizesLabelsAndWrapper(t *testing.T) {
	text := `{"workout_plan": [{"exercise": "Plank", "section": "warm up", "muscles": "Core", "duration": "1 min", "difficulty": "moderate", "tip": "Brace"}]}`

	plan, err := NormalizeWorkoutPlan(text)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, models.SectionWarmUp, plan[0].Section)
	assert.Equal(t, models.DifficultyOK, plan[0].Difficulty)
}

func TestNormalizeWorkoutPlan_Failures(t *testing.T) {
	for name, text := range map[string]string{
		"empty list":         `[]`,
		"not json":           "1️⃣ **Squats**\n• Target: legs",
		"blank field":        `[{"exercise": "Plank", "section": "Main", "muscles": "", "duration": "1 min", "difficulty": "Easy", "tip": "Brace"}]`,
		"unknown section":    `[{"exercise": "Plank", "section": "Finisher", "muscles": "Core", "duration": "1 min", "difficulty": "Easy", "tip": "Brace"}]`,
		"unknown difficulty": `[{"exercise": "Plank", "section": "Main", "muscles": "Core", "duration": "1 min", "difficulty": "Brutal", "tip": "Brace"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			plan, err := NormalizeWorkoutPlan(text)
			assert.Nil(t, plan)
			assert.ErrorIs(t, err, apperrors.ErrMalformedPlanResponse)
		})
	}
}
