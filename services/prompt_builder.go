package services

import (
	"fmt"
	"strings"

	"github.com/Rajeshwar-203/fitness-ai-backend/models"
)

const (
	defaultDietPreference   = "No specific preference"
	defaultHealthConditions = "No major health issues"
	defaultEquipment        = "No equipment"
)

const jsonOnlyRules = `Rules:
- Respond with a single JSON value and nothing else.
- Do not wrap the JSON in markdown code fences.
- Do not add prose, headings, emojis or commentary before or after the JSON.
- Use plain numbers (no units) for every numeric field.`

// BuildMealPlanPrompt renders the meal-plan instructions for req.
func BuildMealPlanPrompt(req models.MealPlanRequest) string {
	pref := strings.TrimSpace(req.DietPreference)
	if pref == "" {
		pref = defaultDietPreference
	}

	return fmt.Sprintf(`You are a nutrition coach for a fitness app. Create a one-day meal plan.

User details:
- Goal: %s
- Daily calorie target: %d kcal
- Protein target: %s g
- Diet type: %s
- Cuisine: %s
- Diet preference: %s

Return exactly this JSON object:
{
  "breakfast": {"dish": string, "description": string, "protein": number, "carbs": number, "fats": number, "calories": number},
  "lunch":     {"dish": string, "description": string, "protein": number, "carbs": number, "fats": number, "calories": number},
  "snack":     {"dish": string, "description": string, "protein": number, "carbs": number, "fats": number, "calories": number},
  "dinner":    {"dish": string, "description": string, "protein": number, "carbs": number, "fats": number, "calories": number},
  "summary":   {"total_protein": number, "total_carbs": number, "total_fats": number, "total_calories": number, "notes": string}
}

The meal totals should add up to the calorie and protein targets. Keep descriptions to one short sentence.
Put 3 to 5 short, beginner-friendly tips in summary.notes.

%s`,
		req.Goal, req.Calories, formatGrams(req.Protein), req.DietType, req.Cuisine, pref, jsonOnlyRules)
}

// BuildWorkoutPlanPrompt renders the single-session workout instructions for req.
func BuildWorkoutPlanPrompt(req models.WorkoutPlanRequest) string {
	equipment := joinOrDefault(req.Equipment, defaultEquipment)
	health := joinOrDefault(req.HealthConditions, defaultHealthConditions)

	return fmt.Sprintf(`You are an expert fitness coach. Create a personalized single-day workout plan.

User profile:
- Goal: %s
- Age: %d
- Fitness level: %s
- Available time per session: %d minutes
- Available equipment: %s
- Health conditions: %s

Requirements:
- Fit the whole session within the available time.
- Put safety first when health conditions are present.
- Start with a warm-up, finish with a cool-down, and include 4 to 6 main exercises.

Return exactly this JSON array, one object per exercise in session order:
[
  {"exercise": string, "section": "Warm-up" | "Main" | "Cool-down", "muscles": string, "duration": string, "difficulty": "Easy" | "OK" | "Hard", "tip": string}
]

"duration" is either minutes (e.g. "5 min") or sets and reps (e.g. "3 x 12"). "tip" is one short coaching line.

%s`,
		req.Goal, req.Age, req.FitnessLevel, req.AvailableTime, equipment, health, jsonOnlyRules)
}

func joinOrDefault(items []string, fallback string) string {
	kept := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return fallback
	}
	return strings.Join(kept, ", ")
}

func formatGrams(g float64) string {
	if g == float64(int64(g)) {
		return fmt.Sprintf("%d", int64(g))
	}
	return fmt.Sprintf("%.1f", g)
}
