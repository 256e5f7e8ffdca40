package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Rajeshwar-203/fitness-ai-backend/apperrors"
	"github.com/Rajeshwar-203/fitness-ai-backend/models"
	"github.com/Rajeshwar-203/fitness-ai-backend/utils"

	"github.com/go-playground/validator/v10"
)

const previewLimit = 200

var planValidator = validator.New()

// number accepts 25, 25.5, "25", "25 g" and "1,200 kcal". A string must be a
// single numeric token with an optional alphabetic unit; anything else is rejected.
type number float64

var numericString = regexp.MustCompile(`^(-?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?)\s*([A-Za-z]+)?$`)

func (n *number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("number is null")
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected a number, got %s", data)
	}
	m := numericString.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return fmt.Errorf("expected a number, got %q", s)
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return err
	}
	*n = number(f)
	return nil
}

type rawMeal struct {
	Dish        string  `json:"dish" validate:"required"`
	Description string  `json:"description"`
	Protein     *number `json:"protein" validate:"required"`
	Carbs       *number `json:"carbs" validate:"required"`
	Fats        *number `json:"fats" validate:"required"`
	Calories    *number `json:"calories" validate:"required"`
}

type rawSummary struct {
	TotalProtein  *number `json:"total_protein" validate:"required"`
	TotalCarbs    *number `json:"total_carbs" validate:"required"`
	TotalFats     *number `json:"total_fats" validate:"required"`
	TotalCalories *number `json:"total_calories" validate:"required"`
	Notes         any     `json:"notes"`
}

type rawMealPlan struct {
	Breakfast *rawMeal    `json:"breakfast" validate:"required"`
	Lunch     *rawMeal    `json:"lunch" validate:"required"`
	Snack     *rawMeal    `json:"snack" validate:"required"`
	Dinner    *rawMeal    `json:"dinner" validate:"required"`
	Summary   *rawSummary `json:"summary" validate:"required"`
}

type rawExercise struct {
	Exercise   string `json:"exercise" validate:"required"`
	Section    string `json:"section" validate:"required"`
	Muscles    string `json:"muscles" validate:"required"`
	Duration   string `json:"duration" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required"`
	Tip        string `json:"tip" validate:"required"`
}

// StripCodeFence trims text and, when it opens with a ``` marker, drops every
// line that is only a fence marker (with an optional language tag).
func StripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	lines := strings.Split(t, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if isFenceLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isFenceLine(line string) bool {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "```") {
		return false
	}
	tag := strings.TrimLeft(s, "`")
	for _, r := range tag {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' || r == '+') {
			return false
		}
	}
	return true
}

// NormalizeMealPlan parses provider text into a complete MealPlan.
func NormalizeMealPlan(text string) (*models.MealPlan, error) {
	var raw rawMealPlan
	if err := decodePlanJSON(text, '{', '}', &raw); err != nil {
		return nil, malformed(text, err)
	}
	for _, m := range []*rawMeal{raw.Breakfast, raw.Lunch, raw.Snack, raw.Dinner} {
		if m != nil {
			m.Dish = strings.TrimSpace(m.Dish)
			m.Description = strings.TrimSpace(m.Description)
		}
	}
	if err := planValidator.Struct(raw); err != nil {
		return nil, malformed(text, err)
	}

	notes := ""
	switch v := raw.Summary.Notes.(type) {
	case string:
		notes = strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, strings.TrimSpace(fmt.Sprint(item)))
		}
		notes = strings.Join(parts, "\n")
	}

	return &models.MealPlan{
		Breakfast: raw.Breakfast.toMeal(),
		Lunch:     raw.Lunch.toMeal(),
		Snack:     raw.Snack.toMeal(),
		Dinner:    raw.Dinner.toMeal(),
		Summary: models.MealSummary{
			TotalProtein:  utils.RoundTo1(float64(*raw.Summary.TotalProtein)),
			TotalCarbs:    utils.RoundTo1(float64(*raw.Summary.TotalCarbs)),
			TotalFats:     utils.RoundTo1(float64(*raw.Summary.TotalFats)),
			TotalCalories: utils.RoundTo1(float64(*raw.Summary.TotalCalories)),
			Notes:         notes,
		},
	}, nil
}

func (m *rawMeal) toMeal() models.Meal {
	return models.Meal{
		Dish:        m.Dish,
		Description: m.Description,
		Protein:     utils.RoundTo1(float64(*m.Protein)),
		Carbs:       utils.RoundTo1(float64(*m.Carbs)),
		Fats:        utils.RoundTo1(float64(*m.Fats)),
		Calories:    utils.RoundTo1(float64(*m.Calories)),
	}
}

// NormalizeWorkoutPlan parses provider text into a non-empty WorkoutPlan.
// An object wrapping the list under "workout_plan" or "exercises" is accepted.
func NormalizeWorkoutPlan(text string) (models.WorkoutPlan, error) {
	var raw []rawExercise
	if err := decodePlanJSON(text, '[', ']', &raw); err != nil {
		var wrapped struct {
			WorkoutPlan []rawExercise `json:"workout_plan"`
			Exercises   []rawExercise `json:"exercises"`
		}
		if werr := decodePlanJSON(text, '{', '}', &wrapped); werr != nil {
			return nil, malformed(text, err)
		}
		raw = wrapped.WorkoutPlan
		if len(raw) == 0 {
			raw = wrapped.Exercises
		}
	}
	if len(raw) == 0 {
		return nil, malformed(text, fmt.Errorf("workout plan has no exercises"))
	}

	plan := make(models.WorkoutPlan, 0, len(raw))
	for i := range raw {
		ex := raw[i]
		trimExercise(&ex)
		if err := planValidator.Struct(ex); err != nil {
			return nil, malformed(text, fmt.Errorf("exercise %d: %w", i, err))
		}
		section, err := canonicalSection(ex.Section)
		if err != nil {
			return nil, malformed(text, fmt.Errorf("exercise %d: %w", i, err))
		}
		difficulty, err := canonicalDifficulty(ex.Difficulty)
		if err != nil {
			return nil, malformed(text, fmt.Errorf("exercise %d: %w", i, err))
		}
		plan = append(plan, models.Exercise{
			Exercise:   ex.Exercise,
			Section:    section,
			Muscles:    ex.Muscles,
			Duration:   ex.Duration,
			Difficulty: difficulty,
			Tip:        ex.Tip,
		})
	}
	return plan, nil
}

func trimExercise(ex *rawExercise) {
	ex.Exercise = strings.TrimSpace(ex.Exercise)
	ex.Section = strings.TrimSpace(ex.Section)
	ex.Muscles = strings.TrimSpace(ex.Muscles)
	ex.Duration = strings.TrimSpace(ex.Duration)
	ex.Difficulty = strings.TrimSpace(ex.Difficulty)
	ex.Tip = strings.TrimSpace(ex.Tip)
}

func canonicalSection(s string) (string, error) {
	switch squash(s) {
	case "warmup", "warmingup":
		return models.SectionWarmUp, nil
	case "main", "mainworkout", "workout":
		return models.SectionMain, nil
	case "cooldown", "coolingdown":
		return models.SectionCoolDown, nil
	}
	return "", fmt.Errorf("unknown section %q", s)
}

func canonicalDifficulty(s string) (string, error) {
	switch squash(s) {
	case "easy":
		return models.DifficultyEasy, nil
	case "ok", "okay", "moderate", "medium":
		return models.DifficultyOK, nil
	case "hard":
		return models.DifficultyHard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

func squash(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// decodePlanJSON strips fences and decodes. If that fails it retries once on
// the span between the first open and the last close delimiter.
func decodePlanJSON(text string, opening, closing byte, v any) error {
	cleaned := StripCodeFence(text)
	if cleaned == "" {
		return fmt.Errorf("empty response")
	}
	err := json.Unmarshal([]byte(cleaned), v)
	if err == nil {
		return nil
	}

	start := strings.IndexByte(cleaned, opening)
	end := strings.LastIndexByte(cleaned, closing)
	if start < 0 || end <= start {
		return err
	}
	if rerr := json.Unmarshal([]byte(cleaned[start:end+1]), v); rerr != nil {
		return err
	}
	return nil
}

func malformed(text string, cause error) error {
	return apperrors.MalformedPlanResponse(preview(text), cause)
}

// preview truncates s to previewLimit runes.
func preview(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= previewLimit {
		return s
	}
	runes := []rune(s)
	return string(runes[:previewLimit]) + "..."
}
