package utils

import (
	"math"
	"strings"

	"github.com/Rajeshwar-203/fitness-ai-backend/apperrors"
	"github.com/Rajeshwar-203/fitness-ai-backend/models"
)

type goalRule struct {
	calories       int
	proteinPerKg   float64
	dailyWorkout   []string
	weeklyRotation [7]string
}

var goalRules = map[models.Goal]goalRule{
	models.GoalLoseFat: {
		calories:     1800,
		proteinPerKg: 1.5,
		dailyWorkout: []string{"Jumping Jacks", "Mountain Climbers", "Burpees"},
		weeklyRotation: [7]string{
			"HIIT + Cardio",
			"Full Body Circuit",
			"Core + Abs",
			"Active Recovery Walk",
			"HIIT + Strength Mix",
			"Lower Body Conditioning",
			"Rest / Stretch",
		},
	},
	models.GoalGainMuscle: {
		calories:     2400,
		proteinPerKg: 1.8,
		dailyWorkout: []string{"Pushups", "Squats", "Planks"},
		weeklyRotation: [7]string{
			"Chest + Triceps",
			"Back + Biceps",
			"Leg Day",
			"Shoulders + Abs",
			"Full Body Strength",
			"Glutes + Hamstrings",
			"Rest / Mobility",
		},
	},
	models.GoalMaintenance: {
		calories:     2000,
		proteinPerKg: 1.2,
		dailyWorkout: []string{"Walking", "Bodyweight Squats", "Light Core"},
		weeklyRotation: [7]string{
			"Light Cardio",
			"Upper Body",
			"Core Stability",
			"Lower Body",
			"Full Body",
			"Yoga / Stretch",
			"Rest",
		},
	},
}

// ParseGoal accepts "Lose Fat", "lose_fat", "LoseFat" and so on.
func ParseGoal(s string) (models.Goal, error) {
	key := strings.ToLower(s)
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	switch key {
	case "losefat":
		return models.GoalLoseFat, nil
	case "gainmuscle":
		return models.GoalGainMuscle, nil
	case "maintenance":
		return models.GoalMaintenance, nil
	}
	return "", apperrors.InvalidGoal(s)
}

// GoalOrDefault resolves unrecognized input to Maintenance.
func GoalOrDefault(s string) models.Goal {
	g, err := ParseGoal(s)
	if err != nil {
		return models.GoalMaintenance
	}
	return g
}

func CalorieTarget(goal models.Goal) int {
	return ruleFor(goal).calories
}

// DailyWorkout returns the fixed three-exercise list for goal.
func DailyWorkout(goal models.Goal) []string {
	return append([]string(nil), ruleFor(goal).dailyWorkout...)
}

// CalculateMacros splits the goal's calorie target: protein by body weight,
// then the remainder 60/40 between carbs and fats. The remainder is not
// clamped, so implausible weights yield negative carbs and fats.
func CalculateMacros(goal models.Goal, bodyWeightKg float64) models.MacroTargets {
	rule := ruleFor(goal)

	protein := bodyWeightKg * rule.proteinPerKg
	remaining := float64(rule.calories) - protein*4

	carbs := (remaining * 0.6) / 4
	fats := (remaining * 0.4) / 9

	return models.MacroTargets{
		CalorieTarget: rule.calories,
		ProteinGrams:  RoundTo1(protein),
		CarbsGrams:    RoundTo1(carbs),
		FatsGrams:     RoundTo1(fats),
	}
}

// RoundTo1 rounds half away from zero to one decimal place.
func RoundTo1(x float64) float64 {
	return math.Round(x*10) / 10
}

func ruleFor(goal models.Goal) goalRule {
	if rule, ok := goalRules[goal]; ok {
		return rule
	}
	return goalRules[models.GoalMaintenance]
}
