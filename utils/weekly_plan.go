package utils

import (
	"github.com/Rajeshwar-203/fitness-ai-backend/models"
)

var weekdays = [7]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// ExpandWeeklyPlan pairs each weekday with the goal's workout rotation.
// Macros are identical every day; only the workout varies.
func ExpandWeeklyPlan(goal string, bodyWeightKg float64) (models.WeeklyPlan, error) {
	g, err := ParseGoal(goal)
	if err != nil {
		return nil, err
	}

	rule := goalRules[g]
	macros := CalculateMacros(g, bodyWeightKg)

	plan := make(models.WeeklyPlan, 0, len(weekdays))
	for i, day := range weekdays {
		plan = append(plan, models.DailyPlanEntry{
			Day:      day,
			Workout:  rule.weeklyRotation[i],
			Calories: rule.calories,
			Macros:   macros,
		})
	}
	return plan, nil
}
