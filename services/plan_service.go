package services

import (
	"github.com/Rajeshwar-203/fitness-ai-backend/models"
	"github.com/Rajeshwar-203/fitness-ai-backend/utils"
)

// DailyPlan is the rule-based single-day plan. Unknown goals fall back to
// Maintenance.
func DailyPlan(req models.ProfileRequest) models.DailyPlan {
	goal := utils.GoalOrDefault(req.Goal)
	macros := utils.CalculateMacros(goal, req.Weight)

	plan := models.DailyPlan{
		WorkoutPlan:         utils.DailyWorkout(goal),
		RecommendedCalories: macros.CalorieTarget,
		Macros:              macros,
	}
	if r, err := utils.ReadBMI(req.Height, req.Weight); err == nil {
		plan.BMI = &r.Value
		plan.BMICategory = r.Category
		plan.HealthyWeightKg = &models.WeightRange{Min: r.HealthyMinKg, Max: r.HealthyMaxKg}
	}
	return plan
}

// WeeklyPlan rejects unknown goals instead of falling back.
func WeeklyPlan(req models.ProfileRequest) (models.WeeklyPlan, error) {
	return utils.ExpandWeeklyPlan(req.Goal, req.Weight)
}
