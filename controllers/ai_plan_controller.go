package controllers

import (
	"net/http"

	"github.com/Rajeshwar-203/fitness-ai-backend/models"
	"github.com/Rajeshwar-203/fitness-ai-backend/services"

	"github.com/gin-gonic/gin"
)

type AIPlanController struct {
	plans *services.AIPlanService
}

func NewAIPlanController(plans *services.AIPlanService) *AIPlanController {
	return &AIPlanController{plans: plans}
}

func (pc *AIPlanController) GenerateMealPlan(c *gin.Context) {
	var req models.MealPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	req.UserEmail = identity(c, req.UserEmail)

	plan, err := pc.plans.GenerateMealPlan(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plan": plan})
}

func (pc *AIPlanController) GenerateWorkoutPlan(c *gin.Context) {
	var req models.WorkoutPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	req.UserEmail = identity(c, req.UserEmail)

	plan, err := pc.plans.GenerateWorkoutPlan(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workout_plan": plan})
}
