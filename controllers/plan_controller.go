package controllers

import (
	"net/http"

	"github.com/Rajeshwar-203/fitness-ai-backend/models"
	"github.com/Rajeshwar-203/fitness-ai-backend/services"

	"github.com/gin-gonic/gin"
)

// GeneratePlan returns the rule-based daily plan.
func GeneratePlan(c *gin.Context) {
	var req models.ProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, services.DailyPlan(req))
}

func GenerateWeeklyPlan(c *gin.Context) {
	var req models.ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := services.WeeklyPlan(req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weekly_plan": plan})
}
