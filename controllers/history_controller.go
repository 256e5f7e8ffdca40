package controllers

import (
	"net/http"

	"github.com/Rajeshwar-203/fitness-ai-backend/apperrors"
	"github.com/Rajeshwar-203/fitness-ai-backend/models"
	"github.com/Rajeshwar-203/fitness-ai-backend/services"

	"github.com/gin-gonic/gin"
)

type HistoryController struct {
	history *services.HistoryService
}

func NewHistoryController(history *services.HistoryService) *HistoryController {
	return &HistoryController{history: history}
}

func (hc *HistoryController) MealHistory(c *gin.Context) {
	hc.list(c, models.PlanKindMeal)
}

func (hc *HistoryController) WorkoutHistory(c *gin.Context) {
	hc.list(c, models.PlanKindWorkout)
}

func (hc *HistoryController) list(c *gin.Context, kind models.PlanKind) {
	email := identity(c, c.Query("email"))
	if email == "" {
		_ = c.Error(apperrors.Validation("email query parameter is required"))
		return
	}

	records, err := hc.history.RecentFor(c.Request.Context(), kind, email, 0)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, records)
}
