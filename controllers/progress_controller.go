package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Rajeshwar-203/fitness-ai-backend/apperrors"
	"github.com/Rajeshwar-203/fitness-ai-backend/models"
	"github.com/Rajeshwar-203/fitness-ai-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type ProgressController struct {
	progress *services.ProgressService
}

func NewProgressController(progress *services.ProgressService) *ProgressController {
	return &ProgressController{progress: progress}
}

type ProgressInput struct {
	Email            string          `json:"email"`
	Date             string          `json:"date"`
	Weight           float64         `json:"weight" binding:"gte=0"`
	CaloriesConsumed float64         `json:"calories_consumed" binding:"gte=0"`
	WorkoutDone      string          `json:"workout_done"`
	Notes            string          `json:"notes"`
	Extra            json.RawMessage `json:"extra"`
}

var progressDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseProgressDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	for _, layout := range progressDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func (pc *ProgressController) SaveProgress(c *gin.Context) {
	var input ProgressInput
	if !bindJSON(c, &input) {
		return
	}

	date, ok := parseProgressDate(input.Date)
	if !ok {
		_ = c.Error(apperrors.Validation("date must be YYYY-MM-DD or RFC 3339"))
		return
	}

	entry := &models.ProgressEntry{
		Email:            identity(c, input.Email),
		Date:             date,
		Weight:           input.Weight,
		CaloriesConsumed: input.CaloriesConsumed,
		WorkoutDone:      input.WorkoutDone,
		Notes:            input.Notes,
	}
	if len(input.Extra) > 0 && string(input.Extra) != "null" {
		entry.Extra = datatypes.JSON(input.Extra)
	}

	if err := pc.progress.Save(c.Request.Context(), entry); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Progress saved", "id": entry.ID})
}

func (pc *ProgressController) GetProgress(c *gin.Context) {
	entries, err := pc.progress.ListFor(c.Request.Context(), c.Param("email"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
