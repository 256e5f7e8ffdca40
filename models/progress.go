package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProgressEntry is one self-reported progress snapshot. Stored and returned as-is.
type ProgressEntry struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Email            string         `gorm:"index;not null" json:"email" binding:"required"`
	Date             time.Time      `gorm:"index" json:"date"`
	Weight           float64        `json:"weight,omitempty"`
	CaloriesConsumed float64        `json:"calories_consumed,omitempty"`
	WorkoutDone      string         `json:"workout_done,omitempty"`
	Notes            string         `gorm:"type:text" json:"notes,omitempty"`
	Extra            datatypes.JSON `json:"extra,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}
