package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// HistoryRecord is an AI plan persisted for an identity. Insert-only.
type HistoryRecord struct {
	ID        string         `gorm:"primaryKey;size:36"`
	Kind      PlanKind       `gorm:"size:16;index:idx_history_lookup,priority:1;not null"`
	Identity  string         `gorm:"index:idx_history_lookup,priority:2;not null"`
	CreatedAt time.Time      `gorm:"index:idx_history_lookup,priority:3;not null"`
	Request   datatypes.JSON `gorm:"not null"`
	Plan      datatypes.JSON `gorm:"not null"`
}

func (HistoryRecord) TableName() string { return "plan_history" }

// MarshalJSON flattens the request fields next to id/email/created_at/plan,
// the shape the web client renders.
func (h HistoryRecord) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	if len(h.Request) > 0 {
		if err := json.Unmarshal(h.Request, &out); err != nil {
			return nil, err
		}
	}
	out["id"] = h.ID
	out["email"] = h.Identity
	out["created_at"] = h.CreatedAt
	out["plan"] = json.RawMessage(h.Plan)
	if len(h.Plan) == 0 {
		out["plan"] = nil
	}
	return json.Marshal(out)
}
