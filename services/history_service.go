package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Rajeshwar-203/fitness-ai-backend/apperrors"
	"github.com/Rajeshwar-203/fitness-ai-backend/models"
	"github.com/Rajeshwar-203/fitness-ai-backend/store"
	"github.com/Rajeshwar-203/fitness-ai-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const defaultHistoryLimit = 5

// HistoryService records generated AI plans per identity.
type HistoryService struct {
	store store.HistoryStore
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

func NewHistoryService(s store.HistoryStore, log *zap.Logger) *HistoryService {
	return &HistoryService{
		store: s,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
	}
}

// Record persists plan for identity and returns the new record id. An empty
// identity is a no-op. The request is stored without its identity fields.
func (s *HistoryService) Record(ctx context.Context, kind models.PlanKind, identity string, request, plan any) (string, error) {
	identity = utils.NormalizeEmail(identity)
	if identity == "" {
		return "", nil
	}

	reqJSON, err := requestWithoutIdentity(request)
	if err != nil {
		return "", apperrors.Internal("failed to encode plan request", err)
	}
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return "", apperrors.Internal("failed to encode plan", err)
	}

	rec := &models.HistoryRecord{
		ID:        s.newID(),
		Kind:      kind,
		Identity:  identity,
		CreatedAt: s.now(),
		Request:   datatypes.JSON(reqJSON),
		Plan:      datatypes.JSON(planJSON),
	}
	if err := s.store.InsertHistory(ctx, rec); err != nil {
		return "", fmt.Errorf("insert %s history: %w", kind, err)
	}

	s.log.Debug("plan recorded",
		zap.String("id", rec.ID),
		zap.String("kind", string(kind)),
		zap.String("email", identity),
	)
	return rec.ID, nil
}

// RecentFor returns at most limit records for identity, newest first.
// A non-positive limit means 5.
func (s *HistoryService) RecentFor(ctx context.Context, kind models.PlanKind, identity string, limit int) ([]models.HistoryRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	identity = utils.NormalizeEmail(identity)
	if identity == "" {
		return []models.HistoryRecord{}, nil
	}

	records, err := s.store.RecentHistory(ctx, kind, identity, limit)
	if err != nil {
		return nil, apperrors.Internal("failed to load history", err)
	}
	if records == nil {
		records = []models.HistoryRecord{}
	}
	return records, nil
}

func requestWithoutIdentity(request any) ([]byte, error) {
	raw, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return raw, nil
	}
	delete(fields, "user_email")
	delete(fields, "email")
	return json.Marshal(fields)
}
