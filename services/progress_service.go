package services

import (
	"context"
	"time"

	"github.com/Rajeshwar-203/fitness-ai-backend/apperrors"
	"github.com/Rajeshwar-203/fitness-ai-backend/models"
	"github.com/Rajeshwar-203/fitness-ai-backend/store"
	"github.com/Rajeshwar-203/fitness-ai-backend/utils"

	"go.uber.org/zap"
)

type ProgressService struct {
	store store.ProgressStore
	log   *zap.Logger
	now   func() time.Time
}

func NewProgressService(s store.ProgressStore, log *zap.Logger) *ProgressService {
	return &ProgressService{
		store: s,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Save stores entry as given; a missing date defaults to today.
func (s *ProgressService) Save(ctx context.Context, entry *models.ProgressEntry) error {
	entry.Email = utils.NormalizeEmail(entry.Email)
	if entry.Email == "" {
		return apperrors.Validation("email is required")
	}
	now := s.now()
	if entry.Date.IsZero() {
		entry.Date = now.Truncate(24 * time.Hour)
	}
	entry.CreatedAt = now

	if err := s.store.InsertProgress(ctx, entry); err != nil {
		return apperrors.Internal("failed to save progress", err)
	}
	s.log.Debug("progress saved", zap.String("email", entry.Email), zap.Time("date", entry.Date))
	return nil
}

// ListFor returns every entry for email, newest first.
func (s *ProgressService) ListFor(ctx context.Context, email string) ([]models.ProgressEntry, error) {
	entries, err := s.store.ListProgress(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, apperrors.Internal("failed to load progress", err)
	}
	if entries == nil {
		entries = []models.ProgressEntry{}
	}
	return entries, nil
}
