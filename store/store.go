// Package store holds the persistence backends. Every store answers simple
// equality queries and inserts; nothing here needs transactions.
package store

import (
	"context"
	"errors"

	"github.com/Rajeshwar-203/fitness-ai-backend/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type HistoryStore interface {
	InsertHistory(ctx context.Context, rec *models.HistoryRecord) error
	// RecentHistory returns at most limit records, newest first.
	RecentHistory(ctx context.Context, kind models.PlanKind, identity string, limit int) ([]models.HistoryRecord, error)
}

type ProgressStore interface {
	InsertProgress(ctx context.Context, entry *models.ProgressEntry) error
	ListProgress(ctx context.Context, email string) ([]models.ProgressEntry, error)
}

// Store bundles all collections behind one backend.
type Store interface {
	UserStore
	HistoryStore
	ProgressStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
