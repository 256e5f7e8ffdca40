package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rajeshwar-203/fitness-ai-backend/models"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) AutoMigrate() error {
	if err := s.db.AutoMigrate(
		&models.User{},
		&models.HistoryRecord{},
		&models.ProgressEntry{},
	); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) InsertHistory(ctx context.Context, rec *models.HistoryRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *GormStore) RecentHistory(ctx context.Context, kind models.PlanKind, identity string, limit int) ([]models.HistoryRecord, error) {
	records := []models.HistoryRecord{}
	err := s.db.WithContext(ctx).
		Where("kind = ? AND identity = ?", kind, identity).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (s *GormStore) InsertProgress(ctx context.Context, entry *models.ProgressEntry) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *GormStore) ListProgress(ctx context.Context, email string) ([]models.ProgressEntry, error) {
	entries := []models.ProgressEntry{}
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Order("date DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key")
}
