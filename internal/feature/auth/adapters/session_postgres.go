package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"journal_backend/internal/feature/auth/domain/entity"
	"journal_backend/internal/feature/auth/usecase"
)

// sessionPostgres is a Postgres implementation of the SessionRepository interface.
// Redisが利用できない環境向けのフォールバックです。
type sessionPostgres struct {
	db *gorm.DB
}

// Compile-time check to ensure sessionPostgres implements SessionRepository.
var _ usecase.SessionRepository = (*sessionPostgres)(nil)

// NewSessionRepository creates a new instance of sessionPostgres.
func NewSessionRepository(db *gorm.DB) *sessionPostgres {
	return &sessionPostgres{db: db}
}

// Create persists a new session to the database.
func (r *sessionPostgres) Create(ctx context.Context, session *entity.Session) error {
	model := SessionModelFromEntity(session)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID retrieves a session by its refresh token ID.
func (r *sessionPostgres) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var model SessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// Revoke marks a session as revoked by its ID.
func (r *sessionPostgres) Revoke(ctx context.Context, id string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("id = ?", id).
		Update("revoked_at", now)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

// CountByUserID returns the number of active sessions for a user.
func (r *sessionPostgres) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, time.Now()).
		Count(&count).Error
	return count, err
}

// DeleteOldestByUserID deletes the oldest active session for a user.
func (r *sessionPostgres) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	// Find the oldest session
	var oldest SessionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, time.Now()).
		Order("created_at ASC").
		First(&oldest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // No sessions to delete
		}
		return err
	}

	// Delete it
	return r.db.WithContext(ctx).Delete(&SessionModel{}, "id = ?", oldest.ID).Error
}
