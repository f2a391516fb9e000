package repository

import (
	"context"
	"errors"
	"moviemart-checkout/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionStore is the key-value store behind a client's resumable session.
// Values are opaque JSON strings; a missing or expired key reports ok=false.
type SessionStore interface {
	Get(ctx context.Context, sessionID, key string) (value string, ok bool, err error)
	Set(ctx context.Context, sessionID, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type gormSessionStore struct {
	db *gorm.DB
}

func NewGormSessionStore(db *gorm.DB) SessionStore {
	return &gormSessionStore{db: db}
}

func (s *gormSessionStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	var entry model.SessionEntry
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND name = ?", sessionID, key).
		Where("expires_at > ?", time.Now()).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return entry.Value, true, nil
}

func (s *gormSessionStore) Set(ctx context.Context, sessionID, key, value string, ttl time.Duration) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}, {Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"expires_at": time.Now().Add(ttl),
			"updated_at": time.Now(),
		}),
	}).Create(&model.SessionEntry{
		SessionID: sessionID,
		Name:      key,
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
	}).Error
}

func (s *gormSessionStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("session_id = ? AND name IN ?", sessionID, keys).
		Delete(&model.SessionEntry{}).Error
}

func (s *gormSessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&model.SessionEntry{})

	return result.RowsAffected, result.Error
}
