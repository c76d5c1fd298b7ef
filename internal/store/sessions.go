package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bitsbay/internal/models"
)

type gormSessions struct {
	orm *gorm.DB
}

// NewSessions returns a GORM backed Sessions store.
func NewSessions(orm *gorm.DB) Sessions {
	return &gormSessions{orm: orm}
}

func (s *gormSessions) Create(ctx context.Context, session *models.Session) error {
	return translate(s.orm.WithContext(ctx).Create(session).Error)
}

func (s *gormSessions) GetByRefreshToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := s.orm.WithContext(ctx).First(&session, "refresh_token = ?", token).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (s *gormSessions) Revoke(ctx context.Context, id uuid.UUID) error {
	return translate(revoke(s.orm.WithContext(ctx), id))
}

func (s *gormSessions) Rotate(ctx context.Context, oldID uuid.UUID, replacement *models.Session) error {
	err := s.orm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := revoke(tx, oldID); err != nil {
			return err
		}
		return tx.Create(replacement).Error
	})
	return translate(err)
}

func revoke(tx *gorm.DB, id uuid.UUID) error {
	now := time.Now().UTC()
	res := tx.Model(&models.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
