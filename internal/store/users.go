package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bitsbay/internal/models"
)

type gormUsers struct {
	orm *gorm.DB
}

// NewUsers returns a GORM backed Users store.
func NewUsers(orm *gorm.DB) Users {
	return &gormUsers{orm: orm}
}

func (s *gormUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.orm.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.orm.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormUsers) Create(ctx context.Context, user *models.User) error {
	return translate(s.orm.WithContext(ctx).Create(user).Error)
}

func (s *gormUsers) UpdatePhoneNumber(ctx context.Context, id uuid.UUID, phone *string) (*models.User, error) {
	orm := s.orm.WithContext(ctx)
	res := orm.Model(&models.User{}).Where("id = ?", id).Update("phone_number", phone)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var user models.User
	if err := orm.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
