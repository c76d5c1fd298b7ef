package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bitsbay/internal/models"
)

type gormListings struct {
	orm *gorm.DB
}

// NewListings returns a GORM backed Listings store.
func NewListings(orm *gorm.DB) Listings {
	return &gormListings{orm: orm}
}

func (s *gormListings) Create(ctx context.Context, listing *models.Listing) error {
	orm := s.orm.WithContext(ctx)
	if err := orm.Create(listing).Error; err != nil {
		return translate(err)
	}
	return translate(orm.Preload("Seller").First(listing, "id = ?", listing.ID).Error)
}

func (s *gormListings) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	err := s.orm.WithContext(ctx).Preload("Seller").First(&listing, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &listing, nil
}

func (s *gormListings) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Listing, error) {
	var listing models.Listing
	err := s.orm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Listing{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Preload("Seller").First(&listing, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &listing, nil
}

func (s *gormListings) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.orm.WithContext(ctx).Delete(&models.Listing{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormListings) List(ctx context.Context, page, pageSize int) (ListingPage, error) {
	return s.paginate(s.orm.WithContext(ctx).Model(&models.Listing{}), page, pageSize)
}

func (s *gormListings) ListBySeller(ctx context.Context, sellerID uuid.UUID, page, pageSize int) (ListingPage, error) {
	query := s.orm.WithContext(ctx).Model(&models.Listing{}).Where("seller_id = ?", sellerID)
	return s.paginate(query, page, pageSize)
}

func (s *gormListings) paginate(query *gorm.DB, page, pageSize int) (ListingPage, error) {
	var result ListingPage
	if err := query.Count(&result.Total).Error; err != nil {
		return ListingPage{}, translate(err)
	}

	err := query.
		Preload("Seller").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&result.Items).Error
	if err != nil {
		return ListingPage{}, translate(err)
	}
	return result, nil
}
