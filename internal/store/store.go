// Package store provides persistence for marketplace users, listings, and
// refresh-token sessions. Interfaces are defined here so that the HTTP layer
// can be exercised against fakes; the GORM implementations live alongside.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bitsbay/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// Users persists marketplace accounts.
type Users interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// UpdatePhoneNumber writes only the phone_number column.
	UpdatePhoneNumber(ctx context.Context, id uuid.UUID, phone *string) (*models.User, error)
}

// ListingPage is one page of listings together with the total row count.
type ListingPage struct {
	Items []models.Listing
	Total int64
}

// Listings persists product listings. Reads preload the seller so the
// projection can show contact details without a second query.
type Listings interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	// Update applies the given column updates in a single transaction and
	// returns the refreshed row.
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page, pageSize int) (ListingPage, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, page, pageSize int) (ListingPage, error)
}

// Sessions persists refresh-token sessions.
type Sessions interface {
	Create(ctx context.Context, session *models.Session) error
	GetByRefreshToken(ctx context.Context, token string) (*models.Session, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	// Rotate revokes the old session and inserts its replacement in one
	// transaction, so a crash never leaves both tokens redeemable.
	Rotate(ctx context.Context, oldID uuid.UUID, replacement *models.Session) error
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
