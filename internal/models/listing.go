package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Listing statuses. A listing is available until its seller marks it sold.
const (
	ListingStatusAvailable = "available"
	ListingStatusSold      = "sold"
)

// Listing is a product posted for sale by one seller. Tags are stored as a
// single comma-delimited string and split on read.
type Listing struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text;not null"`
	Price       *int      `gorm:"type:integer"`
	Tags        string    `gorm:"type:text;not null;default:''"`
	Negotiable  bool      `gorm:"not null;default:false"`
	// Year is a free-form label such as "1st yr" or "2nd yr".
	Year      *string   `gorm:"type:text"`
	Status    string    `gorm:"type:text;not null;default:'available'"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`

	Seller User `gorm:"constraint:OnDelete:CASCADE;foreignKey:SellerID;references:ID"`
}

// ValidListingStatus reports whether s is one of the allowed listing statuses.
func ValidListingStatus(s string) bool {
	return s == ListingStatusAvailable || s == ListingStatusSold
}

// TagList splits the stored comma-delimited tag string into trimmed tags.
// Empty segments are dropped.
func (l Listing) TagList() []string {
	if strings.TrimSpace(l.Tags) == "" {
		return []string{}
	}
	parts := strings.Split(l.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
