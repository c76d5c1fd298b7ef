package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account on the marketplace. Accounts are created on first
// Google sign-in, so most rows carry no usable password.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email       string    `gorm:"type:text;uniqueIndex;not null"`
	Username    *string   `gorm:"type:text;uniqueIndex"`
	FirstName   string    `gorm:"type:text;not null;default:''"`
	LastName    string    `gorm:"type:text;not null;default:''"`
	PhoneNumber *string   `gorm:"type:text"`
	// HasUsablePassword is false for externally-authenticated accounts.
	HasUsablePassword bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`

	Listings []Listing `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE"`
	Sessions []Session `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// FullName joins first and last name, omitting whichever is empty.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasPhoneNumber reports whether a phone number is on file.
func (u User) HasPhoneNumber() bool {
	return u.PhoneNumber != nil && *u.PhoneNumber != ""
}
