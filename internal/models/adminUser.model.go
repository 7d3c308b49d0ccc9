package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// AdminUser is an account allowed to sign in to the admin panel when the
// backend-session auth mode is active.
type AdminUser struct {
	BaseModel
	Email        string     `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"type:text;not null"             json:"-"`
	LastLoginAt  *time.Time `gorm:"type:timestamp"                 json:"lastLoginAt,omitempty"`
}

func (u *AdminUser) BeforeCreate(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	if u.Email == "" || u.PasswordHash == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
