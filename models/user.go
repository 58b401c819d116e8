package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents one app installation's account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Username           string         `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Email              string         `gorm:"size:255" json:"email"`
	PasswordHash       string         `gorm:"size:255" json:"-"`
	DisplayName        string         `gorm:"size:64" json:"display_name"`
	Timezone           string         `gorm:"size:64;default:UTC" json:"timezone"`
	CommitmentSignedAt *time.Time     `json:"commitment_signed_at"`
	CoachEnabled       bool           `gorm:"default:false" json:"coach_enabled"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// Location resolves the user's IANA timezone on every call so a timezone change
// on the device takes effect immediately. Unknown or empty names fall back to UTC.
func (u *User) Location() *time.Location {
	if u.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
