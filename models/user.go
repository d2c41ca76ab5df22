package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a creator account. Passwords are stored as bcrypt hashes only.
// XPTotal is a cached aggregate over the user's XP ledger; the xp_transactions
// table remains the source of truth for the balance.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Username        string         `gorm:"size:64;uniqueIndex;not null" json:"username"`
	DisplayName     string         `gorm:"size:128;not null" json:"display_name"`
	Email           string         `gorm:"size:255" json:"email"`
	PasswordHash    string         `gorm:"size:255" json:"-"`
	AvatarURL       string         `gorm:"size:512" json:"avatar_url"`
	Signature       string         `gorm:"size:255" json:"signature"`
	PrimaryPlatform Platform       `gorm:"size:16;not null;default:youtube" json:"primary_platform"`
	XPTotal         int            `gorm:"column:xp_total;not null;default:0" json:"xp_total"`
	BestStreak      int            `gorm:"not null;default:0" json:"best_streak"`
	LastLoginAt     *time.Time     `json:"last_login_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
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
