package models

import (
	"time"

	"gorm.io/gorm"
)

// Streak tracks consecutive daily check-ins for one user on one platform.
// Dates are stored as plain YYYY-MM-DD strings: streak arithmetic is pure
// calendar-day logic and string equality avoids timezone drift in DATE columns.
// Invariant: CurrentStreak <= BestStreak after every update.
type Streak struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;uniqueIndex:idx_streaks_user_platform" json:"user_id"`
	Platform        Platform  `gorm:"size:16;not null;uniqueIndex:idx_streaks_user_platform" json:"platform"`
	CurrentStreak   int       `gorm:"not null;default:0" json:"current_streak"`
	BestStreak      int       `gorm:"not null;default:0" json:"best_streak"`
	LastCheckInDate string    `gorm:"size:10" json:"last_check_in_date"`
	StreakStartDate string    `gorm:"size:10" json:"streak_start_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (s *Streak) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	return nil
}
