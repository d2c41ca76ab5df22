package models

import "time"

// CheckIn is the immutable record of one day's check-in. The composite unique
// index on (user_id, check_in_date) is the concurrency-safety boundary of the
// whole accrual engine: two concurrent check-ins for the same user and day
// resolve to exactly one inserted row.
type CheckIn struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	UserID      uint          `gorm:"not null;uniqueIndex:idx_check_ins_user_date" json:"user_id"`
	CheckInDate string        `gorm:"size:10;not null;uniqueIndex:idx_check_ins_user_date" json:"check_in_date"`
	Platform    Platform      `gorm:"size:16;not null" json:"platform"`
	Source      CheckInSource `gorm:"size:8;not null;default:manual" json:"source"`
	XPAwarded   int           `gorm:"column:xp_awarded;not null" json:"xp_awarded"`
	CreatedAt   time.Time     `json:"created_at"`
}
