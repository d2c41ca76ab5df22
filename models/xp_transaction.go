package models

import (
	"time"

	"gorm.io/datatypes"
)

// XPTransaction is an append-only ledger entry. Rows are never mutated or
// deleted; the sum of Delta per user must equal users.xp_total at all times.
type XPTransaction struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Delta     int            `gorm:"not null" json:"delta"`
	Reason    XPReason       `gorm:"size:32;not null" json:"reason"`
	Metadata  datatypes.JSON `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}

// TableName keeps the historical table name from the original schema.
func (XPTransaction) TableName() string {
	return "xp_transactions"
}
