package models

import "time"

// Redemption immutably links a user, a reward and the XP spent. It is created
// in the same transaction as the balance debit, never on its own. Reference is
// a UUID handed to fulfillment so support can look a redemption up without
// exposing row ids.
type Redemption struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Reference string    `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	RewardID  uint      `gorm:"index;not null" json:"reward_id"`
	XPSpent   int       `gorm:"column:xp_spent;not null" json:"xp_spent"`
	CreatedAt time.Time `json:"created_at"`

	Reward *Reward `gorm:"foreignKey:RewardID" json:"reward,omitempty"`
}
