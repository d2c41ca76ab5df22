package models

import "time"

// Reward is a catalog entry users can spend XP on. Rows are managed by
// administrative seeding; the engine only ever debits against XPCost.
type Reward struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Title           string          `gorm:"size:255;not null" json:"title"`
	Description     string          `gorm:"size:1024;not null" json:"description"`
	XPCost          int             `gorm:"column:xp_cost;not null" json:"xp_cost"`
	Status          RewardStatus    `gorm:"size:16;not null;default:active" json:"status"`
	FulfillmentType FulfillmentType `gorm:"size:16;not null" json:"fulfillment_type"`
	ImageURL        string          `gorm:"size:512" json:"image_url"`
	CreatedAt       time.Time       `json:"created_at"`
}
