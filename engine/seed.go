package engine

import "github.com/cre8streak/cre8streak/models"

// SeedRewards inserts the default reward catalog when the table is empty.
// Called once at boot; a populated table is left untouched so operators can
// manage the catalog directly.
func (e *Engine) SeedRewards() error {
	var count int64
	if err := e.db.Model(&models.Reward{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Reward{
		{
			Title:           "Gift Card - $10",
			Description:     "Redeem for a $10 gift card to your favorite store",
			XPCost:          500,
			Status:          models.RewardActive,
			FulfillmentType: models.FulfillDigital,
		},
		{
			Title:           "1-on-1 Coaching Session",
			Description:     "30-minute session with a content creation expert",
			XPCost:          1000,
			Status:          models.RewardActive,
			FulfillmentType: models.FulfillConsult,
		},
		{
			Title:           "Premium Analytics Course",
			Description:     "Learn advanced analytics to grow your audience",
			XPCost:          750,
			Status:          models.RewardActive,
			FulfillmentType: models.FulfillCourse,
		},
		{
			Title:           "Video Editing Masterclass",
			Description:     "Professional video editing techniques and tips",
			XPCost:          800,
			Status:          models.RewardActive,
			FulfillmentType: models.FulfillCourse,
		},
		{
			Title:           "20% Off Creator Tools",
			Description:     "Discount on premium creator software and tools",
			XPCost:          300,
			Status:          models.RewardActive,
			FulfillmentType: models.FulfillDiscount,
		},
	}
	return e.db.Create(&defaults).Error
}
