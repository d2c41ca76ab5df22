package engine

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cre8streak/cre8streak/models"
)

// RedeemReward debits the reward's XP cost from the user and creates the
// redemption record plus its ledger entry, all-or-nothing.
//
// The balance check and the debit are a single conditional UPDATE
// (xp_total >= cost in the predicate), so two concurrent redemptions can
// never both succeed when only one can be afforded.
func (e *Engine) RedeemReward(userID, rewardID uint) (*models.Redemption, error) {
	var redemption models.Redemption
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var reward models.Reward
		if err := tx.First(&reward, rewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRewardNotFound
			}
			return err
		}

		res := tx.Model(&models.User{}).
			Where("id = ? AND xp_total >= ?", userID, reward.XPCost).
			Update("xp_total", gorm.Expr("xp_total - ?", reward.XPCost))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientXP
		}

		meta, _ := json.Marshal(map[string]interface{}{"reward_id": reward.ID, "reward_title": reward.Title})
		entry := models.XPTransaction{
			UserID:   userID,
			Delta:    -reward.XPCost,
			Reason:   models.ReasonRewardRedemption,
			Metadata: meta,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		redemption = models.Redemption{
			Reference: uuid.NewString(),
			UserID:    userID,
			RewardID:  reward.ID,
			XPSpent:   reward.XPCost,
		}
		return tx.Create(&redemption).Error
	})
	if err != nil {
		return nil, err
	}
	return &redemption, nil
}

// GrantXP adjusts a user's balance outside the check-in flow and records the
// adjustment in the ledger with reason manual_grant. Negative deltas are
// allowed but may not take the balance below zero.
func (e *Engine) GrantXP(userID uint, delta int, note string) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.User{}).Where("id = ?", userID)
		if delta < 0 {
			q = q.Where("xp_total >= ?", -delta)
		}
		res := q.Update("xp_total", gorm.Expr("xp_total + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if delta < 0 {
				var count int64
				if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return ErrInsufficientXP
				}
			}
			return ErrUserNotFound
		}

		meta, _ := json.Marshal(map[string]interface{}{"note": note})
		entry := models.XPTransaction{
			UserID:   userID,
			Delta:    delta,
			Reason:   models.ReasonManualGrant,
			Metadata: meta,
		}
		return tx.Create(&entry).Error
	})
}

// ListActiveRewards returns the redeemable catalog.
func (e *Engine) ListActiveRewards() ([]models.Reward, error) {
	var rewards []models.Reward
	err := e.db.Where("status = ?", models.RewardActive).Order("xp_cost ASC").Find(&rewards).Error
	return rewards, err
}

// UserRedemptions lists the user's redemption history with rewards attached,
// newest first.
func (e *Engine) UserRedemptions(userID uint) ([]models.Redemption, error) {
	var redemptions []models.Redemption
	err := e.db.Preload("Reward").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&redemptions).Error
	return redemptions, err
}
