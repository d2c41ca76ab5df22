package engine

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cre8streak/cre8streak/models"
)

// CheckInResult is returned to the HTTP layer after a successful check-in.
type CheckInResult struct {
	CheckIn   models.CheckIn `json:"check_in"`
	XPAwarded int            `json:"xp_awarded"`
	NewStreak int            `json:"new_streak"`
}

// RecordCheckIn records one daily check-in for the user on the given platform.
// today is the caller's current calendar date; it is injected rather than read
// from the wall clock so the accrual logic stays deterministic.
//
// The four writes (check-in row, streak update, user aggregate, ledger entry)
// happen in a single transaction. The unique index on (user_id, check_in_date)
// is the idempotency guard: a second attempt for the same day fails the insert
// and rolls the whole transaction back, returning ErrDuplicateCheckIn.
func (e *Engine) RecordCheckIn(userID uint, platform models.Platform, today time.Time) (*CheckInResult, error) {
	date := DateOf(today)
	yesterday := DateOf(today.AddDate(0, 0, -1))

	var result CheckInResult
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var streak models.Streak
		err := tx.Where("user_id = ? AND platform = ?", userID, platform).First(&streak).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// First check-in ever on this platform: create the zeroed row.
			streak = models.Streak{UserID: userID, Platform: platform}
			if err := tx.Create(&streak).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		newCount := 1
		switch streak.LastCheckInDate {
		case yesterday:
			newCount = streak.CurrentStreak + 1
		case date:
			// Unreachable behind the unique index; kept as a guard so a
			// bypassed constraint can never inflate the counter.
			newCount = streak.CurrentStreak
		}

		xpAwarded := e.BaseXP
		if e.MilestoneInterval > 0 && newCount%e.MilestoneInterval == 0 {
			xpAwarded += e.MilestoneBonus
		}

		checkIn := models.CheckIn{
			UserID:      userID,
			CheckInDate: date,
			Platform:    platform,
			Source:      models.SourceManual,
			XPAwarded:   xpAwarded,
		}
		if err := tx.Create(&checkIn).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateCheckIn
			}
			return err
		}

		newBest := streak.BestStreak
		if newCount > newBest {
			newBest = newCount
		}
		startDate := streak.StreakStartDate
		if startDate == "" {
			startDate = date
		}
		if err := tx.Model(&models.Streak{}).Where("id = ?", streak.ID).Updates(map[string]interface{}{
			"current_streak":     newCount,
			"best_streak":        newBest,
			"last_check_in_date": date,
			"streak_start_date":  startDate,
			"updated_at":         time.Now(),
		}).Error; err != nil {
			return err
		}

		// In-place increment and high-water mark, never read-modify-write in
		// engine memory, so concurrent operations on the same user cannot
		// lose updates.
		res := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"xp_total":    gorm.Expr("xp_total + ?", xpAwarded),
			"best_streak": gorm.Expr("CASE WHEN best_streak < ? THEN ? ELSE best_streak END", newBest, newBest),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}

		meta, _ := json.Marshal(map[string]interface{}{"platform": platform, "streak": newCount})
		entry := models.XPTransaction{
			UserID:   userID,
			Delta:    xpAwarded,
			Reason:   models.ReasonDailyCheckIn,
			Metadata: meta,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		result = CheckInResult{CheckIn: checkIn, XPAwarded: xpAwarded, NewStreak: newCount}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UserStreak returns the streak row for (userID, platform), or nil when the
// user has never checked in on that platform.
func (e *Engine) UserStreak(userID uint, platform models.Platform) (*models.Streak, error) {
	var streak models.Streak
	err := e.db.Where("user_id = ? AND platform = ?", userID, platform).First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

// RecentCheckIns lists the user's check-ins, most recent date first.
func (e *Engine) RecentCheckIns(userID uint, limit int) ([]models.CheckIn, error) {
	if limit <= 0 {
		limit = 10
	}
	var checkIns []models.CheckIn
	err := e.db.Where("user_id = ?", userID).
		Order("check_in_date DESC").
		Limit(limit).
		Find(&checkIns).Error
	return checkIns, err
}

// XPTransactions lists the user's ledger entries, newest first.
func (e *Engine) XPTransactions(userID uint, limit int) ([]models.XPTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []models.XPTransaction
	err := e.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
