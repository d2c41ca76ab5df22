// Package engine implements the streak/XP accrual, reward redemption and
// leaderboard operations against the backing store. All cross-request safety
// is delegated to the store's transactional guarantees; the engine holds no
// in-process locks.
package engine

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// User-facing failure conditions. Anything else returned by an engine
// operation is an infrastructure fault and should surface as a server error.
var (
	ErrDuplicateCheckIn = errors.New("already checked in today")
	ErrInsufficientXP   = errors.New("insufficient XP")
	ErrUserNotFound     = errors.New("user not found")
	ErrRewardNotFound   = errors.New("reward not found")
)

const (
	defaultBaseXP            = 10
	defaultMilestoneBonus    = 20
	defaultMilestoneInterval = 7
	defaultLeaderboardLimit  = 50
)

// Engine executes the gamification operations. Construct one with New at
// process start and share it across request handlers; it is safe for
// concurrent use.
type Engine struct {
	db *gorm.DB

	// XP accrual tuning. New fills in the product defaults; main overrides
	// them from configuration.
	BaseXP            int
	MilestoneBonus    int
	MilestoneInterval int
}

// New returns an Engine bound to the given store handle.
func New(db *gorm.DB) *Engine {
	return &Engine{
		db:                db,
		BaseXP:            defaultBaseXP,
		MilestoneBonus:    defaultMilestoneBonus,
		MilestoneInterval: defaultMilestoneInterval,
	}
}

// DateOf reduces a point in time to the calendar date string the engine and
// the DATE columns operate on.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
