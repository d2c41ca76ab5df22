package engine

import "github.com/cre8streak/cre8streak/models"

// Leaderboard metrics.
const (
	MetricXP     = "xp"
	MetricStreak = "streak"
)

// LeaderboardEntry is one ranked row. Rank is purely positional (1-based);
// ties are not collapsed.
type LeaderboardEntry struct {
	Rank            int             `json:"rank"`
	UserID          uint            `json:"user_id"`
	Username        string          `json:"username"`
	DisplayName     string          `json:"display_name"`
	AvatarURL       string          `json:"avatar_url"`
	PrimaryPlatform models.Platform `json:"primary_platform"`
	XPTotal         int             `json:"xp_total"`
	BestStreak      int             `json:"best_streak"`
}

// Leaderboard ranks all users descending by total XP (MetricXP) or best
// streak (MetricStreak), truncated to limit. Unknown metrics fall back to XP.
// Read-only; no side effects.
func (e *Engine) Leaderboard(metric string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	order := "xp_total DESC"
	if metric == MetricStreak {
		order = "best_streak DESC"
	}

	var users []models.User
	if err := e.db.Order(order).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:            i + 1,
			UserID:          u.ID,
			Username:        u.Username,
			DisplayName:     u.DisplayName,
			AvatarURL:       u.AvatarURL,
			PrimaryPlatform: u.PrimaryPlatform,
			XPTotal:         u.XPTotal,
			BestStreak:      u.BestStreak,
		})
	}
	return entries, nil
}
