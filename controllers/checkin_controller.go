package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cre8streak/cre8streak/engine"
	"github.com/cre8streak/cre8streak/models"
	"github.com/cre8streak/cre8streak/utils"
)

// CheckInController handles daily check-in endpoints.
type CheckInController struct {
	db  *gorm.DB
	eng *engine.Engine
}

// NewCheckInController creates a new controller instance.
func NewCheckInController(db *gorm.DB, eng *engine.Engine) *CheckInController {
	return &CheckInController{db: db, eng: eng}
}

// CheckIn records a daily check-in for the authenticated user. The platform
// defaults to the user's primary platform when the body omits it.
func (c *CheckInController) CheckIn(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := c.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load user")
		return
	}

	type request struct {
		Platform string `json:"platform"`
	}
	var req request
	_ = ctx.ShouldBindJSON(&req) // body is optional

	platform := user.PrimaryPlatform
	if p := strings.TrimSpace(req.Platform); p != "" {
		platform = models.Platform(p)
		if !platform.Valid() {
			utils.Error(ctx, http.StatusBadRequest, 40002, "unsupported platform")
			return
		}
	}

	result, err := c.eng.RecordCheckIn(userID, platform, time.Now())
	if err != nil {
		if errors.Is(err, engine.ErrDuplicateCheckIn) {
			utils.Error(ctx, http.StatusBadRequest, 40030, "already checked in today")
			return
		}
		if utils.Sugar != nil {
			utils.Sugar.Errorf("check-in failed for user %d: %v", userID, err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to record check-in")
		return
	}

	// Ranks changed; drop cached leaderboards.
	utils.InvalidateByPrefix("cache:leaderboard:")

	utils.Success(ctx, result)
}

// ListCheckIns returns the user's recent check-ins, newest first.
func (c *CheckInController) ListCheckIns(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	limit := 30
	if v := strings.TrimSpace(ctx.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	checkIns, err := c.eng.RecentCheckIns(userID, limit)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list check-ins")
		return
	}
	utils.Success(ctx, checkIns)
}

// Status returns the user's streak state for a platform (their primary one by
// default).
func (c *CheckInController) Status(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := c.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load user")
		return
	}

	platform := user.PrimaryPlatform
	if p := strings.TrimSpace(ctx.Query("platform")); p != "" {
		platform = models.Platform(p)
		if !platform.Valid() {
			utils.Error(ctx, http.StatusBadRequest, 40002, "unsupported platform")
			return
		}
	}

	streak, err := c.eng.UserStreak(userID, platform)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load streak")
		return
	}

	checkedInToday := false
	currentStreak, bestStreak := 0, 0
	lastCheckIn, streakStart := "", ""
	if streak != nil {
		currentStreak = streak.CurrentStreak
		bestStreak = streak.BestStreak
		lastCheckIn = streak.LastCheckInDate
		streakStart = streak.StreakStartDate
		checkedInToday = streak.LastCheckInDate == engine.DateOf(time.Now())
	}

	utils.Success(ctx, gin.H{
		"platform":         platform,
		"current_streak":   currentStreak,
		"best_streak":      bestStreak,
		"last_check_in":    lastCheckIn,
		"streak_start":     streakStart,
		"checked_in_today": checkedInToday,
		"xp_total":         user.XPTotal,
	})
}
