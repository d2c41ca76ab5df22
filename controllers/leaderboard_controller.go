package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cre8streak/cre8streak/config"
	"github.com/cre8streak/cre8streak/engine"
	"github.com/cre8streak/cre8streak/utils"
)

// LeaderboardController serves the public ranking endpoint.
type LeaderboardController struct {
	eng *engine.Engine
}

// NewLeaderboardController creates a new controller instance.
func NewLeaderboardController(eng *engine.Engine) *LeaderboardController {
	return &LeaderboardController{eng: eng}
}

// GetLeaderboard returns users ranked by XP or best streak. Responses are
// cached in Redis for a short TTL; check-ins, redemptions and grants
// invalidate the cache.
func (l *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	cfg := config.Get()

	metric := engine.MetricXP
	if m := strings.TrimSpace(ctx.Query("metric")); m != "" {
		if m != engine.MetricXP && m != engine.MetricStreak {
			utils.Error(ctx, http.StatusBadRequest, 40043, "metric must be xp or streak")
			return
		}
		metric = m
	}

	limit := cfg.LeaderboardDefaultLimit
	if v := strings.TrimSpace(ctx.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	cacheKey := "cache:leaderboard:" + metric + ":" + strconv.Itoa(limit)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	entries, err := l.eng.Leaderboard(metric, limit)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to load leaderboard")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: entries}
	utils.CacheSetJSON(cacheKey, wrapper, time.Duration(cfg.LeaderboardCacheTTLSec)*time.Second)
	utils.Success(ctx, entries)
}
