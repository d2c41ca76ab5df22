package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cre8streak/cre8streak/engine"
	"github.com/cre8streak/cre8streak/middleware"
	"github.com/cre8streak/cre8streak/utils"
)

// RewardController handles the reward catalog, redemptions, the XP ledger and
// administrative grants.
type RewardController struct {
	db  *gorm.DB
	eng *engine.Engine
}

// NewRewardController creates a new controller instance.
func NewRewardController(db *gorm.DB, eng *engine.Engine) *RewardController {
	return &RewardController{db: db, eng: eng}
}

// ListRewards returns the active reward catalog.
func (r *RewardController) ListRewards(ctx *gin.Context) {
	rewards, err := r.eng.ListActiveRewards()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to list rewards")
		return
	}
	utils.Success(ctx, rewards)
}

// Redeem spends the authenticated user's XP on a reward.
func (r *RewardController) Redeem(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	rewardID, err := strconv.ParseUint(strings.TrimSpace(ctx.Param("id")), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid reward id")
		return
	}

	redemption, err := r.eng.RedeemReward(userID, uint(rewardID))
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInsufficientXP):
			utils.Error(ctx, http.StatusBadRequest, 40031, "insufficient XP")
		case errors.Is(err, engine.ErrRewardNotFound):
			utils.Error(ctx, http.StatusNotFound, 40420, "reward not found")
		case errors.Is(err, engine.ErrUserNotFound):
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		default:
			if utils.Sugar != nil {
				utils.Sugar.Errorf("redemption failed for user %d reward %d: %v", userID, rewardID, err)
			}
			utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to redeem reward")
		}
		return
	}

	utils.InvalidateByPrefix("cache:leaderboard:")

	utils.Success(ctx, redemption)
}

// ListRedemptions returns the user's redemption history with rewards attached.
func (r *RewardController) ListRedemptions(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	redemptions, err := r.eng.UserRedemptions(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to list redemptions")
		return
	}
	utils.Success(ctx, redemptions)
}

// ListXPTransactions returns the user's ledger entries, newest first.
func (r *RewardController) ListXPTransactions(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	limit := 20
	if v := strings.TrimSpace(ctx.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := r.eng.XPTransactions(userID, limit)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to list transactions")
		return
	}
	utils.Success(ctx, entries)
}

// GrantXP lets a configured admin adjust a user's XP balance outside the
// check-in flow. The adjustment lands in the ledger with reason manual_grant.
func (r *RewardController) GrantXP(ctx *gin.Context) {
	username, _ := ctx.Get(middleware.ContextUsernameKey)
	uname, _ := username.(string)
	if !isAdminUsername(uname) {
		utils.Error(ctx, http.StatusForbidden, 40301, "admin access required")
		return
	}

	type request struct {
		UserID uint   `json:"user_id" binding:"required"`
		Delta  int    `json:"delta" binding:"required"`
		Note   string `json:"note"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid request payload")
		return
	}

	if err := r.eng.GrantXP(req.UserID, req.Delta, strings.TrimSpace(req.Note)); err != nil {
		switch {
		case errors.Is(err, engine.ErrUserNotFound):
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		case errors.Is(err, engine.ErrInsufficientXP):
			utils.Error(ctx, http.StatusBadRequest, 40031, "insufficient XP")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to grant XP")
		}
		return
	}

	utils.InvalidateByPrefix("cache:leaderboard:")

	utils.Success(ctx, gin.H{"user_id": req.UserID, "delta": req.Delta})
}
