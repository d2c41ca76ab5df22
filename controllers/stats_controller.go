package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cre8streak/cre8streak/engine"
	"github.com/cre8streak/cre8streak/models"
	"github.com/cre8streak/cre8streak/utils"
)

// StatsController provides public aggregate statistics.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate counts for the app. Individual query failures
// fall back to 0 instead of failing the whole endpoint.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var checkInsToday int64
	var redemptionCount int64
	var xpInCirculation int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}

	today := engine.DateOf(time.Now())
	if err := s.db.Model(&models.CheckIn{}).Where("check_in_date = ?", today).Count(&checkInsToday).Error; err != nil {
		checkInsToday = 0
	}

	if err := s.db.Model(&models.Redemption{}).Count(&redemptionCount).Error; err != nil {
		redemptionCount = 0
	}

	if err := s.db.Model(&models.User{}).Select("COALESCE(SUM(xp_total),0)").Scan(&xpInCirculation).Error; err != nil {
		xpInCirculation = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":        userCount,
		"check_ins_today":   checkInsToday,
		"redemption_count":  redemptionCount,
		"xp_in_circulation": xpInCirculation,
	})
}
