package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cre8streak/cre8streak/config"
	"github.com/cre8streak/cre8streak/controllers"
	"github.com/cre8streak/cre8streak/engine"
	"github.com/cre8streak/cre8streak/middleware"
	"github.com/cre8streak/cre8streak/utils"
)

// SetupRouter wires routes, middlewares and controllers.
func SetupRouter(db *gorm.DB, eng *engine.Engine) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log goes to its own rotated file; fall back to plain recovery if
	// the logger cannot be created.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db, eng)
	checkInController := controllers.NewCheckInController(db, eng)
	rewardController := controllers.NewRewardController(db, eng)
	leaderboardController := controllers.NewLeaderboardController(eng)
	statsController := controllers.NewStatsController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)

	// Public endpoints
	api.GET("/leaderboard", leaderboardController.GetLeaderboard)
	api.GET("/rewards", rewardController.ListRewards)
	api.GET("/stats", statsController.GetStats)
	api.GET("/users/:id", authController.GetUserPublic)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.GET("/me", authController.Me)
	protected.PATCH("/profile", authController.UpdateProfile)
	protected.POST("/check-ins", checkInController.CheckIn)
	protected.GET("/check-ins", checkInController.ListCheckIns)
	protected.GET("/check-ins/status", checkInController.Status)
	protected.POST("/rewards/:id/redeem", rewardController.Redeem)
	protected.GET("/redemptions", rewardController.ListRedemptions)
	protected.GET("/xp-transactions", rewardController.ListXPTransactions)
	protected.POST("/admin/xp-grants", rewardController.GrantXP)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
