package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cre8streak/cre8streak/config"
	"github.com/cre8streak/cre8streak/engine"
	"github.com/cre8streak/cre8streak/middleware"
	"github.com/cre8streak/cre8streak/models"
	"github.com/cre8streak/cre8streak/utils"
)

const tokenDuration = 7 * 24 * time.Hour

// AuthController handles registration, login and profile endpoints.
type AuthController struct {
	db  *gorm.DB
	eng *engine.Engine
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB, eng *engine.Engine) *AuthController {
	return &AuthController{db: db, eng: eng}
}

// Register creates a creator account with a bcrypt-hashed password and the
// zeroed streak row for their primary platform.
func (a *AuthController) Register(ctx *gin.Context) {
	type request struct {
		Username        string `json:"username" binding:"required,min=3,max=64"`
		Password        string `json:"password" binding:"required,min=6"`
		DisplayName     string `json:"display_name" binding:"required,max=128"`
		Email           string `json:"email"`
		PrimaryPlatform string `json:"primary_platform"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	platform := models.PlatformYouTube
	if req.PrimaryPlatform != "" {
		platform = models.Platform(req.PrimaryPlatform)
		if !platform.Valid() {
			utils.Error(ctx, http.StatusBadRequest, 40002, "unsupported platform")
			return
		}
	}

	username := strings.TrimSpace(req.Username)
	var existing models.User
	if err := a.db.Where("username = ?", username).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "username already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to check username")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to hash password")
		return
	}

	user := models.User{
		Username:        username,
		DisplayName:     utils.SanitizeText(strings.TrimSpace(req.DisplayName)),
		Email:           strings.TrimSpace(req.Email),
		PasswordHash:    hash,
		PrimaryPlatform: platform,
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		// Eagerly create the streak row so the dashboard has something to
		// show before the first check-in.
		return tx.Create(&models.Streak{UserID: user.ID, Platform: platform}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusBadRequest, 40010, "username already exists")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  sanitizeUserResponse(user),
	})
}

// Login verifies user credentials, stamps last_login_at and issues a JWT.
func (a *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	var user models.User
	if err := a.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	now := time.Now()
	if err := a.db.Model(&user).Update("last_login_at", now).Error; err != nil && utils.Sugar != nil {
		utils.Sugar.Warnf("failed to stamp last login for user %d: %v", user.ID, err)
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  sanitizeUserResponse(user),
	})
}

// Logout invalidates the token by blacklisting it until expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "invalid authorization header")
		return
	}

	token := strings.TrimSpace(parts[1])
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(tokenDuration)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, expiresAt)

	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated user together with their current streak on the
// primary platform and their recent check-ins.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load user")
		return
	}

	streak, err := a.eng.UserStreak(user.ID, user.PrimaryPlatform)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to load streak")
		return
	}

	recent, err := a.eng.RecentCheckIns(user.ID, 7)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to load check-ins")
		return
	}

	currentStreak := 0
	lastCheckIn := ""
	if streak != nil {
		currentStreak = streak.CurrentStreak
		lastCheckIn = streak.LastCheckInDate
	}

	utils.Success(ctx, gin.H{
		"user":            sanitizeUserResponse(user),
		"current_streak":  currentStreak,
		"last_check_in":   lastCheckIn,
		"recent_checkins": recent,
	})
}

// UpdateProfile updates display name, signature and avatar for the current user.
func (a *AuthController) UpdateProfile(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	type request struct {
		DisplayName *string `json:"display_name"`
		Signature   *string `json:"signature"`
		AvatarURL   *string `json:"avatar_url"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		name := utils.SanitizeText(strings.TrimSpace(*req.DisplayName))
		if name == "" {
			utils.Error(ctx, http.StatusBadRequest, 40005, "display name cannot be empty")
			return
		}
		updates["display_name"] = name
	}
	if req.Signature != nil {
		updates["signature"] = utils.SanitizeText(strings.TrimSpace(*req.Signature))
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = strings.TrimSpace(*req.AvatarURL)
	}
	if len(updates) == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40006, "nothing to update")
		return
	}

	if err := a.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to update profile")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load user")
		return
	}
	utils.Success(ctx, sanitizeUserResponse(user))
}

// GetUserPublic returns public profile info by user id.
func (a *AuthController) GetUserPublic(ctx *gin.Context) {
	idStr := strings.TrimSpace(ctx.Param("id"))
	if idStr == "" {
		utils.Error(ctx, http.StatusBadRequest, 40050, "missing user id")
		return
	}

	var user models.User
	if err := a.db.First(&user, idStr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to get user")
		return
	}
	utils.Success(ctx, sanitizeUserResponse(user))
}

// sanitizeUserResponse strips credentials from the user payload.
func sanitizeUserResponse(user models.User) gin.H {
	return gin.H{
		"id":               user.ID,
		"username":         user.Username,
		"display_name":     user.DisplayName,
		"email":            user.Email,
		"avatar_url":       user.AvatarURL,
		"signature":        user.Signature,
		"primary_platform": user.PrimaryPlatform,
		"xp_total":         user.XPTotal,
		"best_streak":      user.BestStreak,
		"created_at":       user.CreatedAt,
	}
}

// getUserID extracts the authenticated user id placed by the auth middleware.
func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

// isAdminUsername checks whether the given username is configured as an admin
// (case-insensitive).
func isAdminUsername(username string) bool {
	uname := strings.TrimSpace(username)
	if uname == "" {
		return false
	}
	cfg := config.Get()
	for _, u := range cfg.AdminUsernames {
		if strings.EqualFold(strings.TrimSpace(u), uname) {
			return true
		}
	}
	return false
}
