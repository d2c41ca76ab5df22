package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cre8streak/cre8streak/engine"
	"github.com/cre8streak/cre8streak/models"
	"github.com/cre8streak/cre8streak/routes"
)

func TestMain(m *testing.M) {
	// Config is loaded once per process, so the environment has to be in
	// place before the first handler touches it.
	os.Setenv("JWT_SECRET", "router-test-secret")
	os.Setenv("GIN_MODE", "test")
	os.Setenv("ADMIN_USERNAMES", "admin")
	dir, _ := os.MkdirTemp("", "cre8streak-router-test")
	os.Setenv("GIN_PATH", filepath.Join(dir, "gin.log"))
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (http.Handler, *gorm.DB, *engine.Engine) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Streak{},
		&models.CheckIn{},
		&models.XPTransaction{},
		&models.Reward{},
		&models.Redemption{},
	))

	eng := engine.New(db)
	return routes.SetupRouter(db, eng), db, eng
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func registerUser(t *testing.T, h http.Handler, username, platform string) string {
	t.Helper()
	w, env := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username":         username,
		"password":         "password123",
		"display_name":     username,
		"primary_platform": platform,
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestRouter(t)
	w, env := doJSON(t, h, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, env.Code)
}

func TestRegisterLoginAndMe(t *testing.T) {
	h, _, _ := newTestRouter(t)
	token := registerUser(t, h, "alice", "youtube")

	w, env := doJSON(t, h, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		User struct {
			Username        string `json:"username"`
			PrimaryPlatform string `json:"primary_platform"`
			XPTotal         int    `json:"xp_total"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "alice", data.User.Username)
	require.Equal(t, "youtube", data.User.PrimaryPlatform)
	require.Zero(t, data.User.XPTotal)

	// Fresh token from login works too.
	w, env = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	h, _, _ := newTestRouter(t)
	registerUser(t, h, "alice", "youtube")

	w, env := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username":     "alice",
		"password":     "password123",
		"display_name": "Alice Again",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 40010, env.Code)
}

func TestRegisterRejectsUnknownPlatform(t *testing.T) {
	h, _, _ := newTestRouter(t)
	w, env := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username":         "bob",
		"password":         "password123",
		"display_name":     "Bob",
		"primary_platform": "myspace",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 40002, env.Code)
}

func TestLoginBadPassword(t *testing.T) {
	h, _, _ := newTestRouter(t)
	registerUser(t, h, "alice", "youtube")

	w, env := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, 40106, env.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h, _, _ := newTestRouter(t)
	for _, path := range []string{"/api/v1/me", "/api/v1/check-ins", "/api/v1/redemptions"} {
		w, _ := doJSON(t, h, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, "path %s", path)
	}
}

func TestCheckInFlow(t *testing.T) {
	h, _, _ := newTestRouter(t)
	token := registerUser(t, h, "alice", "youtube")

	w, env := doJSON(t, h, http.MethodPost, "/api/v1/check-ins", token, nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	var result struct {
		XPAwarded int `json:"xp_awarded"`
		NewStreak int `json:"new_streak"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Equal(t, 10, result.XPAwarded)
	require.Equal(t, 1, result.NewStreak)

	// Same calendar day: rejected without changing state.
	w, env = doJSON(t, h, http.MethodPost, "/api/v1/check-ins", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 40030, env.Code)

	w, env = doJSON(t, h, http.MethodGet, "/api/v1/check-ins/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status struct {
		CheckedInToday bool `json:"checked_in_today"`
		CurrentStreak  int  `json:"current_streak"`
		XPTotal        int  `json:"xp_total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	require.True(t, status.CheckedInToday)
	require.Equal(t, 1, status.CurrentStreak)
	require.Equal(t, 10, status.XPTotal)

	w, env = doJSON(t, h, http.MethodGet, "/api/v1/check-ins", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var checkIns []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &checkIns))
	require.Len(t, checkIns, 1)
}

func TestRewardCatalogAndRedemption(t *testing.T) {
	h, db, eng := newTestRouter(t)
	token := registerUser(t, h, "alice", "youtube")
	require.NoError(t, eng.SeedRewards())

	w, env := doJSON(t, h, http.MethodGet, "/api/v1/rewards", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rewards []struct {
		ID     uint `json:"id"`
		XPCost int  `json:"xp_cost"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rewards))
	require.Len(t, rewards, 5)

	// No balance yet.
	w, env = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/rewards/%d/redeem", rewards[0].ID), token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 40031, env.Code)

	// Fund the account directly, then redeem the cheapest reward.
	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	require.NoError(t, eng.GrantXP(user.ID, rewards[0].XPCost, "test funding"))

	w, env = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/rewards/%d/redeem", rewards[0].ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	w, env = doJSON(t, h, http.MethodGet, "/api/v1/redemptions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []struct {
		XPSpent int `json:"xp_spent"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 1)
	require.Equal(t, rewards[0].XPCost, history[0].XPSpent)
}

func TestRedeemUnknownReward(t *testing.T) {
	h, _, _ := newTestRouter(t)
	token := registerUser(t, h, "alice", "youtube")

	w, env := doJSON(t, h, http.MethodPost, "/api/v1/rewards/9999/redeem", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, 40420, env.Code)
}

func TestAdminGrantRequiresAdmin(t *testing.T) {
	h, db, _ := newTestRouter(t)
	userToken := registerUser(t, h, "alice", "youtube")
	adminToken := registerUser(t, h, "admin", "youtube")

	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)

	body := map[string]interface{}{"user_id": user.ID, "delta": 100, "note": "promo"}

	w, env := doJSON(t, h, http.MethodPost, "/api/v1/admin/xp-grants", userToken, body)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, 40301, env.Code)

	w, env = doJSON(t, h, http.MethodPost, "/api/v1/admin/xp-grants", adminToken, body)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	require.Equal(t, 100, user.XPTotal)
}

func TestLeaderboardEndpoint(t *testing.T) {
	h, db, _ := newTestRouter(t)
	for i, xp := range []int{300, 900, 100} {
		user := models.User{
			Username:        fmt.Sprintf("creator%d", i),
			DisplayName:     fmt.Sprintf("Creator %d", i),
			PasswordHash:    "x",
			PrimaryPlatform: models.PlatformYouTube,
			XPTotal:         xp,
		}
		require.NoError(t, db.Create(&user).Error)
	}

	w, env := doJSON(t, h, http.MethodGet, "/api/v1/leaderboard?metric=xp&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []struct {
		Rank    int `json:"rank"`
		XPTotal int `json:"xp_total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 2)
	require.Equal(t, 900, entries[0].XPTotal)
	require.Equal(t, 1, entries[0].Rank)

	w, env = doJSON(t, h, http.MethodGet, "/api/v1/leaderboard?metric=downloads", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 40043, env.Code)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	h, _, _ := newTestRouter(t)
	token := registerUser(t, h, "alice", "youtube")

	w, _ := doJSON(t, h, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, h, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	h, _, _ := newTestRouter(t)
	w, env := doJSON(t, h, http.MethodGet, "/api/v1/nope", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, 40400, env.Code)
}
