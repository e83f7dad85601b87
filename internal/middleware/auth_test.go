package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fundbridge/dealroom/internal/config"
	"github.com/fundbridge/dealroom/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.AccountModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newAuthRouter(db *gorm.DB, cfg config.AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", Authenticate(db, cfg), func(c *gin.Context) {
		account, _ := CurrentAccount(c)
		c.JSON(http.StatusOK, gin.H{"email": account.Email, "role": account.Role})
	})
	r.GET("/admin-only", Authenticate(db, cfg), RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthenticateRoundtrip(t *testing.T) {
	db := newAuthTestDB(t)
	cfg := config.AuthConfig{JwtSecret: "test-secret", TokenTTLHours: 1}

	account := &model.AccountModel{Email: "founder@acme.example", Role: model.RoleStartup}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	token, err := MintToken(cfg, account)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}

	r := newAuthRouter(db, cfg)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	db := newAuthTestDB(t)
	cfg := config.AuthConfig{JwtSecret: "test-secret", TokenTTLHours: 1}
	r := newAuthRouter(db, cfg)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", c.name, w.Code)
		}
	}
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	db := newAuthTestDB(t)

	account := &model.AccountModel{Email: "founder@acme.example", Role: model.RoleStartup}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	token, err := MintToken(config.AuthConfig{JwtSecret: "other-secret", TokenTTLHours: 1}, account)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}

	r := newAuthRouter(db, config.AuthConfig{JwtSecret: "test-secret", TokenTTLHours: 1})
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// 角色以库中当前值为准：令牌还写着 admin，但账户已降级时必须拒绝
func TestRequireRoleUsesCurrentRole(t *testing.T) {
	db := newAuthTestDB(t)
	cfg := config.AuthConfig{JwtSecret: "test-secret", TokenTTLHours: 1}

	account := &model.AccountModel{Email: "admin@fund.example", Role: model.RoleAdmin}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	token, err := MintToken(cfg, account)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}

	r := newAuthRouter(db, cfg)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin request status = %d, want 200", w.Code)
	}

	if err := db.Model(account).Update("role", model.RoleInvestor).Error; err != nil {
		t.Fatalf("failed to demote account: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("demoted request status = %d, want 403", w.Code)
	}
}
