package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/fundbridge/dealroom/internal/config"
	"github.com/fundbridge/dealroom/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const accountKey = "account"

// Claims JWT 载荷
type Claims struct {
	AccountId int64  `json:"account_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// MintToken 为账户签发 JWT
func MintToken(cfg config.AuthConfig, account *model.AccountModel) (string, error) {
	ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	claims := &Claims{
		AccountId: account.Id,
		Role:      string(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JwtSecret))
}

// Authenticate 解析 Bearer 令牌并装载账户
// 账户每次都重新查库，角色以库中当前值为准，不信任令牌里的快照
func Authenticate(db *gorm.DB, cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		var account model.AccountModel
		if err := db.First(&account, claims.AccountId).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			c.Abort()
			return
		}

		c.Set(accountKey, &account)
		c.Next()
	}
}

// RequireRole 路由组级别的角色门禁
func RequireRole(role model.AccountRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := CurrentAccount(c)
		if !ok || account.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentAccount 取当前请求的账户
func CurrentAccount(c *gin.Context) (*model.AccountModel, bool) {
	value, exists := c.Get(accountKey)
	if !exists {
		return nil, false
	}
	account, ok := value.(*model.AccountModel)
	return account, ok
}
