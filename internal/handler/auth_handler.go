package handler

import (
	"net/http"

	"github.com/fundbridge/dealroom/internal/config"
	"github.com/fundbridge/dealroom/internal/logic"
	"github.com/fundbridge/dealroom/internal/middleware"
	"github.com/fundbridge/dealroom/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler 注册登录接口
type AuthHandler struct {
	accountLogic *logic.AccountLogic
	authConfig   config.AuthConfig
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(db *gorm.DB, authConfig config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		accountLogic: logic.NewAccountLogic(db),
		authConfig:   authConfig,
	}
}

// Register 注册账户
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.accountLogic.Register(req.Email, req.Password, req.Name, model.AccountRole(req.Role))
	if err != nil {
		LogicError(c, err)
		return
	}

	token, err := middleware.MintToken(h.authConfig, account)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Error generating token")
		return
	}

	SuccessResponse(c, http.StatusCreated, "账户注册成功", AuthResponse{
		Token:   token,
		Account: ToAccountResponse(account),
	})
}

// Login 登录换取令牌
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.accountLogic.Authenticate(req.Email, req.Password)
	if err != nil {
		// 不区分账户不存在和密码错误
		ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := middleware.MintToken(h.authConfig, account)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Error generating token")
		return
	}

	SuccessResponse(c, http.StatusOK, "登录成功", AuthResponse{
		Token:   token,
		Account: ToAccountResponse(account),
	})
}

// Me 查看当前账户
func (h *AuthHandler) Me(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	SuccessResponse(c, http.StatusOK, "", ToAccountResponse(account))
}
