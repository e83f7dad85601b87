package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fundbridge/dealroom/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountLogic 账户业务逻辑
type AccountLogic struct {
	db *gorm.DB
}

// NewAccountLogic 创建账户业务逻辑
func NewAccountLogic(db *gorm.DB) *AccountLogic {
	return &AccountLogic{db: db}
}

// Register 注册账户，只允许 startup / investor 两种角色
// 管理员账户由部署方通过 EnsureAdmin 预置
func (a *AccountLogic) Register(email, password, name string, role model.AccountRole) (*model.AccountModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if role != model.RoleStartup && role != model.RoleInvestor {
		return nil, fmt.Errorf("%w: role must be startup or investor", ErrValidation)
	}

	var count int64
	if err := a.db.Model(&model.AccountModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	account := &model.AccountModel{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
	}
	if err := a.db.Create(account).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return account, nil
}

// Authenticate 校验邮箱和密码
func (a *AccountLogic) Authenticate(email, password string) (*model.AccountModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var account model.AccountModel
	if err := a.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: account", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: bad credentials", ErrForbidden)
	}
	return &account, nil
}

// GetAccount 按 ID 获取账户
func (a *AccountLogic) GetAccount(id int64) (*model.AccountModel, error) {
	var account model.AccountModel
	if err := a.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: account %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return &account, nil
}

// EnsureAdmin 预置管理员账户，已存在则不动
func (a *AccountLogic) EnsureAdmin(email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := a.db.Model(&model.AccountModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}
	admin := &model.AccountModel{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         model.RoleAdmin,
	}
	if err := a.db.Create(admin).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return nil
}
