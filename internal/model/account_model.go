package model

import (
	"time"
)

// AccountModel 平台账户
type AccountModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `json:"email" gorm:"uniqueIndex;not null" binding:"required,email"`
	PasswordHash string `json:"-" gorm:"not null"`
	Name         string `json:"name"`

	// 角色注册后不可变更
	Role AccountRole `json:"role" gorm:"not null"`
}

// AccountRole 账户角色
type AccountRole string

const (
	RoleAdmin    AccountRole = "admin"    // 平台管理员
	RoleStartup  AccountRole = "startup"  // 创业公司
	RoleInvestor AccountRole = "investor" // 投资人
)

// Valid 角色是否合法
func (r AccountRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleStartup, RoleInvestor:
		return true
	}
	return false
}

// TableName 自定义表名
func (AccountModel) TableName() string {
	return "account"
}
