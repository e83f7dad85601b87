package model

import (
	"time"
)

// DealRoomModel 交易室：管理员维护的创业公司与投资人分组
type DealRoomModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `json:"name" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`

	// 创建者（管理员账户）
	CreatedBy int64 `json:"created_by" gorm:"not null"`
}

// TableName 自定义表名
func (DealRoomModel) TableName() string {
	return "deal_room"
}

// DealRoomStartupModel 交易室-创业公司关联
type DealRoomStartupModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	DealRoomId int64 `json:"deal_room_id" gorm:"uniqueIndex:idx_room_startup;not null"`
	StartupId  int64 `json:"startup_id" gorm:"uniqueIndex:idx_room_startup;not null"`
}

// TableName 自定义表名
func (DealRoomStartupModel) TableName() string {
	return "deal_room_startup"
}

// DealRoomInvestorModel 交易室-投资人关联
type DealRoomInvestorModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	DealRoomId int64 `json:"deal_room_id" gorm:"uniqueIndex:idx_room_investor;not null"`
	InvestorId int64 `json:"investor_id" gorm:"uniqueIndex:idx_room_investor;not null"`
}

// TableName 自定义表名
func (DealRoomInvestorModel) TableName() string {
	return "deal_room_investor"
}

// VisibilityConfigModel 交易室字段可见性配置，Fields 为 JSON 数组
// 未配置时使用默认白名单
type VisibilityConfigModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DealRoomId int64  `json:"deal_room_id" gorm:"uniqueIndex;not null"`
	Fields     string `json:"fields" gorm:"type:text"`
}

// TableName 自定义表名
func (VisibilityConfigModel) TableName() string {
	return "visibility_config"
}
