package model

import (
	"time"
)

// IntroductionRequestModel 投资人对接请求
// 同一 (投资人, 创业公司, 交易室) 组合只允许存在一条记录，由唯一索引保证
// deal_room_id 为 NULL 时数据库视为不同值，该情况由逻辑层判重
type IntroductionRequestModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InvestorId int64  `json:"investor_id" gorm:"uniqueIndex:idx_intro_tuple;not null"`
	StartupId  int64  `json:"startup_id" gorm:"uniqueIndex:idx_intro_tuple;not null"`
	DealRoomId *int64 `json:"deal_room_id" gorm:"uniqueIndex:idx_intro_tuple"`
	Note       string `json:"note" gorm:"type:text"`

	Status IntroductionStatus `json:"status" gorm:"default:'requested'"`

	// 审批信息
	DecidedBy *int64     `json:"decided_by"`
	DecidedAt *time.Time `json:"decided_at"`
}

// IntroductionStatus 对接请求状态
type IntroductionStatus string

const (
	IntroductionStatusRequested IntroductionStatus = "requested" // 待审批
	IntroductionStatusApproved  IntroductionStatus = "approved"  // 已批准（终态）
	IntroductionStatusDeclined  IntroductionStatus = "declined"  // 已拒绝（终态）
)

// Terminal 是否为终态
func (s IntroductionStatus) Terminal() bool {
	return s == IntroductionStatusApproved || s == IntroductionStatusDeclined
}

// TableName 自定义表名
func (IntroductionRequestModel) TableName() string {
	return "introduction_request"
}
