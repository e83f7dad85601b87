package model

import (
	"time"
)

// StartupModel 创业公司申请模型
type StartupModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 所属账户（每个账户只能有一份申请）
	AccountId int64 `json:"account_id" gorm:"uniqueIndex;not null"`

	// 基本信息
	CompanyName string `json:"companyName" gorm:"not null" binding:"required"`
	Website     string `json:"website"`
	HQ          string `json:"hq" gorm:"column:hq"`
	FoundedYear int    `json:"foundedYear"`
	Stage       string `json:"stage"`
	Sector      string `json:"sector"`
	B2bB2c      string `json:"b2bB2c" gorm:"column:b2b_b2c"`
	TeamSize    int    `json:"teamSize"`
	Founders    string `json:"founders" gorm:"type:text"`

	// 业务描述
	Problem            string `json:"problem" gorm:"type:text"`
	Solution           string `json:"solution" gorm:"type:text"`
	Differentiation    string `json:"differentiation" gorm:"type:text"`
	BusinessModel      string `json:"businessModel" gorm:"type:text"`
	TractionHighlights string `json:"tractionHighlights" gorm:"type:text"`

	// 经营数据
	MonthlyRevenue int64  `json:"monthlyRevenue"`
	CustomerCount  int    `json:"customerCount"`
	GrowthRate     string `json:"growthRate"`

	// 融资信息
	RoundType         string `json:"roundType"`
	TargetAmount      int64  `json:"targetAmount"`
	RaisedToDate      int64  `json:"raisedToDate"`
	PreMoneyValuation int64  `json:"preMoneyValuation"`
	UseOfFunds        string `json:"useOfFunds" gorm:"type:text"`
	PitchDeckUrl      string `json:"pitchDeckUrl"`

	// 审核状态
	Status StartupStatus `json:"status" gorm:"default:'draft'"`

	// 管理员评分（0-100），总分为四项均值四舍五入
	ScoreTeam     int `json:"scoreTeam" gorm:"default:0"`
	ScoreMarket   int `json:"scoreMarket" gorm:"default:0"`
	ScoreTraction int `json:"scoreTraction" gorm:"default:0"`
	ScoreProduct  int `json:"scoreProduct" gorm:"default:0"`
	ScoreOverall  int `json:"scoreOverall" gorm:"default:0"`

	// 内部备注（仅管理员可见）
	InternalNotes string `json:"internal_notes,omitempty" gorm:"type:text"`
}

// StartupStatus 申请状态
type StartupStatus string

const (
	StartupStatusDraft            StartupStatus = "draft"              // 草稿
	StartupStatusSubmitted        StartupStatus = "submitted"          // 已提交
	StartupStatusInReview         StartupStatus = "in_review"          // 审核中
	StartupStatusFollowUp         StartupStatus = "follow_up"          // 待跟进
	StartupStatusShortlisted      StartupStatus = "shortlisted"        // 已入围
	StartupStatusNotMovingForward StartupStatus = "not_moving_forward" // 不再推进
)

// Valid 状态是否合法
func (s StartupStatus) Valid() bool {
	switch s {
	case StartupStatusDraft, StartupStatusSubmitted, StartupStatusInReview,
		StartupStatusFollowUp, StartupStatusShortlisted, StartupStatusNotMovingForward:
		return true
	}
	return false
}

// TableName 自定义表名
func (StartupModel) TableName() string {
	return "startup"
}
