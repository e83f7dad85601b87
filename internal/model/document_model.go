package model

import (
	"time"
)

// DocumentModel 创业公司附件（只增不删）
type DocumentModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	StartupId  int64  `json:"startup_id" gorm:"index;not null"`
	Type       string `json:"type"` // pitch_deck, financials, other
	Filename   string `json:"filename" gorm:"not null"`
	StorageKey string `json:"-" gorm:"not null"`
	Url        string `json:"url"`
	SizeBytes  int64  `json:"size_bytes"`
}

// TableName 自定义表名
func (DocumentModel) TableName() string {
	return "document"
}
