package model

import (
	"time"
)

// AuditLogModel 操作审计日志（只写不改）
type AuditLogModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ActorId    int64  `json:"actor_id" gorm:"index"`
	Action     string `json:"action" gorm:"not null"`
	EntityType string `json:"entity_type"`
	EntityId   int64  `json:"entity_id"`
	Metadata   string `json:"metadata" gorm:"type:text"`
}

// TableName 自定义表名
func (AuditLogModel) TableName() string {
	return "audit_log"
}
