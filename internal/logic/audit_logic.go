package logic

import (
	"encoding/json"

	"github.com/fundbridge/dealroom/internal/logger"
	"github.com/fundbridge/dealroom/internal/model"
	"gorm.io/gorm"
)

// AuditLogic 审计日志业务逻辑
type AuditLogic struct {
	db *gorm.DB
}

// NewAuditLogic 创建审计日志业务逻辑
func NewAuditLogic(db *gorm.DB) *AuditLogic {
	return &AuditLogic{db: db}
}

// List 查询审计日志（倒序分页，管理员用）
func (a *AuditLogic) List(page, pageSize int) ([]model.AuditLogModel, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	var total int64
	if err := a.db.Model(&model.AuditLogModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.AuditLogModel
	err := a.db.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// recordAudit 追加一条审计记录，失败只记日志不影响主流程
func recordAudit(db *gorm.DB, actorId int64, action, entityType string, entityId int64, metadata map[string]interface{}) {
	blob := ""
	if len(metadata) > 0 {
		if raw, err := json.Marshal(metadata); err == nil {
			blob = string(raw)
		}
	}

	entry := &model.AuditLogModel{
		ActorId:    actorId,
		Action:     action,
		EntityType: entityType,
		EntityId:   entityId,
		Metadata:   blob,
	}
	if err := db.Create(entry).Error; err != nil {
		logger.Error("Failed to write audit log entry %s/%s/%d: %v", action, entityType, entityId, err)
	}
}
