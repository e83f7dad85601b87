package logic

import (
	"fmt"
	"strings"

	"github.com/fundbridge/dealroom/internal/model"
	"gorm.io/gorm"
)

// DocumentLogic 附件业务逻辑
type DocumentLogic struct {
	db *gorm.DB
}

// NewDocumentLogic 创建附件业务逻辑
func NewDocumentLogic(db *gorm.DB) *DocumentLogic {
	return &DocumentLogic{db: db}
}

// AddDocument 为当前账户的申请追加一个附件记录
// 文件本体已由存储层落盘，这里只登记元数据
func (d *DocumentLogic) AddDocument(actor *model.AccountModel, doc *model.DocumentModel) error {
	if actor.Role != model.RoleStartup {
		return fmt.Errorf("%w: only startup accounts can upload documents", ErrForbidden)
	}
	if strings.TrimSpace(doc.Filename) == "" {
		return fmt.Errorf("%w: filename is required", ErrValidation)
	}

	var startup model.StartupModel
	if err := d.db.Where("account_id = ?", actor.Id).First(&startup).Error; err != nil {
		return fmt.Errorf("%w: application", ErrNotFound)
	}

	doc.Id = 0
	doc.StartupId = startup.Id
	if doc.Type == "" {
		doc.Type = "other"
	}
	if err := d.db.Create(doc).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}

	recordAudit(d.db, actor.Id, "document.upload", "document", doc.Id, map[string]interface{}{
		"filename": doc.Filename,
	})
	return nil
}

// ListOwnDocuments 列出当前账户申请的全部附件
func (d *DocumentLogic) ListOwnDocuments(actor *model.AccountModel) ([]model.DocumentModel, error) {
	if actor.Role != model.RoleStartup {
		return nil, fmt.Errorf("%w: only startup accounts have documents", ErrForbidden)
	}

	var startup model.StartupModel
	if err := d.db.Where("account_id = ?", actor.Id).First(&startup).Error; err != nil {
		return nil, fmt.Errorf("%w: application", ErrNotFound)
	}
	return d.listForStartup(startup.Id)
}

// ListStartupDocuments 管理员查看指定申请的附件
func (d *DocumentLogic) ListStartupDocuments(actor *model.AccountModel, startupId int64) ([]model.DocumentModel, error) {
	if actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}
	return d.listForStartup(startupId)
}

func (d *DocumentLogic) listForStartup(startupId int64) ([]model.DocumentModel, error) {
	var docs []model.DocumentModel
	if err := d.db.Where("startup_id = ?", startupId).Order("id ASC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return docs, nil
}
