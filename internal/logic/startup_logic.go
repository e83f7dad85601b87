package logic

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/fundbridge/dealroom/internal/model"
	"gorm.io/gorm"
)

// StartupLogic 创业公司申请业务逻辑
type StartupLogic struct {
	db       *gorm.DB
	notifier Notifier
}

// NewStartupLogic 创建申请业务逻辑
func NewStartupLogic(db *gorm.DB, notifier Notifier) *StartupLogic {
	return &StartupLogic{db: db, notifier: notifier}
}

// ownerUpdatableFields 创始人可自行维护的字段（snake_case 列名）
var ownerUpdatableFields = map[string]bool{
	"company_name":        true,
	"website":             true,
	"hq":                  true,
	"founded_year":        true,
	"stage":               true,
	"sector":              true,
	"b2b_b2c":             true,
	"team_size":           true,
	"founders":            true,
	"problem":             true,
	"solution":            true,
	"differentiation":     true,
	"business_model":      true,
	"traction_highlights": true,
	"monthly_revenue":     true,
	"customer_count":      true,
	"growth_rate":         true,
	"round_type":          true,
	"target_amount":       true,
	"raised_to_date":      true,
	"pre_money_valuation": true,
	"use_of_funds":        true,
	"pitch_deck_url":      true,
}

// ownerNumericFields 数值型字段，其余可维护字段均为字符串
var ownerNumericFields = map[string]bool{
	"founded_year":        true,
	"team_size":           true,
	"monthly_revenue":     true,
	"customer_count":      true,
	"target_amount":       true,
	"raised_to_date":      true,
	"pre_money_valuation": true,
}

// validFieldValue 校验字段值类型，JSON 解码后数值为 float64
func validFieldValue(column string, value interface{}) bool {
	if ownerNumericFields[column] {
		switch v := value.(type) {
		case int, int64:
			return true
		case float64:
			return v == math.Trunc(v)
		}
		return false
	}
	_, ok := value.(string)
	return ok
}

// CreateStartup 创建申请，每个账户只能有一份
func (s *StartupLogic) CreateStartup(actor *model.AccountModel, startup *model.StartupModel) error {
	if actor.Role != model.RoleStartup {
		return fmt.Errorf("%w: only startup accounts can create an application", ErrForbidden)
	}
	if strings.TrimSpace(startup.CompanyName) == "" {
		return fmt.Errorf("%w: companyName is required", ErrValidation)
	}

	var count int64
	if err := s.db.Model(&model.StartupModel{}).Where("account_id = ?", actor.Id).Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: account already has an application", ErrConflict)
	}

	startup.Id = 0
	startup.AccountId = actor.Id
	startup.Status = model.StartupStatusDraft
	startup.ScoreTeam = 0
	startup.ScoreMarket = 0
	startup.ScoreTraction = 0
	startup.ScoreProduct = 0
	startup.ScoreOverall = 0
	startup.InternalNotes = ""

	if err := s.db.Create(startup).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}

	recordAudit(s.db, actor.Id, "startup.create", "startup", startup.Id, nil)
	return nil
}

// GetOwnStartup 获取当前账户的申请
func (s *StartupLogic) GetOwnStartup(actor *model.AccountModel) (*model.StartupModel, error) {
	if actor.Role != model.RoleStartup {
		return nil, fmt.Errorf("%w: only startup accounts have an application", ErrForbidden)
	}

	var startup model.StartupModel
	if err := s.db.Where("account_id = ?", actor.Id).First(&startup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: application", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return &startup, nil
}

// UpdateOwnStartup 创始人更新自己的申请字段
// 只有草稿和待跟进状态可编辑，评分等管理员字段不可触达
func (s *StartupLogic) UpdateOwnStartup(actor *model.AccountModel, updates map[string]interface{}) (*model.StartupModel, error) {
	startup, err := s.GetOwnStartup(actor)
	if err != nil {
		return nil, err
	}
	if startup.Status != model.StartupStatusDraft && startup.Status != model.StartupStatusFollowUp {
		return nil, fmt.Errorf("%w: application is not editable in status %s", ErrValidation, startup.Status)
	}

	filtered := make(map[string]interface{})
	for column, value := range updates {
		if !ownerUpdatableFields[column] {
			continue
		}
		if !validFieldValue(column, value) {
			return nil, fmt.Errorf("%w: invalid value for %s", ErrValidation, column)
		}
		filtered[column] = value
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields", ErrValidation)
	}
	if name, ok := filtered["company_name"]; ok {
		if str, _ := name.(string); strings.TrimSpace(str) == "" {
			return nil, fmt.Errorf("%w: companyName is required", ErrValidation)
		}
	}

	if err := s.db.Model(startup).Updates(filtered).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	recordAudit(s.db, actor.Id, "startup.update", "startup", startup.Id, nil)
	return s.GetOwnStartup(actor)
}

// SubmitStartup 创始人提交申请进入审核流程
func (s *StartupLogic) SubmitStartup(actor *model.AccountModel) (*model.StartupModel, error) {
	startup, err := s.GetOwnStartup(actor)
	if err != nil {
		return nil, err
	}
	if startup.Status != model.StartupStatusDraft {
		return nil, fmt.Errorf("%w: only draft applications can be submitted", ErrValidation)
	}
	if strings.TrimSpace(startup.CompanyName) == "" {
		return nil, fmt.Errorf("%w: companyName is required", ErrValidation)
	}

	if err := s.db.Model(startup).Update("status", model.StartupStatusSubmitted).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	startup.Status = model.StartupStatusSubmitted

	recordAudit(s.db, actor.Id, "startup.submit", "startup", startup.Id, nil)
	notify(s.notifier, "application_submitted", actor.Email, map[string]string{
		"companyName": startup.CompanyName,
	})
	return startup, nil
}

// statusTransitions 管理员可执行的状态流转
var statusTransitions = map[model.StartupStatus][]model.StartupStatus{
	model.StartupStatusSubmitted: {model.StartupStatusInReview},
	model.StartupStatusInReview: {
		model.StartupStatusFollowUp,
		model.StartupStatusShortlisted,
		model.StartupStatusNotMovingForward,
	},
	model.StartupStatusFollowUp: {
		model.StartupStatusInReview,
		model.StartupStatusShortlisted,
		model.StartupStatusNotMovingForward,
	},
}

// UpdateStatus 管理员流转申请状态
func (s *StartupLogic) UpdateStatus(actor *model.AccountModel, id int64, next model.StartupStatus) (*model.StartupModel, error) {
	if actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins can change application status", ErrForbidden)
	}
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	startup, err := s.GetStartup(actor, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, candidate := range statusTransitions[startup.Status] {
		if candidate == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: cannot move application from %s to %s", ErrValidation, startup.Status, next)
	}

	previous := startup.Status
	if err := s.db.Model(startup).Update("status", next).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	startup.Status = next

	recordAudit(s.db, actor.Id, "startup.status", "startup", startup.Id, map[string]interface{}{
		"from": previous,
		"to":   next,
	})
	if email := s.ownerEmail(startup.AccountId); email != "" {
		notify(s.notifier, "status_changed", email, map[string]string{
			"companyName": startup.CompanyName,
			"status":      string(next),
		})
	}
	return startup, nil
}

// SetScores 管理员打分，总分为四项均值四舍五入，直接覆盖旧值
func (s *StartupLogic) SetScores(actor *model.AccountModel, id int64, team, market, traction, product int) (*model.StartupModel, error) {
	if actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins can score applications", ErrForbidden)
	}
	for _, score := range []int{team, market, traction, product} {
		if score < 0 || score > 100 {
			return nil, fmt.Errorf("%w: scores must be between 0 and 100", ErrValidation)
		}
	}

	startup, err := s.GetStartup(actor, id)
	if err != nil {
		return nil, err
	}

	overall := int(math.Round(float64(team+market+traction+product) / 4.0))
	updates := map[string]interface{}{
		"score_team":     team,
		"score_market":   market,
		"score_traction": traction,
		"score_product":  product,
		"score_overall":  overall,
	}
	if err := s.db.Model(startup).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	startup.ScoreTeam = team
	startup.ScoreMarket = market
	startup.ScoreTraction = traction
	startup.ScoreProduct = product
	startup.ScoreOverall = overall

	recordAudit(s.db, actor.Id, "startup.score", "startup", startup.Id, map[string]interface{}{
		"overall": overall,
	})
	return startup, nil
}

// SetNotes 管理员维护内部备注
func (s *StartupLogic) SetNotes(actor *model.AccountModel, id int64, notes string) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: only admins can edit internal notes", ErrForbidden)
	}

	startup, err := s.GetStartup(actor, id)
	if err != nil {
		return err
	}
	if err := s.db.Model(startup).Update("internal_notes", notes).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}

	recordAudit(s.db, actor.Id, "startup.notes", "startup", startup.Id, nil)
	return nil
}

// GetStartup 管理员按 ID 获取申请
func (s *StartupLogic) GetStartup(actor *model.AccountModel, id int64) (*model.StartupModel, error) {
	if actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}

	var startup model.StartupModel
	if err := s.db.First(&startup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: startup %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return &startup, nil
}

// GetStartups 管理员按条件分页查询申请列表
func (s *StartupLogic) GetStartups(actor *model.AccountModel, status, sector string, page, pageSize int) ([]model.StartupModel, int64, error) {
	if actor.Role != model.RoleAdmin {
		return nil, 0, fmt.Errorf("%w: admin only", ErrForbidden)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := s.db.Model(&model.StartupModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if sector != "" {
		query = query.Where("sector = ?", sector)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	var startups []model.StartupModel
	err := query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&startups).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return startups, total, nil
}

// GetIntakeStats 按状态统计申请数量（管理员看板用）
func (s *StartupLogic) GetIntakeStats(actor *model.AccountModel) (map[string]interface{}, error) {
	if actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}

	var total int64
	if err := s.db.Model(&model.StartupModel{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	byStatus := make(map[string]int64)
	for _, status := range []model.StartupStatus{
		model.StartupStatusDraft,
		model.StartupStatusSubmitted,
		model.StartupStatusInReview,
		model.StartupStatusFollowUp,
		model.StartupStatusShortlisted,
		model.StartupStatusNotMovingForward,
	} {
		var count int64
		if err := s.db.Model(&model.StartupModel{}).Where("status = ?", status).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDependency, err)
		}
		byStatus[string(status)] = count
	}

	var pendingIntros int64
	if err := s.db.Model(&model.IntroductionRequestModel{}).
		Where("status = ?", model.IntroductionStatusRequested).
		Count(&pendingIntros).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	return map[string]interface{}{
		"totalApplications":    total,
		"byStatus":             byStatus,
		"pendingIntroductions": pendingIntros,
	}, nil
}

// ownerEmail 查询申请所属账户邮箱，查不到返回空串
func (s *StartupLogic) ownerEmail(accountId int64) string {
	var account model.AccountModel
	if err := s.db.First(&account, accountId).Error; err != nil {
		return ""
	}
	return account.Email
}
