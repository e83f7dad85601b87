package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/fundbridge/dealroom/internal/model"
	"gorm.io/gorm"
)

// IntroductionLogic 对接请求业务逻辑
type IntroductionLogic struct {
	db       *gorm.DB
	notifier Notifier
}

// NewIntroductionLogic 创建对接请求业务逻辑
func NewIntroductionLogic(db *gorm.DB, notifier Notifier) *IntroductionLogic {
	return &IntroductionLogic{db: db, notifier: notifier}
}

// Create 投资人发起对接请求
// 同一 (投资人, 创业公司, 交易室) 组合无论处于何种状态都不允许重复创建
func (i *IntroductionLogic) Create(actor *model.AccountModel, startupId int64, dealRoomId *int64, note string) (*model.IntroductionRequestModel, error) {
	if actor.Role != model.RoleInvestor {
		return nil, fmt.Errorf("%w: only investors can request introductions", ErrForbidden)
	}

	var startup model.StartupModel
	if err := i.db.First(&startup, startupId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: startup %d", ErrNotFound, startupId)
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	// 投资人只能通过自己所在的交易室接触创业公司
	if dealRoomId != nil {
		ok, err := i.roomLinksBoth(*dealRoomId, actor.Id, startupId)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: startup is not reachable through this deal room", ErrForbidden)
		}
	} else {
		ok, err := i.sharesAnyRoom(actor.Id, startupId)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: no shared deal room with this startup", ErrForbidden)
		}
	}

	dupe := i.db.Model(&model.IntroductionRequestModel{}).
		Where("investor_id = ? AND startup_id = ?", actor.Id, startupId)
	if dealRoomId != nil {
		dupe = dupe.Where("deal_room_id = ?", *dealRoomId)
	} else {
		dupe = dupe.Where("deal_room_id IS NULL")
	}
	var count int64
	if err := dupe.Count(&count).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: introduction already requested for this startup", ErrConflict)
	}

	request := &model.IntroductionRequestModel{
		InvestorId: actor.Id,
		StartupId:  startupId,
		DealRoomId: dealRoomId,
		Note:       note,
		Status:     model.IntroductionStatusRequested,
	}
	if err := i.db.Create(request).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	recordAudit(i.db, actor.Id, "introduction.create", "introduction_request", request.Id, map[string]interface{}{
		"startupId": startupId,
	})
	notify(i.notifier, "introduction_requested", i.accountEmail(startup.AccountId), map[string]string{
		"companyName": startup.CompanyName,
		"investor":    actor.Name,
	})
	return request, nil
}

// GetOwnRequests 投资人查看自己发起的请求
func (i *IntroductionLogic) GetOwnRequests(actor *model.AccountModel) ([]model.IntroductionRequestModel, error) {
	if actor.Role != model.RoleInvestor {
		return nil, fmt.Errorf("%w: investor only", ErrForbidden)
	}

	var requests []model.IntroductionRequestModel
	if err := i.db.Where("investor_id = ?", actor.Id).Order("id DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return requests, nil
}

// GetRequests 管理员按状态查看请求列表
func (i *IntroductionLogic) GetRequests(actor *model.AccountModel, status string) ([]model.IntroductionRequestModel, error) {
	if actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}

	query := i.db.Model(&model.IntroductionRequestModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []model.IntroductionRequestModel
	if err := query.Order("id DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return requests, nil
}

// Decide 管理员批准或拒绝请求，终态不可再变更
// 角色在每次调用时重新查库确认，不信任调用方缓存
func (i *IntroductionLogic) Decide(actor *model.AccountModel, id int64, approve bool) (*model.IntroductionRequestModel, error) {
	var current model.AccountModel
	if err := i.db.First(&current, actor.Id).Error; err != nil {
		return nil, fmt.Errorf("%w: account %d", ErrNotFound, actor.Id)
	}
	if current.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins can decide introduction requests", ErrForbidden)
	}

	var request model.IntroductionRequestModel
	if err := i.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: introduction request %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	if request.Status.Terminal() {
		return nil, fmt.Errorf("%w: request already %s", ErrConflict, request.Status)
	}

	next := model.IntroductionStatusDeclined
	if approve {
		next = model.IntroductionStatusApproved
	}
	now := time.Now()
	updates := map[string]interface{}{
		"status":     next,
		"decided_by": actor.Id,
		"decided_at": now,
	}
	if err := i.db.Model(&request).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	request.Status = next
	request.DecidedBy = &actor.Id
	request.DecidedAt = &now

	recordAudit(i.db, actor.Id, "introduction.decide", "introduction_request", request.Id, map[string]interface{}{
		"status": next,
	})

	// 通知双方，失败只记日志
	data := map[string]string{"status": string(next)}
	notify(i.notifier, "introduction_decided", i.accountEmail(request.InvestorId), data)
	var startup model.StartupModel
	if err := i.db.First(&startup, request.StartupId).Error; err == nil {
		notify(i.notifier, "introduction_decided", i.accountEmail(startup.AccountId), data)
	}
	return &request, nil
}

// roomLinksBoth 交易室是否同时包含该投资人和该创业公司
func (i *IntroductionLogic) roomLinksBoth(roomId, investorId, startupId int64) (bool, error) {
	var investorCount int64
	err := i.db.Model(&model.DealRoomInvestorModel{}).
		Where("deal_room_id = ? AND investor_id = ?", roomId, investorId).
		Count(&investorCount).Error
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	var startupCount int64
	err = i.db.Model(&model.DealRoomStartupModel{}).
		Where("deal_room_id = ? AND startup_id = ?", roomId, startupId).
		Count(&startupCount).Error
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return investorCount > 0 && startupCount > 0, nil
}

// sharesAnyRoom 投资人与创业公司是否共处至少一个交易室
func (i *IntroductionLogic) sharesAnyRoom(investorId, startupId int64) (bool, error) {
	var count int64
	err := i.db.Model(&model.DealRoomInvestorModel{}).
		Joins("JOIN deal_room_startup ON deal_room_startup.deal_room_id = deal_room_investor.deal_room_id").
		Where("deal_room_investor.investor_id = ? AND deal_room_startup.startup_id = ?", investorId, startupId).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return count > 0, nil
}

// accountEmail 查账户邮箱，查不到返回空串
func (i *IntroductionLogic) accountEmail(accountId int64) string {
	var account model.AccountModel
	if err := i.db.First(&account, accountId).Error; err != nil {
		return ""
	}
	return account.Email
}
