package logic

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fundbridge/dealroom/internal/model"
	"gorm.io/gorm"
)

// DealRoomLogic 交易室业务逻辑
type DealRoomLogic struct {
	db *gorm.DB
}

// NewDealRoomLogic 创建交易室业务逻辑
func NewDealRoomLogic(db *gorm.DB) *DealRoomLogic {
	return &DealRoomLogic{db: db}
}

// CreateDealRoom 管理员创建交易室
func (d *DealRoomLogic) CreateDealRoom(actor *model.AccountModel, room *model.DealRoomModel) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: only admins can create deal rooms", ErrForbidden)
	}
	if strings.TrimSpace(room.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	room.Id = 0
	room.CreatedBy = actor.Id
	if err := d.db.Create(room).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}

	recordAudit(d.db, actor.Id, "dealroom.create", "deal_room", room.Id, nil)
	return nil
}

// GetDealRooms 管理员查看全部交易室
func (d *DealRoomLogic) GetDealRooms(actor *model.AccountModel) ([]model.DealRoomModel, error) {
	if actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}

	var rooms []model.DealRoomModel
	if err := d.db.Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return rooms, nil
}

// GetDealRoom 管理员查看单个交易室
func (d *DealRoomLogic) GetDealRoom(actor *model.AccountModel, id int64) (*model.DealRoomModel, error) {
	if actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}
	return d.getRoom(id)
}

// UpdateDealRoom 管理员更新交易室名称和描述
func (d *DealRoomLogic) UpdateDealRoom(actor *model.AccountModel, id int64, name, description *string) (*model.DealRoomModel, error) {
	if actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins can update deal rooms", ErrForbidden)
	}

	room, err := d.getRoom(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	if err := d.db.Model(room).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	recordAudit(d.db, actor.Id, "dealroom.update", "deal_room", room.Id, nil)
	return d.getRoom(id)
}

// DeleteDealRoom 管理员删除交易室及其关联和可见性配置
func (d *DealRoomLogic) DeleteDealRoom(actor *model.AccountModel, id int64) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: only admins can delete deal rooms", ErrForbidden)
	}

	room, err := d.getRoom(id)
	if err != nil {
		return err
	}

	err = d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deal_room_id = ?", id).Delete(&model.DealRoomStartupModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("deal_room_id = ?", id).Delete(&model.DealRoomInvestorModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("deal_room_id = ?", id).Delete(&model.VisibilityConfigModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(room).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}

	recordAudit(d.db, actor.Id, "dealroom.delete", "deal_room", id, nil)
	return nil
}

// AddStartup 将创业公司加入交易室
func (d *DealRoomLogic) AddStartup(actor *model.AccountModel, roomId, startupId int64) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: only admins can manage deal room members", ErrForbidden)
	}
	if _, err := d.getRoom(roomId); err != nil {
		return err
	}

	var startup model.StartupModel
	if err := d.db.First(&startup, startupId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: startup %d", ErrNotFound, startupId)
		}
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}

	var count int64
	if err := d.db.Model(&model.DealRoomStartupModel{}).
		Where("deal_room_id = ? AND startup_id = ?", roomId, startupId).
		Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: startup already in deal room", ErrConflict)
	}

	link := &model.DealRoomStartupModel{DealRoomId: roomId, StartupId: startupId}
	if err := d.db.Create(link).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}

	recordAudit(d.db, actor.Id, "dealroom.add_startup", "deal_room", roomId, map[string]interface{}{
		"startupId": startupId,
	})
	return nil
}

// RemoveStartup 将创业公司移出交易室
func (d *DealRoomLogic) RemoveStartup(actor *model.AccountModel, roomId, startupId int64) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: only admins can manage deal room members", ErrForbidden)
	}

	result := d.db.Where("deal_room_id = ? AND startup_id = ?", roomId, startupId).
		Delete(&model.DealRoomStartupModel{})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrDependency, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: startup %d is not in deal room %d", ErrNotFound, startupId, roomId)
	}

	recordAudit(d.db, actor.Id, "dealroom.remove_startup", "deal_room", roomId, map[string]interface{}{
		"startupId": startupId,
	})
	return nil
}

// AddInvestor 邀请投资人加入交易室
func (d *DealRoomLogic) AddInvestor(actor *model.AccountModel, roomId, investorId int64) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: only admins can manage deal room members", ErrForbidden)
	}
	if _, err := d.getRoom(roomId); err != nil {
		return err
	}

	var investor model.AccountModel
	if err := d.db.First(&investor, investorId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: account %d", ErrNotFound, investorId)
		}
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}
	if investor.Role != model.RoleInvestor {
		return fmt.Errorf("%w: account %d is not an investor", ErrValidation, investorId)
	}

	var count int64
	if err := d.db.Model(&model.DealRoomInvestorModel{}).
		Where("deal_room_id = ? AND investor_id = ?", roomId, investorId).
		Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: investor already in deal room", ErrConflict)
	}

	link := &model.DealRoomInvestorModel{DealRoomId: roomId, InvestorId: investorId}
	if err := d.db.Create(link).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}

	recordAudit(d.db, actor.Id, "dealroom.add_investor", "deal_room", roomId, map[string]interface{}{
		"investorId": investorId,
	})
	return nil
}

// RemoveInvestor 将投资人移出交易室
func (d *DealRoomLogic) RemoveInvestor(actor *model.AccountModel, roomId, investorId int64) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: only admins can manage deal room members", ErrForbidden)
	}

	result := d.db.Where("deal_room_id = ? AND investor_id = ?", roomId, investorId).
		Delete(&model.DealRoomInvestorModel{})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrDependency, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: investor %d is not in deal room %d", ErrNotFound, investorId, roomId)
	}

	recordAudit(d.db, actor.Id, "dealroom.remove_investor", "deal_room", roomId, map[string]interface{}{
		"investorId": investorId,
	})
	return nil
}

// SetVisibility 配置交易室可见字段，必须是已知字段的子集
func (d *DealRoomLogic) SetVisibility(actor *model.AccountModel, roomId int64, fields []string) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: only admins can configure visibility", ErrForbidden)
	}
	if _, err := d.getRoom(roomId); err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: field list must not be empty", ErrValidation)
	}
	for _, name := range fields {
		if !KnownStartupField(name) {
			return fmt.Errorf("%w: unknown field %q", ErrValidation, name)
		}
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDependency, err)
	}

	var config model.VisibilityConfigModel
	err = d.db.Where("deal_room_id = ?", roomId).First(&config).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		config = model.VisibilityConfigModel{DealRoomId: roomId, Fields: string(raw)}
		if err := d.db.Create(&config).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDependency, err)
		}
	case err != nil:
		return fmt.Errorf("%w: %v", ErrDependency, err)
	default:
		if err := d.db.Model(&config).Update("fields", string(raw)).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDependency, err)
		}
	}

	recordAudit(d.db, actor.Id, "dealroom.visibility", "deal_room", roomId, map[string]interface{}{
		"fields": fields,
	})
	return nil
}

// VisibleFields 取交易室的可见字段列表，未配置时返回默认白名单
func (d *DealRoomLogic) VisibleFields(roomId int64) []string {
	var config model.VisibilityConfigModel
	if err := d.db.Where("deal_room_id = ?", roomId).First(&config).Error; err != nil {
		return DefaultVisibleFields
	}

	var fields []string
	if err := json.Unmarshal([]byte(config.Fields), &fields); err != nil || len(fields) == 0 {
		return DefaultVisibleFields
	}
	return fields
}

// GetRoomsForInvestor 投资人查看自己所在的交易室
func (d *DealRoomLogic) GetRoomsForInvestor(actor *model.AccountModel) ([]model.DealRoomModel, error) {
	if actor.Role != model.RoleInvestor {
		return nil, fmt.Errorf("%w: investor only", ErrForbidden)
	}

	var rooms []model.DealRoomModel
	err := d.db.
		Joins("JOIN deal_room_investor ON deal_room_investor.deal_room_id = deal_room.id").
		Where("deal_room_investor.investor_id = ?", actor.Id).
		Order("deal_room.id ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return rooms, nil
}

// GetRoomForInvestor 投资人查看交易室详情，成员申请经可见性过滤
func (d *DealRoomLogic) GetRoomForInvestor(actor *model.AccountModel, roomId int64) (*model.DealRoomModel, []map[string]interface{}, error) {
	if actor.Role != model.RoleInvestor {
		return nil, nil, fmt.Errorf("%w: investor only", ErrForbidden)
	}

	room, err := d.getRoom(roomId)
	if err != nil {
		return nil, nil, err
	}
	member, err := d.isInvestorMember(roomId, actor.Id)
	if err != nil {
		return nil, nil, err
	}
	if !member {
		return nil, nil, fmt.Errorf("%w: not a member of this deal room", ErrForbidden)
	}

	var startups []model.StartupModel
	err = d.db.
		Joins("JOIN deal_room_startup ON deal_room_startup.startup_id = startup.id").
		Where("deal_room_startup.deal_room_id = ?", roomId).
		Order("startup.id ASC").
		Find(&startups).Error
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	fields := d.VisibleFields(roomId)
	projections := make([]map[string]interface{}, 0, len(startups))
	for i := range startups {
		projection := ProjectStartup(&startups[i], fields)
		projection["id"] = startups[i].Id
		projections = append(projections, projection)
	}
	return room, projections, nil
}

// GetStartupForInvestor 投资人查看交易室内单个创业公司的过滤视图
func (d *DealRoomLogic) GetStartupForInvestor(actor *model.AccountModel, roomId, startupId int64) (map[string]interface{}, error) {
	if actor.Role != model.RoleInvestor {
		return nil, fmt.Errorf("%w: investor only", ErrForbidden)
	}

	if _, err := d.getRoom(roomId); err != nil {
		return nil, err
	}
	member, err := d.isInvestorMember(roomId, actor.Id)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, fmt.Errorf("%w: not a member of this deal room", ErrForbidden)
	}

	var startup model.StartupModel
	err = d.db.
		Joins("JOIN deal_room_startup ON deal_room_startup.startup_id = startup.id").
		Where("deal_room_startup.deal_room_id = ? AND startup.id = ?", roomId, startupId).
		First(&startup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: startup %d is not in deal room %d", ErrNotFound, startupId, roomId)
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	projection := ProjectStartup(&startup, d.VisibleFields(roomId))
	projection["id"] = startup.Id
	return projection, nil
}

func (d *DealRoomLogic) getRoom(id int64) (*model.DealRoomModel, error) {
	var room model.DealRoomModel
	if err := d.db.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: deal room %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return &room, nil
}

func (d *DealRoomLogic) isInvestorMember(roomId, investorId int64) (bool, error) {
	var count int64
	err := d.db.Model(&model.DealRoomInvestorModel{}).
		Where("deal_room_id = ? AND investor_id = ?", roomId, investorId).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return count > 0, nil
}
