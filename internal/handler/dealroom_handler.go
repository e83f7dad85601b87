package handler

import (
	"net/http"
	"strconv"

	"github.com/fundbridge/dealroom/internal/logic"
	"github.com/fundbridge/dealroom/internal/middleware"
	"github.com/fundbridge/dealroom/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DealRoomHandler 交易室接口，管理员维护，投资人浏览
type DealRoomHandler struct {
	dealRoomLogic *logic.DealRoomLogic
}

// NewDealRoomHandler 创建交易室处理器
func NewDealRoomHandler(db *gorm.DB) *DealRoomHandler {
	return &DealRoomHandler{
		dealRoomLogic: logic.NewDealRoomLogic(db),
	}
}

// CreateDealRoom 创建交易室
func (h *DealRoomHandler) CreateDealRoom(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	var room model.DealRoomModel
	if err := c.ShouldBindJSON(&room); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.dealRoomLogic.CreateDealRoom(account, &room); err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "交易室创建成功", room)
}

// GetDealRooms 管理员查看全部交易室
func (h *DealRoomHandler) GetDealRooms(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	rooms, err := h.dealRoomLogic.GetDealRooms(account)
	if err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", rooms)
}

// GetDealRoom 管理员查看单个交易室
func (h *DealRoomHandler) GetDealRoom(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, ok := roomId(c)
	if !ok {
		return
	}

	room, err := h.dealRoomLogic.GetDealRoom(account, id)
	if err != nil {
		LogicError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room":          room,
		"visibleFields": h.dealRoomLogic.VisibleFields(id),
	})
}

// UpdateDealRoom 更新交易室
func (h *DealRoomHandler) UpdateDealRoom(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, ok := roomId(c)
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	room, err := h.dealRoomLogic.UpdateDealRoom(account, id, req.Name, req.Description)
	if err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "交易室更新成功", room)
}

// DeleteDealRoom 删除交易室
func (h *DealRoomHandler) DeleteDealRoom(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, ok := roomId(c)
	if !ok {
		return
	}

	if err := h.dealRoomLogic.DeleteDealRoom(account, id); err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "交易室已删除", nil)
}

// AddStartup 加入创业公司
func (h *DealRoomHandler) AddStartup(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, ok := roomId(c)
	if !ok {
		return
	}

	var req struct {
		StartupId int64 `json:"startupId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.dealRoomLogic.AddStartup(account, id, req.StartupId); err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "创业公司已加入交易室", nil)
}

// RemoveStartup 移出创业公司
func (h *DealRoomHandler) RemoveStartup(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, ok := roomId(c)
	if !ok {
		return
	}
	startupId, err := strconv.ParseInt(c.Param("startupId"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的创业公司ID")
		return
	}

	if err := h.dealRoomLogic.RemoveStartup(account, id, startupId); err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "创业公司已移出交易室", nil)
}

// AddInvestor 邀请投资人
func (h *DealRoomHandler) AddInvestor(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, ok := roomId(c)
	if !ok {
		return
	}

	var req struct {
		InvestorId int64 `json:"investorId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.dealRoomLogic.AddInvestor(account, id, req.InvestorId); err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "投资人已加入交易室", nil)
}

// RemoveInvestor 移出投资人
func (h *DealRoomHandler) RemoveInvestor(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, ok := roomId(c)
	if !ok {
		return
	}
	investorId, err := strconv.ParseInt(c.Param("investorId"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的投资人ID")
		return
	}

	if err := h.dealRoomLogic.RemoveInvestor(account, id, investorId); err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "投资人已移出交易室", nil)
}

// SetVisibility 配置可见字段
func (h *DealRoomHandler) SetVisibility(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, ok := roomId(c)
	if !ok {
		return
	}

	var req struct {
		Fields []string `json:"fields" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.dealRoomLogic.SetVisibility(account, id, req.Fields); err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "可见性配置已保存", nil)
}

// GetMyDealRooms 投资人查看自己所在的交易室
func (h *DealRoomHandler) GetMyDealRooms(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	rooms, err := h.dealRoomLogic.GetRoomsForInvestor(account)
	if err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", rooms)
}

// GetDealRoomView 投资人查看交易室详情，成员申请经可见性过滤
func (h *DealRoomHandler) GetDealRoomView(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, ok := roomId(c)
	if !ok {
		return
	}

	room, startups, err := h.dealRoomLogic.GetRoomForInvestor(account, id)
	if err != nil {
		LogicError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room":     room,
		"startups": startups,
	})
}

// GetStartupView 投资人查看单个创业公司的过滤视图
func (h *DealRoomHandler) GetStartupView(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, ok := roomId(c)
	if !ok {
		return
	}
	startupId, err := strconv.ParseInt(c.Param("startupId"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的创业公司ID")
		return
	}

	projection, err := h.dealRoomLogic.GetStartupForInvestor(account, id, startupId)
	if err != nil {
		LogicError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"startup": projection})
}

// roomId 解析路径里的交易室ID
func roomId(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的交易室ID")
		return 0, false
	}
	return id, true
}
