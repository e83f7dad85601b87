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

// AdminHandler 管理员侧申请审核接口
type AdminHandler struct {
	startupLogic  *logic.StartupLogic
	documentLogic *logic.DocumentLogic
	auditLogic    *logic.AuditLogic
}

// NewAdminHandler 创建管理接口处理器
func NewAdminHandler(db *gorm.DB, notifier logic.Notifier) *AdminHandler {
	return &AdminHandler{
		startupLogic:  logic.NewStartupLogic(db, notifier),
		documentLogic: logic.NewDocumentLogic(db),
		auditLogic:    logic.NewAuditLogic(db),
	}
}

// pageQuery 解析分页参数，非法值回落默认，与逻辑层的生效值保持一致
func pageQuery(c *gin.Context, defaultSize, maxSize int) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxSize {
		pageSize = defaultSize
	}
	return page, pageSize
}

// GetStartups 按条件分页查询申请列表
func (h *AdminHandler) GetStartups(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	status := c.Query("status")
	sector := c.Query("sector")
	page, pageSize := pageQuery(c, 20, 100)

	startups, total, err := h.startupLogic.GetStartups(account, status, sector, page, pageSize)
	if err != nil {
		LogicError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"startups":   startups,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// GetStartup 查看单个申请详情
func (h *AdminHandler) GetStartup(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的申请ID")
		return
	}

	startup, err := h.startupLogic.GetStartup(account, id)
	if err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", startup)
}

// UpdateStatus 流转申请状态
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的申请ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	startup, err := h.startupLogic.UpdateStatus(account, id, model.StartupStatus(req.Status))
	if err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "状态更新成功", startup)
}

// SetScores 打分
func (h *AdminHandler) SetScores(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的申请ID")
		return
	}

	var req struct {
		Team     *int `json:"team" binding:"required"`
		Market   *int `json:"market" binding:"required"`
		Traction *int `json:"traction" binding:"required"`
		Product  *int `json:"product" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	startup, err := h.startupLogic.SetScores(account, id, *req.Team, *req.Market, *req.Traction, *req.Product)
	if err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "评分已保存", startup)
}

// SetNotes 维护内部备注
func (h *AdminHandler) SetNotes(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的申请ID")
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.startupLogic.SetNotes(account, id, req.Notes); err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "备注已保存", nil)
}

// GetStartupDocuments 查看申请附件
func (h *AdminHandler) GetStartupDocuments(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的申请ID")
		return
	}

	docs, err := h.documentLogic.ListStartupDocuments(account, id)
	if err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", docs)
}

// GetStats 管理看板统计
func (h *AdminHandler) GetStats(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	stats, err := h.startupLogic.GetIntakeStats(account)
	if err != nil {
		LogicError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetAuditLog 查看审计日志
func (h *AdminHandler) GetAuditLog(c *gin.Context) {
	page, pageSize := pageQuery(c, 50, 200)

	entries, total, err := h.auditLogic.List(page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusBadGateway, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":    entries,
		"pagination": NewPagination(page, pageSize, total),
	})
}
