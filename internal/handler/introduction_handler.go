package handler

import (
	"net/http"
	"strconv"

	"github.com/fundbridge/dealroom/internal/logic"
	"github.com/fundbridge/dealroom/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// IntroductionHandler 对接请求接口
type IntroductionHandler struct {
	introductionLogic *logic.IntroductionLogic
}

// NewIntroductionHandler 创建对接请求处理器
func NewIntroductionHandler(db *gorm.DB, notifier logic.Notifier) *IntroductionHandler {
	return &IntroductionHandler{
		introductionLogic: logic.NewIntroductionLogic(db, notifier),
	}
}

// CreateIntroduction 投资人发起对接请求
func (h *IntroductionHandler) CreateIntroduction(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	var req struct {
		StartupId  int64  `json:"startupId" binding:"required"`
		DealRoomId *int64 `json:"dealRoomId"`
		Note       string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.introductionLogic.Create(account, req.StartupId, req.DealRoomId, req.Note)
	if err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "对接请求已创建", ToIntroductionResponse(request))
}

// GetOwnIntroductions 投资人查看自己的请求
func (h *IntroductionHandler) GetOwnIntroductions(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	requests, err := h.introductionLogic.GetOwnRequests(account)
	if err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", ToIntroductionResponseList(requests))
}

// GetIntroductions 管理员按状态查看请求
func (h *IntroductionHandler) GetIntroductions(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	requests, err := h.introductionLogic.GetRequests(account, c.Query("status"))
	if err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", ToIntroductionResponseList(requests))
}

// ApproveIntroduction 批准请求
func (h *IntroductionHandler) ApproveIntroduction(c *gin.Context) {
	h.decide(c, true)
}

// DeclineIntroduction 拒绝请求
func (h *IntroductionHandler) DeclineIntroduction(c *gin.Context) {
	h.decide(c, false)
}

func (h *IntroductionHandler) decide(c *gin.Context, approve bool) {
	account, _ := middleware.CurrentAccount(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求ID")
		return
	}

	request, err := h.introductionLogic.Decide(account, id, approve)
	if err != nil {
		LogicError(c, err)
		return
	}

	message := "请求已拒绝"
	if approve {
		message = "请求已批准"
	}
	SuccessResponse(c, http.StatusOK, message, ToIntroductionResponse(request))
}
