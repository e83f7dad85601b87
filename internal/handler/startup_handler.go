package handler

import (
	"net/http"

	"github.com/fundbridge/dealroom/internal/logic"
	"github.com/fundbridge/dealroom/internal/middleware"
	"github.com/fundbridge/dealroom/internal/model"
	"github.com/fundbridge/dealroom/internal/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StartupHandler 创始人侧申请接口
type StartupHandler struct {
	startupLogic  *logic.StartupLogic
	documentLogic *logic.DocumentLogic
	store         *storage.Store
}

// NewStartupHandler 创建申请处理器
func NewStartupHandler(db *gorm.DB, notifier logic.Notifier, store *storage.Store) *StartupHandler {
	return &StartupHandler{
		startupLogic:  logic.NewStartupLogic(db, notifier),
		documentLogic: logic.NewDocumentLogic(db),
		store:         store,
	}
}

// fieldColumns 请求 JSON 字段到数据库列的映射
var fieldColumns = map[string]string{
	"companyName":        "company_name",
	"website":            "website",
	"hq":                 "hq",
	"foundedYear":        "founded_year",
	"stage":              "stage",
	"sector":             "sector",
	"b2bB2c":             "b2b_b2c",
	"teamSize":           "team_size",
	"founders":           "founders",
	"problem":            "problem",
	"solution":           "solution",
	"differentiation":    "differentiation",
	"businessModel":      "business_model",
	"tractionHighlights": "traction_highlights",
	"monthlyRevenue":     "monthly_revenue",
	"customerCount":      "customer_count",
	"growthRate":         "growth_rate",
	"roundType":          "round_type",
	"targetAmount":       "target_amount",
	"raisedToDate":       "raised_to_date",
	"preMoneyValuation":  "pre_money_valuation",
	"useOfFunds":         "use_of_funds",
	"pitchDeckUrl":       "pitch_deck_url",
}

// CreateStartup 创建申请
func (h *StartupHandler) CreateStartup(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	var startup model.StartupModel
	if err := c.ShouldBindJSON(&startup); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.startupLogic.CreateStartup(account, &startup); err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "申请创建成功", startup)
}

// GetOwnStartup 查看自己的申请
func (h *StartupHandler) GetOwnStartup(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	startup, err := h.startupLogic.GetOwnStartup(account)
	if err != nil {
		LogicError(c, err)
		return
	}

	// 内部备注不回给创始人
	startup.InternalNotes = ""
	SuccessResponse(c, http.StatusOK, "", startup)
}

// UpdateOwnStartup 更新自己的申请字段
func (h *StartupHandler) UpdateOwnStartup(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	for key, value := range body {
		if column, ok := fieldColumns[key]; ok {
			updates[column] = value
		}
	}

	startup, err := h.startupLogic.UpdateOwnStartup(account, updates)
	if err != nil {
		LogicError(c, err)
		return
	}

	startup.InternalNotes = ""
	SuccessResponse(c, http.StatusOK, "申请更新成功", startup)
}

// SubmitStartup 提交申请进入审核
func (h *StartupHandler) SubmitStartup(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	startup, err := h.startupLogic.SubmitStartup(account)
	if err != nil {
		LogicError(c, err)
		return
	}

	startup.InternalNotes = ""
	SuccessResponse(c, http.StatusOK, "申请已提交", startup)
}

// UploadDocument 上传附件
func (h *StartupHandler) UploadDocument(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "cannot read uploaded file")
		return
	}
	defer file.Close()

	key, url, size, err := h.store.Save(fileHeader.Filename, file)
	if err != nil {
		ErrorResponse(c, http.StatusBadGateway, err.Error())
		return
	}

	doc := &model.DocumentModel{
		Type:       c.PostForm("type"),
		Filename:   fileHeader.Filename,
		StorageKey: key,
		Url:        url,
		SizeBytes:  size,
	}
	if err := h.documentLogic.AddDocument(account, doc); err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "附件上传成功", doc)
}

// GetOwnDocuments 查看自己申请的附件
func (h *StartupHandler) GetOwnDocuments(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)

	docs, err := h.documentLogic.ListOwnDocuments(account)
	if err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", docs)
}
