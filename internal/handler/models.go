package handler

import (
	"time"

	"github.com/fundbridge/dealroom/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// NewPagination 计算分页信息
func NewPagination(page, pageSize int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	totalPage := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPage++
	}
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}

// AccountResponse 账户响应模型
type AccountResponse struct {
	Id        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse 登录/注册响应
type AuthResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

// IntroductionResponse 对接请求响应模型
type IntroductionResponse struct {
	Id         int64      `json:"id"`
	InvestorId int64      `json:"investorId"`
	StartupId  int64      `json:"startupId"`
	DealRoomId *int64     `json:"dealRoomId"`
	Note       string     `json:"note"`
	Status     string     `json:"status"`
	DecidedBy  *int64     `json:"decidedBy"`
	DecidedAt  *time.Time `json:"decidedAt"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// 转换函数

// ToAccountResponse 将账户模型转换为响应模型
func ToAccountResponse(account *model.AccountModel) AccountResponse {
	return AccountResponse{
		Id:        account.Id,
		Email:     account.Email,
		Name:      account.Name,
		Role:      string(account.Role),
		CreatedAt: account.CreatedAt,
	}
}

// ToIntroductionResponse 将对接请求模型转换为响应模型
func ToIntroductionResponse(request *model.IntroductionRequestModel) IntroductionResponse {
	return IntroductionResponse{
		Id:         request.Id,
		InvestorId: request.InvestorId,
		StartupId:  request.StartupId,
		DealRoomId: request.DealRoomId,
		Note:       request.Note,
		Status:     string(request.Status),
		DecidedBy:  request.DecidedBy,
		DecidedAt:  request.DecidedAt,
		CreatedAt:  request.CreatedAt,
	}
}

// ToIntroductionResponseList 将对接请求列表转换为响应模型列表
func ToIntroductionResponseList(requests []model.IntroductionRequestModel) []IntroductionResponse {
	result := make([]IntroductionResponse, len(requests))
	for i := range requests {
		result[i] = ToIntroductionResponse(&requests[i])
	}
	return result
}
