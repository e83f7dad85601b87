package handler

import (
	"errors"
	"net/http"

	"github.com/fundbridge/dealroom/internal/logic"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// LogicError 将业务错误映射为 HTTP 状态码
func LogicError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, logic.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, logic.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, logic.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, logic.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, logic.ErrDependency):
		status = http.StatusBadGateway
	}
	ErrorResponse(c, status, err.Error())
}
