package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blues/esl/internal/fund"
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

// OperationErrorResponse 按核心错误分类映射HTTP状态码
func OperationErrorResponse(c *gin.Context, err error) {
	ErrorResponse(c, statusForError(err), err.Error())
}

// statusForError 核心错误分类到HTTP状态码:
// 参数校验 400, 权限 403, 状态机/资金状态冲突 409, 转账端口失败 502
func statusForError(err error) int {
	switch {
	case errors.Is(err, fund.ErrInvalidGoal),
		errors.Is(err, fund.ErrInvalidDeadline),
		errors.Is(err, fund.ErrInvalidProjectID),
		errors.Is(err, fund.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, fund.ErrCallerNotProjectOwner):
		return http.StatusForbidden
	case errors.Is(err, fund.ErrDeadlineAlreadyPassed),
		errors.Is(err, fund.ErrDeadlineNotPassedYet),
		errors.Is(err, fund.ErrProjectAlreadyEnded),
		errors.Is(err, fund.ErrProjectNotEndedYet),
		errors.Is(err, fund.ErrCannotWithdrawFromSuccessfulProject):
		return http.StatusConflict
	case fund.IsTransferError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
