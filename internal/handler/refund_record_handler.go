package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blues/esl/internal/logic"
)

// RefundRecordHandler 撤资记录处理器
type RefundRecordHandler struct {
	refundLogic *logic.RefundRecordLogic
}

// NewRefundRecordHandler 创建撤资记录处理器
func NewRefundRecordHandler(db *gorm.DB) *RefundRecordHandler {
	return &RefundRecordHandler{
		refundLogic: logic.NewRefundRecordLogic(db),
	}
}

// GetProjectRefunds 获取项目撤资记录
func (h *RefundRecordHandler) GetProjectRefunds(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	records, total, err := h.refundLogic.GetProjectRefunds(projectId, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目撤资记录成功", GetProjectRefundsResponse{
		Refunds: ToRefundRecordResponseList(records),
		Pagination: Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// GetRefundStats 获取项目撤资统计信息
func (h *RefundRecordHandler) GetRefundStats(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	stats, err := h.refundLogic.GetRefundStats(projectId)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取撤资统计成功", stats)
}
