package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blues/esl/internal/logic"
)

// ContributeRecordHandler 出资记录处理器
type ContributeRecordHandler struct {
	contributeLogic *logic.ContributeRecordLogic
}

// NewContributeRecordHandler 创建出资记录处理器
func NewContributeRecordHandler(db *gorm.DB) *ContributeRecordHandler {
	return &ContributeRecordHandler{
		contributeLogic: logic.NewContributeRecordLogic(db),
	}
}

// GetProjectContributeRecords 获取项目出资记录
func (h *ContributeRecordHandler) GetProjectContributeRecords(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	records, total, err := h.contributeLogic.GetProjectContributeRecords(projectId, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目出资记录成功", GetProjectContributeRecordsResponse{
		Records: ToContributeRecordResponseList(records),
		Pagination: Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// GetContributeStats 获取项目出资统计信息
func (h *ContributeRecordHandler) GetContributeStats(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	stats, err := h.contributeLogic.GetContributeStats(projectId)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取出资统计成功", stats)
}
