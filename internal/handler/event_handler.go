package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blues/esl/internal/logic"
)

// EventHandler 通知事件处理器
type EventHandler struct {
	eventLogic *logic.EventLogic
}

// NewEventHandler 创建通知事件处理器
func NewEventHandler(db *gorm.DB) *EventHandler {
	return &EventHandler{
		eventLogic: logic.NewEventLogic(db),
	}
}

// GetProjectEvents 获取项目的通知事件
func (h *EventHandler) GetProjectEvents(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	events, total, err := h.eventLogic.GetProjectEvents(projectId, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目事件成功", GetProjectEventsResponse{
		Events: ToEventResponseList(events),
		Pagination: Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}
