package logic

import (
	"gorm.io/gorm"

	"github.com/blues/esl/internal/model"
)

// EventLogic 通知事件查询业务逻辑
type EventLogic struct {
	db *gorm.DB
}

// NewEventLogic 创建通知事件查询业务逻辑
func NewEventLogic(db *gorm.DB) *EventLogic {
	return &EventLogic{db: db}
}

// GetProjectEvents 获取项目的通知事件，按提交顺序返回
func (e *EventLogic) GetProjectEvents(projectId int64, page, pageSize int) ([]model.EventModel, int64, error) {
	var total int64
	if err := e.db.Model(&model.EventModel{}).Where("project_id = ?", projectId).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []model.EventModel
	offset := (page - 1) * pageSize
	if err := e.db.Where("project_id = ?", projectId).
		Offset(offset).
		Limit(pageSize).
		Order("id ASC").
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}
