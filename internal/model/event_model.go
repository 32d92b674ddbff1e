package model

import (
	"time"
)

// EventModel 通知事件记录，按核心提交顺序只追加
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;index"`
	EventType string `json:"event_type" gorm:"not null"`
	Data      string `json:"data" gorm:"type:text"` // 通知负载的JSON快照
}

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
