package model

import (
	"time"
)

// ContributeRecordModel 出资记录
type ContributeRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;index"`
	Address   string `json:"address" gorm:"not null;index"`
	Amount    int64  `json:"amount" gorm:"not null"`
}

// TableName 自定义表名
func (ContributeRecordModel) TableName() string {
	return "contribute_record"
}
