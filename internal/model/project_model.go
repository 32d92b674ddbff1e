package model

import (
	"time"
)

// ProjectModel 项目投影模型，由核心通知维护，供查询接口使用。
// 生命周期事实以核心状态机为准，这里只是读侧镜像。
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"` // 核心分配的顺序ID，非自增
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 项目信息
	Owner    string    `json:"owner" gorm:"not null"`
	Goal     int64     `json:"goal" gorm:"not null"`
	Deadline time.Time `json:"deadline" gorm:"not null"`

	// 募集信息
	AmountRaised int64 `json:"amount_raised" gorm:"default:0"`

	// 状态
	Status ProjectStatus `json:"status" gorm:"default:'active'"`
}

// ProjectStatus 项目投影状态
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"    // 开放出资
	ProjectStatusExpired   ProjectStatus = "expired"   // 已过截止时间，待关闭
	ProjectStatusSucceeded ProjectStatus = "succeeded" // 达标关闭，资金已分配
	ProjectStatusFailed    ProjectStatus = "failed"    // 未达标关闭，等待撤资
)

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}
