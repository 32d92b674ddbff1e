package model

import (
	"time"
)

// RefundRecordModel 撤资记录，项目失败后出资人退款的读侧留痕
type RefundRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64        `json:"project_id" gorm:"not null;index"`
	Address   string       `json:"address" gorm:"not null;index"`
	Amount    int64        `json:"amount" gorm:"not null"`
	Status    RefundStatus `json:"status" gorm:"default:'success'"`
}

// RefundStatus 撤资记录状态。记录在核心操作提交后写入，正常只有 success。
type RefundStatus string

const (
	RefundStatusSuccess RefundStatus = "success"
	RefundStatusFailed  RefundStatus = "failed"
)

// TableName 自定义表名
func (RefundRecordModel) TableName() string {
	return "refund_record"
}
