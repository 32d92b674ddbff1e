package model

import (
	"time"
)

// SettlementRecordModel 结算记录，记录达标项目关闭时的资金分配
type SettlementRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId      int64     `json:"project_id" gorm:"not null;uniqueIndex"` // 每个项目最多结算一次
	TotalAmount    int64     `json:"total_amount" gorm:"not null"`           // 募集总额
	PlatformFee    int64     `json:"platform_fee" gorm:"default:0"`          // 平台手续费
	OwnerAmount    int64     `json:"owner_amount" gorm:"not null"`           // 项目所有者获得金额
	SettlementTime time.Time `json:"settlement_time"`
}

// TableName 自定义表名
func (SettlementRecordModel) TableName() string {
	return "settlement_record"
}
