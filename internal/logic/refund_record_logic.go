package logic

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/blues/esl/internal/model"
)

// RefundRecordLogic 撤资记录查询业务逻辑
type RefundRecordLogic struct {
	db *gorm.DB
}

// NewRefundRecordLogic 创建撤资记录查询业务逻辑
func NewRefundRecordLogic(db *gorm.DB) *RefundRecordLogic {
	return &RefundRecordLogic{db: db}
}

// GetProjectRefunds 获取项目撤资记录
func (r *RefundRecordLogic) GetProjectRefunds(projectId int64, page, pageSize int) ([]model.RefundRecordModel, int64, error) {
	var total int64
	if err := r.db.Model(&model.RefundRecordModel{}).Where("project_id = ?", projectId).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.RefundRecordModel
	offset := (page - 1) * pageSize
	if err := r.db.Where("project_id = ?", projectId).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetRefundStats 获取项目撤资统计信息
func (r *RefundRecordLogic) GetRefundStats(projectId int64) (map[string]interface{}, error) {
	var totalRefunds int64
	if err := r.db.Model(&model.RefundRecordModel{}).Where("project_id = ?", projectId).Count(&totalRefunds).Error; err != nil {
		return nil, fmt.Errorf("failed to count refund records: %w", err)
	}

	var totalAmount int64
	if err := r.db.Model(&model.RefundRecordModel{}).Where("project_id = ?", projectId).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalAmount).Error; err != nil {
		return nil, fmt.Errorf("failed to sum refund amounts: %w", err)
	}

	return map[string]interface{}{
		"total_refunds": totalRefunds,
		"total_amount":  totalAmount,
	}, nil
}
