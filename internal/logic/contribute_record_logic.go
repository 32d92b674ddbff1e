package logic

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/blues/esl/internal/model"
)

// ContributeRecordLogic 出资记录查询业务逻辑
type ContributeRecordLogic struct {
	db *gorm.DB
}

// NewContributeRecordLogic 创建出资记录查询业务逻辑
func NewContributeRecordLogic(db *gorm.DB) *ContributeRecordLogic {
	return &ContributeRecordLogic{db: db}
}

// GetProjectContributeRecords 获取项目出资记录
func (c *ContributeRecordLogic) GetProjectContributeRecords(projectId int64, page, pageSize int) ([]model.ContributeRecordModel, int64, error) {
	var total int64
	if err := c.db.Model(&model.ContributeRecordModel{}).Where("project_id = ?", projectId).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.ContributeRecordModel
	offset := (page - 1) * pageSize
	if err := c.db.Where("project_id = ?", projectId).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetContributeStats 获取项目出资统计信息
func (c *ContributeRecordLogic) GetContributeStats(projectId int64) (map[string]interface{}, error) {
	var stats struct {
		TotalContributions int64
		TotalAmount        int64
		UniqueContributors int64
	}

	// 总出资记录数
	if err := c.db.Model(&model.ContributeRecordModel{}).Where("project_id = ?", projectId).Count(&stats.TotalContributions).Error; err != nil {
		return nil, fmt.Errorf("failed to count contribute records: %w", err)
	}

	// 总出资金额
	if err := c.db.Model(&model.ContributeRecordModel{}).Where("project_id = ?", projectId).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalAmount).Error; err != nil {
		return nil, fmt.Errorf("failed to sum contribute amounts: %w", err)
	}

	// 唯一出资人数量
	if err := c.db.Model(&model.ContributeRecordModel{}).Where("project_id = ?", projectId).
		Distinct("address").Count(&stats.UniqueContributors).Error; err != nil {
		return nil, fmt.Errorf("failed to count unique contributors: %w", err)
	}

	// 平均出资金额
	averageAmount := int64(0)
	if stats.TotalContributions > 0 {
		averageAmount = stats.TotalAmount / stats.TotalContributions
	}

	return map[string]interface{}{
		"total_contributions": stats.TotalContributions,
		"total_amount":        stats.TotalAmount,
		"unique_contributors": stats.UniqueContributors,
		"average_amount":      averageAmount,
	}, nil
}
