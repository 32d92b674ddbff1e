package logic

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/blues/esl/internal/model"
)

// ErrProjectNotFound 项目投影不存在
var ErrProjectNotFound = errors.New("project not found")

// ProjectLogic 项目查询业务逻辑（读侧投影）
type ProjectLogic struct {
	db *gorm.DB
}

// NewProjectLogic 创建项目查询业务逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db}
}

// GetProjects 获取项目列表
func (p *ProjectLogic) GetProjects(status, owner string, page, pageSize int) ([]model.ProjectModel, int64, error) {
	query := p.db.Model(&model.ProjectModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if owner != "" {
		query = query.Where("owner = ?", owner)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	var projects []model.ProjectModel
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("id DESC").Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, total, nil
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(id int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	if err := p.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}
	return &project, nil
}

// GetProjectStats 获取单个项目统计信息
func (p *ProjectLogic) GetProjectStats(id int64) (map[string]interface{}, error) {
	project, err := p.GetProject(id)
	if err != nil {
		return nil, err
	}

	var contributorCount int64
	if err := p.db.Model(&model.ContributeRecordModel{}).
		Where("project_id = ?", id).
		Distinct("address").
		Count(&contributorCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count contributors: %w", err)
	}

	var contributionCount int64
	if err := p.db.Model(&model.ContributeRecordModel{}).
		Where("project_id = ?", id).
		Count(&contributionCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count contributions: %w", err)
	}

	// 完成百分比
	completionPercentage := float64(0)
	if project.Goal > 0 {
		completionPercentage = float64(project.AmountRaised) / float64(project.Goal) * 100
	}

	// 剩余时间
	remainingTime := time.Duration(0)
	if project.Status == model.ProjectStatusActive && time.Now().Before(project.Deadline) {
		remainingTime = time.Until(project.Deadline)
	}

	return map[string]interface{}{
		"project_id":            project.Id,
		"owner":                 project.Owner,
		"goal":                  project.Goal,
		"amount_raised":         project.AmountRaised,
		"completion_percentage": completionPercentage,
		"contributor_count":     contributorCount,
		"contribution_count":    contributionCount,
		"remaining_time":        remainingTime.String(),
		"status":                string(project.Status),
	}, nil
}

// GetAllProjectStats 获取平台整体统计信息
func (p *ProjectLogic) GetAllProjectStats() (map[string]interface{}, error) {
	var totalProjects int64
	p.db.Model(&model.ProjectModel{}).Count(&totalProjects)

	countByStatus := func(status model.ProjectStatus) int64 {
		var count int64
		p.db.Model(&model.ProjectModel{}).Where("status = ?", status).Count(&count)
		return count
	}

	activeProjects := countByStatus(model.ProjectStatusActive)
	expiredProjects := countByStatus(model.ProjectStatusExpired)
	succeededProjects := countByStatus(model.ProjectStatusSucceeded)
	failedProjects := countByStatus(model.ProjectStatusFailed)

	// 在募资金总额（成功项目资金已分配，不计入）
	var totalOutstanding int64
	p.db.Model(&model.ProjectModel{}).
		Where("status <> ?", model.ProjectStatusSucceeded).
		Select("COALESCE(SUM(amount_raised), 0)").
		Scan(&totalOutstanding)

	// 平台累计手续费
	var totalFees int64
	p.db.Model(&model.SettlementRecordModel{}).
		Select("COALESCE(SUM(platform_fee), 0)").
		Scan(&totalFees)

	var totalContributors int64
	p.db.Model(&model.ContributeRecordModel{}).
		Distinct("address").
		Count(&totalContributors)

	return map[string]interface{}{
		"totalProjects":     totalProjects,
		"activeProjects":    activeProjects,
		"expiredProjects":   expiredProjects,
		"succeededProjects": succeededProjects,
		"failedProjects":    failedProjects,
		"totalOutstanding":  totalOutstanding,
		"totalPlatformFees": totalFees,
		"totalContributors": totalContributors,
	}, nil
}
