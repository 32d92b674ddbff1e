package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"github.com/blues/esl/internal/config"
	"github.com/blues/esl/internal/logger"
	"github.com/blues/esl/internal/model"
)

// ProjectStatusJob 项目状态更新任务：把已过截止时间但尚未关闭的
// 项目投影标记为 expired，提示所有者可以关闭结算。
// 只动读侧投影，核心状态机不受影响。
type ProjectStatusJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewProjectStatusJob 创建项目状态更新任务
func NewProjectStatusJob(db *gorm.DB, cfg *config.Config) *ProjectStatusJob {
	return &ProjectStatusJob{db: db, config: cfg}
}

// GetName 获取任务名称
func (j *ProjectStatusJob) GetName() string {
	return "project_status_updater"
}

// GetSchedule 获取调度配置
func (j *ProjectStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProjectStatusJob) Execute() {
	logger.Debug("Starting project status update task")

	result := j.db.Model(&model.ProjectModel{}).
		Where("status = ? AND deadline <= ?", model.ProjectStatusActive, time.Now()).
		Update("status", model.ProjectStatusExpired)

	if result.Error != nil {
		logger.Error("Failed to update expired projects: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		logger.Info("Marked %d projects as expired", result.RowsAffected)
	}
}
