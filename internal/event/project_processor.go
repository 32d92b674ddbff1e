package event

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/blues/esl/internal/config"
	"github.com/blues/esl/internal/fund"
	"github.com/blues/esl/internal/logger"
	"github.com/blues/esl/internal/model"
)

// ProjectProcessor 投影处理器：消费核心通知，维护读侧的
// 项目、出资、撤资、结算投影，并把每条通知落入事件表。
type ProjectProcessor struct {
	db  *gorm.DB
	fee config.FeeConfig
}

// NewProjectProcessor 创建投影处理器
func NewProjectProcessor(db *gorm.DB, fee config.FeeConfig) *ProjectProcessor {
	return &ProjectProcessor{db: db, fee: fee}
}

// Name 实现 Observer
func (p *ProjectProcessor) Name() string {
	return "project_projection"
}

// Handle 实现 Observer
func (p *ProjectProcessor) Handle(n fund.Notification) error {
	switch e := n.(type) {
	case fund.ProjectCreated:
		return p.handleCreated(e)
	case fund.ProjectFunded:
		return p.handleFunded(e)
	case fund.ProjectEnded:
		return p.handleEnded(e)
	default:
		logger.Warn("Unknown notification type: %s", n.EventType())
		return nil
	}
}

func (p *ProjectProcessor) handleCreated(e fund.ProjectCreated) error {
	tx := p.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := p.recordEvent(tx, e.ProjectID, e); err != nil {
		tx.Rollback()
		return err
	}

	project := model.ProjectModel{
		Id:       e.ProjectID,
		Owner:    e.Owner,
		Goal:     e.Goal,
		Deadline: e.Deadline,
		Status:   model.ProjectStatusActive,
	}
	if err := tx.Create(&project).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create project projection %d: %w", e.ProjectID, err)
	}

	return tx.Commit().Error
}

// handleFunded 出资与撤资共用 ProjectFunded 通知：
// 撤资只可能发生在失败关闭之后，按投影状态区分两种含义。
func (p *ProjectProcessor) handleFunded(e fund.ProjectFunded) error {
	var project model.ProjectModel
	if err := p.db.First(&project, e.ProjectID).Error; err != nil {
		return fmt.Errorf("project projection %d not found: %w", e.ProjectID, err)
	}

	tx := p.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := p.recordEvent(tx, e.ProjectID, e); err != nil {
		tx.Rollback()
		return err
	}

	if project.Status == model.ProjectStatusFailed {
		// 撤资：留痕并核减投影金额
		refund := model.RefundRecordModel{
			ProjectId: e.ProjectID,
			Address:   e.Contributor,
			Amount:    e.Amount,
			Status:    model.RefundStatusSuccess,
		}
		if err := tx.Create(&refund).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create refund record: %w", err)
		}
		if err := tx.Model(&project).
			Update("amount_raised", gorm.Expr("amount_raised - ?", e.Amount)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to decrease amount raised: %w", err)
		}
	} else {
		record := model.ContributeRecordModel{
			ProjectId: e.ProjectID,
			Address:   e.Contributor,
			Amount:    e.Amount,
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create contribute record: %w", err)
		}
		if err := tx.Model(&project).
			Update("amount_raised", gorm.Expr("amount_raised + ?", e.Amount)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to increase amount raised: %w", err)
		}
	}

	return tx.Commit().Error
}

func (p *ProjectProcessor) handleEnded(e fund.ProjectEnded) error {
	var project model.ProjectModel
	if err := p.db.First(&project, e.ProjectID).Error; err != nil {
		return fmt.Errorf("project projection %d not found: %w", e.ProjectID, err)
	}

	tx := p.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := p.recordEvent(tx, e.ProjectID, e); err != nil {
		tx.Rollback()
		return err
	}

	status := model.ProjectStatusFailed
	if e.Succeeded {
		status = model.ProjectStatusSucceeded
	}
	if err := tx.Model(&project).Update("status", status).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update project status: %w", err)
	}

	if e.Succeeded {
		fee := fund.ComputeFee(project.AmountRaised, p.fee.Rate, p.fee.ScaleFactor)
		settlement := model.SettlementRecordModel{
			ProjectId:      e.ProjectID,
			TotalAmount:    project.AmountRaised,
			PlatformFee:    fee,
			OwnerAmount:    project.AmountRaised - fee,
			SettlementTime: time.Now(),
		}
		if err := tx.Create(&settlement).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create settlement record: %w", err)
		}
	}

	return tx.Commit().Error
}

// recordEvent 把通知负载落入事件表
func (p *ProjectProcessor) recordEvent(tx *gorm.DB, projectID int64, n fund.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", n.EventType(), err)
	}

	record := model.EventModel{
		ProjectId: projectID,
		EventType: n.EventType(),
		Data:      string(data),
	}
	if err := tx.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record %s event: %w", n.EventType(), err)
	}
	return nil
}
