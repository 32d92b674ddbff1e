package task

import (
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"github.com/blues/esl/internal/config"
	"github.com/blues/esl/internal/fund"
	"github.com/blues/esl/internal/logger"
)

// Job 定时任务接口
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	service   *fund.Service
	token     fund.TokenPort
	config    *config.Config
}

// NewManager 创建任务管理器
func NewManager(db *gorm.DB, service *fund.Service, token fund.TokenPort, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		db:        db,
		service:   service,
		token:     token,
		config:    cfg,
	}
}

// Start 启动任务管理器
func Start(db *gorm.DB, service *fund.Service, token fund.TokenPort, cfg *config.Config) *Manager {
	manager := NewManager(db, service, token, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	m.register(NewProjectStatusJob(m.db, m.config))
	m.register(NewCustodyAuditJob(m.service, m.token, m.config))
}

func (m *Manager) register(job Job) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
