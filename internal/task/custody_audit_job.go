package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/blues/esl/internal/config"
	"github.com/blues/esl/internal/fund"
	"github.com/blues/esl/internal/logger"
)

// CustodyAuditJob 托管对账任务：核对托管账户余额是否覆盖
// 未结算负债（开放中与失败项目的未退出资总额）。
// 余额不足意味着资金被绕过核心操作挪动，必须告警。
type CustodyAuditJob struct {
	service *fund.Service
	token   fund.TokenPort
	custody string
}

// NewCustodyAuditJob 创建托管对账任务
func NewCustodyAuditJob(service *fund.Service, token fund.TokenPort, cfg *config.Config) *CustodyAuditJob {
	return &CustodyAuditJob{
		service: service,
		token:   token,
		custody: cfg.Fee.Custody,
	}
}

// GetName 获取任务名称
func (j *CustodyAuditJob) GetName() string {
	return "custody_auditor"
}

// GetSchedule 获取调度配置
func (j *CustodyAuditJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Minute * 5)
}

// Execute 执行任务
func (j *CustodyAuditJob) Execute() {
	liability := j.service.OutstandingLiability()

	balance, err := j.token.BalanceOf(j.custody)
	if err != nil {
		logger.Error("Custody audit failed to query balance: %v", err)
		return
	}

	if balance < liability {
		logger.Error("Custody balance %d does not cover outstanding liability %d", balance, liability)
		return
	}

	logger.Debug("Custody audit ok: balance %d, outstanding liability %d", balance, liability)
}
