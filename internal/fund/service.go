package fund

import (
	"errors"
	"sync"
	"time"

	"github.com/blues/esl/internal/logger"
)

// Config 核心配置，初始化后不可变
type Config struct {
	FeeRate        int64  // 手续费率分子
	FeeScaleFactor int64  // 手续费率分母，必须为正
	FeeRecipient   string // 平台手续费收款账户
	CustodyAccount string // 托管账户，募集资金在分配前由它持有
}

// Service 生命周期控制器，编排四个核心操作并执行状态机约束。
// 所有操作通过互斥锁严格串行：每次调用要么完整提交要么完整失败，
// 不存在操作中途可被观察到的中间状态。
type Service struct {
	mu     sync.Mutex
	cfg    Config
	store  *Store
	ledger *Ledger
	token  TokenPort
	notify Notifier
	now    func() time.Time
}

// NewService 创建生命周期控制器。notifier 可为 nil（不发通知）。
func NewService(cfg Config, token TokenPort, notifier Notifier) (*Service, error) {
	if cfg.FeeScaleFactor <= 0 {
		return nil, errors.New("fee scale factor must be positive")
	}
	if cfg.FeeRate < 0 {
		return nil, errors.New("fee rate must not be negative")
	}
	return &Service{
		cfg:    cfg,
		store:  NewStore(),
		ledger: NewLedger(),
		token:  token,
		notify: notifier,
		now:    time.Now,
	}, nil
}

// CreateProject 创建项目，caller 成为项目所有者
func (s *Service) CreateProject(caller string, goal int64, deadline time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.store.CreateProject(caller, goal, deadline, s.now())
	if err != nil {
		return 0, err
	}

	s.emit(ProjectCreated{ProjectID: id, Owner: caller, Goal: goal, Deadline: deadline})
	return id, nil
}

// FundProject 向开放中的项目出资。先校验后划转：
// 端口拒绝划转时台账与项目状态均不变更。
func (s *Service) FundProject(caller string, projectID, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.store.Get(projectID)
	if !ok {
		return ErrInvalidProjectID
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if !s.now().Before(project.Deadline) {
		return ErrDeadlineAlreadyPassed
	}

	if err := s.token.TransferIn(caller, s.cfg.CustodyAccount, amount); err != nil {
		return &TransferError{Op: "transfer_in", Err: err}
	}

	s.ledger.Record(projectID, caller, amount)
	project.AmountRaised += amount

	s.emit(ProjectFunded{ProjectID: projectID, Contributor: caller, Amount: amount})
	return nil
}

// EndProject 关闭项目，只能由项目所有者在截止时间后调用一次。
// 达标时托管资金在同一原子步骤内分配给平台与项目所有者；
// 未达标时资金留在托管账户等待出资人各自撤回。
func (s *Service) EndProject(caller string, projectID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.store.Get(projectID)
	if !ok {
		return ErrInvalidProjectID
	}
	if caller != project.Owner {
		return ErrCallerNotProjectOwner
	}
	if s.now().Before(project.Deadline) {
		return ErrDeadlineNotPassedYet
	}
	if project.Ended {
		return ErrProjectAlreadyEnded
	}

	succeeded := project.AmountRaised >= project.Goal
	if succeeded {
		fee := ComputeFee(project.AmountRaised, s.cfg.FeeRate, s.cfg.FeeScaleFactor)
		if err := s.token.TransferOut(s.cfg.CustodyAccount, s.cfg.FeeRecipient, fee); err != nil {
			return &TransferError{Op: "transfer_out", Err: err}
		}
		if err := s.token.TransferOut(s.cfg.CustodyAccount, project.Owner, project.AmountRaised-fee); err != nil {
			// 手续费已出账，退回托管账户以保持无部分变更
			if cerr := s.token.TransferIn(s.cfg.FeeRecipient, s.cfg.CustodyAccount, fee); cerr != nil {
				logger.Error("Failed to return fee to custody for project %d: %v", projectID, cerr)
			}
			return &TransferError{Op: "transfer_out", Err: err}
		}
	}

	project.Ended = true
	project.Succeeded = succeeded

	s.emit(ProjectEnded{ProjectID: projectID, Succeeded: succeeded})
	return nil
}

// WithdrawFunds 出资人从失败的项目中撤回自己的出资。
// 台账先清零再调用外部划转（托管借记先于外部调用，硬性不变式），
// 端口拒绝时在同一把锁内恢复条目，对外不暴露任何中间状态。
// 无出资的调用方不报错，划转金额为0。
func (s *Service) WithdrawFunds(caller string, projectID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.store.Get(projectID)
	if !ok {
		return ErrInvalidProjectID
	}
	if !project.Ended {
		return ErrProjectNotEndedYet
	}
	if project.Succeeded {
		return ErrCannotWithdrawFromSuccessfulProject
	}

	amount := s.ledger.Clear(projectID, caller)
	if err := s.token.TransferOut(s.cfg.CustodyAccount, caller, amount); err != nil {
		if amount > 0 {
			s.ledger.Record(projectID, caller, amount)
		}
		return &TransferError{Op: "transfer_out", Err: err}
	}
	project.AmountRaised -= amount

	s.emit(ProjectFunded{ProjectID: projectID, Contributor: caller, Amount: amount})
	return nil
}

// GetProject 查询项目快照，任意ID均可查询，不存在返回 false
func (s *Service) GetProject(projectID int64) (Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.store.Get(projectID)
	if !ok {
		return Project{}, false
	}
	return *project, true
}

// GetContribution 查询出资人在项目中的未退出资金额
func (s *Service) GetContribution(projectID int64, contributor string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Get(projectID, contributor)
}

// Count 已创建项目数量
func (s *Service) Count() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Count()
}

// OutstandingLiability 托管账户当前应覆盖的负债总额：
// 成功关闭的项目资金已分配，不计入；其余项目按 AmountRaised 累计。
func (s *Service) OutstandingLiability() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, project := range s.store.projects {
		if project.Ended && project.Succeeded {
			continue
		}
		total += project.AmountRaised
	}
	return total
}

func (s *Service) emit(n Notification) {
	if s.notify != nil {
		s.notify.Notify(n)
	}
}
