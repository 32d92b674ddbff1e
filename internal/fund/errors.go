package fund

import (
	"errors"
	"fmt"
)

// 操作错误分类，调用方通过 errors.Is 判断具体类型
var (
	// 参数校验错误
	ErrInvalidGoal      = errors.New("invalid goal")       // 目标金额必须大于0
	ErrInvalidDeadline  = errors.New("invalid deadline")   // 截止时间必须晚于当前时间
	ErrInvalidProjectID = errors.New("invalid project id") // 项目ID不在 [1, count] 范围内
	ErrInvalidAmount    = errors.New("invalid amount")     // 出资金额必须大于0

	// 生命周期状态错误
	ErrDeadlineAlreadyPassed = errors.New("deadline already passed")
	ErrDeadlineNotPassedYet  = errors.New("deadline not passed yet")
	ErrProjectAlreadyEnded   = errors.New("project already ended")
	ErrProjectNotEndedYet    = errors.New("project not ended yet")

	// 权限错误
	ErrCallerNotProjectOwner = errors.New("caller is not the project owner")

	// 资金状态错误
	ErrCannotWithdrawFromSuccessfulProject = errors.New("cannot withdraw from a successful project")
)

// TransferError 转账端口失败，整个操作原子性回绝，不落任何状态。
// 对调用方不是一类独立业务错误，但内部需要可区分以便诊断。
type TransferError struct {
	Op  string // transfer_in / transfer_out
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("token transfer failed (%s): %v", e.Op, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// IsTransferError 判断是否为转账端口失败
func IsTransferError(err error) bool {
	var te *TransferError
	return errors.As(err, &te)
}
