package fund

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testToken 核心测试用的代币端口替身
type testToken struct {
	balances      map[string]int64
	failIn        bool
	failOut       bool
	failOutAt     int // 第N次 TransferOut 失败（1-based），0表示不启用
	outCalls      int
	onTransferOut func(from, to string, amount int64)
}

func newTestToken() *testToken {
	return &testToken{balances: make(map[string]int64)}
}

func (tk *testToken) TransferIn(from, to string, amount int64) error {
	if tk.failIn {
		return errors.New("transfer rejected")
	}
	return tk.move(from, to, amount)
}

func (tk *testToken) TransferOut(from, to string, amount int64) error {
	tk.outCalls++
	if tk.failOut || (tk.failOutAt > 0 && tk.outCalls == tk.failOutAt) {
		return errors.New("transfer rejected")
	}
	if tk.onTransferOut != nil {
		tk.onTransferOut(from, to, amount)
	}
	return tk.move(from, to, amount)
}

func (tk *testToken) BalanceOf(account string) (int64, error) {
	return tk.balances[account], nil
}

func (tk *testToken) move(from, to string, amount int64) error {
	if amount == 0 {
		return nil
	}
	if tk.balances[from] < amount {
		return fmt.Errorf("insufficient balance for %s", from)
	}
	tk.balances[from] -= amount
	tk.balances[to] += amount
	return nil
}

// captureNotifier 记录发出的通知
type captureNotifier struct {
	events []Notification
}

func (c *captureNotifier) Notify(n Notification) {
	c.events = append(c.events, n)
}

// newTestService 返回固定时钟的控制器，setNow 用于推进时间
func newTestService(t *testing.T, tk TokenPort, notifier Notifier) (*Service, func(time.Time)) {
	t.Helper()
	svc, err := NewService(Config{
		FeeRate:        1,
		FeeScaleFactor: 100,
		FeeRecipient:   "platform",
		CustodyAccount: "custody",
	}, tk, notifier)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	current := baseTime
	svc.now = func() time.Time { return current }
	return svc, func(at time.Time) { current = at }
}

func TestNewServiceConfigValidation(t *testing.T) {
	if _, err := NewService(Config{FeeRate: 1, FeeScaleFactor: 0}, newTestToken(), nil); err == nil {
		t.Error("zero scale factor must be rejected")
	}
	if _, err := NewService(Config{FeeRate: 1, FeeScaleFactor: -5}, newTestToken(), nil); err == nil {
		t.Error("negative scale factor must be rejected")
	}
	if _, err := NewService(Config{FeeRate: -1, FeeScaleFactor: 100}, newTestToken(), nil); err == nil {
		t.Error("negative fee rate must be rejected")
	}
}

func TestCreateProject(t *testing.T) {
	notifier := &captureNotifier{}
	svc, _ := newTestService(t, newTestToken(), notifier)
	deadline := baseTime.Add(24 * time.Hour)

	id, err := svc.CreateProject("alice", 1500, deadline)
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if id != 1 {
		t.Errorf("project id = %d, want 1", id)
	}

	project, ok := svc.GetProject(id)
	if !ok {
		t.Fatal("GetProject returned not found")
	}
	if project.AmountRaised != 0 || project.Ended || project.Succeeded {
		t.Errorf("new project state = %+v, want zero raised and open", project)
	}

	if len(notifier.events) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifier.events))
	}
	created, ok := notifier.events[0].(ProjectCreated)
	if !ok {
		t.Fatalf("notification type = %T, want ProjectCreated", notifier.events[0])
	}
	if created.ProjectID != 1 || created.Owner != "alice" || created.Goal != 1500 || !created.Deadline.Equal(deadline) {
		t.Errorf("unexpected ProjectCreated payload: %+v", created)
	}
}

func TestCreateProjectValidationDoesNotAllocate(t *testing.T) {
	notifier := &captureNotifier{}
	svc, _ := newTestService(t, newTestToken(), notifier)

	if _, err := svc.CreateProject("alice", 0, baseTime.Add(time.Hour)); !errors.Is(err, ErrInvalidGoal) {
		t.Errorf("err = %v, want ErrInvalidGoal", err)
	}
	if _, err := svc.CreateProject("alice", 100, baseTime); !errors.Is(err, ErrInvalidDeadline) {
		t.Errorf("err = %v, want ErrInvalidDeadline", err)
	}

	if svc.Count() != 0 {
		t.Errorf("Count() = %d after failed creations, want 0", svc.Count())
	}
	if len(notifier.events) != 0 {
		t.Errorf("failed creation emitted %d notifications, want 0", len(notifier.events))
	}
}

func TestFundProject(t *testing.T) {
	tk := newTestToken()
	tk.balances["bob"] = 1000
	tk.balances["john"] = 1000
	notifier := &captureNotifier{}
	svc, _ := newTestService(t, tk, notifier)

	id, _ := svc.CreateProject("alice", 1500, baseTime.Add(24*time.Hour))

	if err := svc.FundProject("bob", id, 600); err != nil {
		t.Fatalf("FundProject failed: %v", err)
	}
	if err := svc.FundProject("bob", id, 300); err != nil {
		t.Fatalf("second FundProject failed: %v", err)
	}
	if err := svc.FundProject("john", id, 500); err != nil {
		t.Fatalf("FundProject by john failed: %v", err)
	}

	// 出资累加
	if got := svc.GetContribution(id, "bob"); got != 900 {
		t.Errorf("bob contribution = %d, want 900", got)
	}
	if got := svc.GetContribution(id, "john"); got != 500 {
		t.Errorf("john contribution = %d, want 500", got)
	}

	project, _ := svc.GetProject(id)
	if project.AmountRaised != 1400 {
		t.Errorf("amountRaised = %d, want 1400", project.AmountRaised)
	}

	// 代币进入托管账户
	if tk.balances["custody"] != 1400 {
		t.Errorf("custody balance = %d, want 1400", tk.balances["custody"])
	}
	if tk.balances["bob"] != 100 {
		t.Errorf("bob balance = %d, want 100", tk.balances["bob"])
	}

	funded, ok := notifier.events[1].(ProjectFunded)
	if !ok || funded.ProjectID != id || funded.Contributor != "bob" || funded.Amount != 600 {
		t.Errorf("unexpected ProjectFunded payload: %+v", notifier.events[1])
	}
}

func TestFundProjectValidation(t *testing.T) {
	tk := newTestToken()
	tk.balances["bob"] = 1000
	svc, setNow := newTestService(t, tk, nil)

	deadline := baseTime.Add(24 * time.Hour)
	id, _ := svc.CreateProject("alice", 1500, deadline)

	if err := svc.FundProject("bob", 0, 100); !errors.Is(err, ErrInvalidProjectID) {
		t.Errorf("id=0: err = %v, want ErrInvalidProjectID", err)
	}
	if err := svc.FundProject("bob", 2, 100); !errors.Is(err, ErrInvalidProjectID) {
		t.Errorf("id=2: err = %v, want ErrInvalidProjectID", err)
	}
	if err := svc.FundProject("bob", id, 0); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("amount=0: err = %v, want ErrInvalidAmount", err)
	}
	if err := svc.FundProject("bob", id, -50); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("amount<0: err = %v, want ErrInvalidAmount", err)
	}

	// 截止时刻即过期
	setNow(deadline)
	if err := svc.FundProject("bob", id, 100); !errors.Is(err, ErrDeadlineAlreadyPassed) {
		t.Errorf("at deadline: err = %v, want ErrDeadlineAlreadyPassed", err)
	}

	project, _ := svc.GetProject(id)
	if project.AmountRaised != 0 || svc.GetContribution(id, "bob") != 0 || tk.balances["bob"] != 1000 {
		t.Error("failed funding attempts must not change any state")
	}
}

func TestFundProjectTransferRejected(t *testing.T) {
	tk := newTestToken()
	tk.failIn = true
	notifier := &captureNotifier{}
	svc, _ := newTestService(t, tk, notifier)

	id, _ := svc.CreateProject("alice", 1500, baseTime.Add(time.Hour))

	err := svc.FundProject("bob", id, 100)
	if !IsTransferError(err) {
		t.Fatalf("err = %v, want transfer error", err)
	}

	project, _ := svc.GetProject(id)
	if project.AmountRaised != 0 || svc.GetContribution(id, "bob") != 0 {
		t.Error("rejected transfer must leave ledger and project untouched")
	}
	if len(notifier.events) != 1 { // 只有创建通知
		t.Errorf("got %d notifications, want 1", len(notifier.events))
	}
}

func TestEndProjectSuccess(t *testing.T) {
	tk := newTestToken()
	tk.balances["bob"] = 1000
	tk.balances["john"] = 1000
	notifier := &captureNotifier{}
	svc, setNow := newTestService(t, tk, notifier)

	deadline := baseTime.Add(24 * time.Hour)
	id, _ := svc.CreateProject("alice", 1500, deadline)
	svc.FundProject("bob", id, 1000)
	svc.FundProject("john", id, 1000)

	setNow(deadline)
	if err := svc.EndProject("alice", id); err != nil {
		t.Fatalf("EndProject failed: %v", err)
	}

	project, _ := svc.GetProject(id)
	if !project.Ended || !project.Succeeded {
		t.Errorf("project state = %+v, want ended and succeeded", project)
	}

	// 费率 1/100：2000 募集 → 平台 20，所有者 1980
	if tk.balances["platform"] != 20 {
		t.Errorf("platform balance = %d, want 20", tk.balances["platform"])
	}
	if tk.balances["alice"] != 1980 {
		t.Errorf("alice balance = %d, want 1980", tk.balances["alice"])
	}
	if tk.balances["custody"] != 0 {
		t.Errorf("custody balance = %d, want 0", tk.balances["custody"])
	}

	ended, ok := notifier.events[len(notifier.events)-1].(ProjectEnded)
	if !ok || ended.ProjectID != id || !ended.Succeeded {
		t.Errorf("unexpected ProjectEnded payload: %+v", notifier.events[len(notifier.events)-1])
	}

	// 成功项目禁止撤资
	if err := svc.WithdrawFunds("bob", id); !errors.Is(err, ErrCannotWithdrawFromSuccessfulProject) {
		t.Errorf("withdraw after success: err = %v, want ErrCannotWithdrawFromSuccessfulProject", err)
	}
}

func TestEndProjectAuthAndTiming(t *testing.T) {
	tk := newTestToken()
	tk.balances["bob"] = 1000
	svc, setNow := newTestService(t, tk, nil)

	deadline := baseTime.Add(24 * time.Hour)
	id, _ := svc.CreateProject("alice", 1500, deadline)
	svc.FundProject("bob", id, 1000)

	if err := svc.EndProject("alice", 99); !errors.Is(err, ErrInvalidProjectID) {
		t.Errorf("unknown id: err = %v, want ErrInvalidProjectID", err)
	}
	if err := svc.EndProject("bob", id); !errors.Is(err, ErrCallerNotProjectOwner) {
		t.Errorf("wrong caller: err = %v, want ErrCallerNotProjectOwner", err)
	}
	if err := svc.EndProject("alice", id); !errors.Is(err, ErrDeadlineNotPassedYet) {
		t.Errorf("before deadline: err = %v, want ErrDeadlineNotPassedYet", err)
	}

	setNow(deadline.Add(time.Minute))
	if err := svc.EndProject("alice", id); err != nil {
		t.Fatalf("EndProject failed: %v", err)
	}
	if err := svc.EndProject("alice", id); !errors.Is(err, ErrProjectAlreadyEnded) {
		t.Errorf("second end: err = %v, want ErrProjectAlreadyEnded", err)
	}
}

func TestEndProjectOwnerLegRejected(t *testing.T) {
	tk := newTestToken()
	tk.balances["bob"] = 2000
	svc, setNow := newTestService(t, tk, nil)

	deadline := baseTime.Add(time.Hour)
	id, _ := svc.CreateProject("alice", 1500, deadline)
	svc.FundProject("bob", id, 2000)

	// 手续费划转成功后所有者划转失败，手续费必须退回托管账户
	tk.failOutAt = 2
	setNow(deadline)
	err := svc.EndProject("alice", id)
	if !IsTransferError(err) {
		t.Fatalf("err = %v, want transfer error", err)
	}

	project, _ := svc.GetProject(id)
	if project.Ended || project.Succeeded {
		t.Errorf("failed end must not commit state: %+v", project)
	}
	if tk.balances["custody"] != 2000 || tk.balances["platform"] != 0 {
		t.Errorf("fee not compensated: custody=%d platform=%d", tk.balances["custody"], tk.balances["platform"])
	}

	// 端口恢复后可以重新关闭
	tk.failOutAt = 0
	if err := svc.EndProject("alice", id); err != nil {
		t.Fatalf("retry EndProject failed: %v", err)
	}
	if tk.balances["platform"] != 20 || tk.balances["alice"] != 1980 {
		t.Errorf("retry settlement wrong: platform=%d alice=%d", tk.balances["platform"], tk.balances["alice"])
	}
}

func TestWithdrawFromFailedProject(t *testing.T) {
	tk := newTestToken()
	tk.balances["bob"] = 1000
	notifier := &captureNotifier{}
	svc, setNow := newTestService(t, tk, notifier)

	deadline := baseTime.Add(time.Hour)
	id, _ := svc.CreateProject("alice", 1500, deadline)
	svc.FundProject("bob", id, 1000)

	setNow(deadline)
	if err := svc.EndProject("alice", id); err != nil {
		t.Fatalf("EndProject failed: %v", err)
	}

	project, _ := svc.GetProject(id)
	if !project.Ended || project.Succeeded {
		t.Errorf("project state = %+v, want ended and not succeeded", project)
	}
	// 未达标关闭不动资金
	if tk.balances["custody"] != 1000 {
		t.Errorf("custody balance = %d, want 1000", tk.balances["custody"])
	}

	if err := svc.WithdrawFunds("bob", id); err != nil {
		t.Fatalf("WithdrawFunds failed: %v", err)
	}
	if tk.balances["bob"] != 1000 {
		t.Errorf("bob balance = %d, want 1000", tk.balances["bob"])
	}
	if got := svc.GetContribution(id, "bob"); got != 0 {
		t.Errorf("contribution after withdrawal = %d, want 0", got)
	}
	project, _ = svc.GetProject(id)
	if project.AmountRaised != 0 {
		t.Errorf("amountRaised after withdrawal = %d, want 0", project.AmountRaised)
	}

	// 撤资通知携带实际退回金额
	funded, ok := notifier.events[len(notifier.events)-1].(ProjectFunded)
	if !ok || funded.Contributor != "bob" || funded.Amount != 1000 {
		t.Errorf("unexpected withdrawal notification: %+v", notifier.events[len(notifier.events)-1])
	}
}

func TestWithdrawWithZeroEntry(t *testing.T) {
	tk := newTestToken()
	tk.balances["bob"] = 1000
	notifier := &captureNotifier{}
	svc, setNow := newTestService(t, tk, notifier)

	deadline := baseTime.Add(time.Hour)
	id, _ := svc.CreateProject("alice", 1500, deadline)
	svc.FundProject("bob", id, 1000)
	setNow(deadline)
	svc.EndProject("alice", id)

	// 没出过资的调用方不报错，划转金额为0
	if err := svc.WithdrawFunds("stranger", id); err != nil {
		t.Fatalf("zero-entry withdrawal failed: %v", err)
	}
	if tk.balances["custody"] != 1000 {
		t.Errorf("custody balance = %d, want 1000", tk.balances["custody"])
	}
	funded, ok := notifier.events[len(notifier.events)-1].(ProjectFunded)
	if !ok || funded.Contributor != "stranger" || funded.Amount != 0 {
		t.Errorf("unexpected zero withdrawal notification: %+v", notifier.events[len(notifier.events)-1])
	}
}

func TestWithdrawStateErrors(t *testing.T) {
	tk := newTestToken()
	tk.balances["bob"] = 1000
	svc, _ := newTestService(t, tk, nil)

	id, _ := svc.CreateProject("alice", 1500, baseTime.Add(time.Hour))
	svc.FundProject("bob", id, 1000)

	if err := svc.WithdrawFunds("bob", 42); !errors.Is(err, ErrInvalidProjectID) {
		t.Errorf("unknown id: err = %v, want ErrInvalidProjectID", err)
	}
	if err := svc.WithdrawFunds("bob", id); !errors.Is(err, ErrProjectNotEndedYet) {
		t.Errorf("open project: err = %v, want ErrProjectNotEndedYet", err)
	}
}

func TestWithdrawTransferRejectedRestoresEntry(t *testing.T) {
	tk := newTestToken()
	tk.balances["bob"] = 1000
	svc, setNow := newTestService(t, tk, nil)

	deadline := baseTime.Add(time.Hour)
	id, _ := svc.CreateProject("alice", 1500, deadline)
	svc.FundProject("bob", id, 1000)
	setNow(deadline)
	svc.EndProject("alice", id)

	tk.failOut = true
	err := svc.WithdrawFunds("bob", id)
	if !IsTransferError(err) {
		t.Fatalf("err = %v, want transfer error", err)
	}

	// 条目在同一把锁内恢复，重试可以成功
	if got := svc.GetContribution(id, "bob"); got != 1000 {
		t.Errorf("contribution after rejected withdrawal = %d, want 1000", got)
	}
	project, _ := svc.GetProject(id)
	if project.AmountRaised != 1000 {
		t.Errorf("amountRaised after rejected withdrawal = %d, want 1000", project.AmountRaised)
	}

	tk.failOut = false
	if err := svc.WithdrawFunds("bob", id); err != nil {
		t.Fatalf("retry withdrawal failed: %v", err)
	}
	if tk.balances["bob"] != 1000 {
		t.Errorf("bob balance after retry = %d, want 1000", tk.balances["bob"])
	}
}

func TestWithdrawDebitsLedgerBeforeTransferOut(t *testing.T) {
	tk := newTestToken()
	tk.balances["bob"] = 1000
	svc, setNow := newTestService(t, tk, nil)

	deadline := baseTime.Add(time.Hour)
	id, _ := svc.CreateProject("alice", 1500, deadline)
	svc.FundProject("bob", id, 1000)
	setNow(deadline)
	svc.EndProject("alice", id)

	// 外部划转回调发生时台账必须已经清零
	probed := false
	tk.onTransferOut = func(from, to string, amount int64) {
		probed = true
		if got := svc.ledger.Get(id, "bob"); got != 0 {
			t.Errorf("ledger entry during TransferOut = %d, want 0", got)
		}
	}
	if err := svc.WithdrawFunds("bob", id); err != nil {
		t.Fatalf("WithdrawFunds failed: %v", err)
	}
	if !probed {
		t.Fatal("TransferOut was not invoked")
	}
}

func TestOutstandingLiability(t *testing.T) {
	tk := newTestToken()
	tk.balances["bob"] = 3000
	svc, setNow := newTestService(t, tk, nil)

	deadline := baseTime.Add(time.Hour)
	open, _ := svc.CreateProject("alice", 5000, deadline)
	failed, _ := svc.CreateProject("carol", 2000, deadline)
	won, _ := svc.CreateProject("dave", 1000, deadline)

	svc.FundProject("bob", open, 500)
	svc.FundProject("bob", failed, 1000)
	svc.FundProject("bob", won, 1000)

	setNow(deadline)
	svc.EndProject("carol", failed)
	svc.EndProject("dave", won)
	setNow(baseTime)

	// 成功项目已分配不计负债；开放与失败项目按募集额计
	if got := svc.OutstandingLiability(); got != 1500 {
		t.Errorf("OutstandingLiability() = %d, want 1500", got)
	}

	setNow(deadline)
	svc.WithdrawFunds("bob", failed)
	if got := svc.OutstandingLiability(); got != 500 {
		t.Errorf("OutstandingLiability() after refund = %d, want 500", got)
	}
}
