package token

import (
	"fmt"
	"sync"
)

// MemoryToken 进程内代币实现，用于开发模式与测试。
// 语义与链上代币一致：余额不足即拒绝，金额为0的划转直接成功。
type MemoryToken struct {
	mu       sync.Mutex
	balances map[string]int64
}

// NewMemoryToken 创建进程内代币
func NewMemoryToken() *MemoryToken {
	return &MemoryToken{balances: make(map[string]int64)}
}

// Mint 给账户铸造代币
func (t *MemoryToken) Mint(account string, amount int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[account] += amount
}

// TransferIn 实现 fund.TokenPort
func (t *MemoryToken) TransferIn(from, to string, amount int64) error {
	return t.transfer(from, to, amount)
}

// TransferOut 实现 fund.TokenPort
func (t *MemoryToken) TransferOut(from, to string, amount int64) error {
	return t.transfer(from, to, amount)
}

// BalanceOf 实现 fund.TokenPort
func (t *MemoryToken) BalanceOf(account string) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[account], nil
}

func (t *MemoryToken) transfer(from, to string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("negative transfer amount: %d", amount)
	}
	if amount == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.balances[from] < amount {
		return fmt.Errorf("insufficient balance: account %s has %d, need %d", from, t.balances[from], amount)
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}
