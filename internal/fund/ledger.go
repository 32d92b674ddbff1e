package fund

type entryKey struct {
	projectID   int64
	contributor string
}

// Ledger 出资台账：(项目, 出资人) -> 未退出资金额，
// 是每个出资人可退金额的唯一事实来源。条目永不为负。
type Ledger struct {
	entries map[entryKey]int64
}

// NewLedger 创建出资台账
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[entryKey]int64)}
}

// Record 累加出资金额，amount 必须为正（由调用方保证）
func (l *Ledger) Record(projectID int64, contributor string, amount int64) {
	l.entries[entryKey{projectID, contributor}] += amount
}

// Clear 原子读取并清零条目，返回清零前的金额。重复调用返回0。
func (l *Ledger) Clear(projectID int64, contributor string) int64 {
	key := entryKey{projectID, contributor}
	prev := l.entries[key]
	delete(l.entries, key)
	return prev
}

// Get 查询条目金额，无条目返回0
func (l *Ledger) Get(projectID int64, contributor string) int64 {
	return l.entries[entryKey{projectID, contributor}]
}
