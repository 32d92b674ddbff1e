package fund

import (
	"testing"
)

func TestLedgerRecordAccumulates(t *testing.T) {
	ledger := NewLedger()

	ledger.Record(1, "bob", 100)
	ledger.Record(1, "bob", 250)
	ledger.Record(1, "john", 50)
	ledger.Record(2, "bob", 999)

	if got := ledger.Get(1, "bob"); got != 350 {
		t.Errorf("Get(1, bob) = %d, want 350", got)
	}
	if got := ledger.Get(1, "john"); got != 50 {
		t.Errorf("Get(1, john) = %d, want 50", got)
	}
	if got := ledger.Get(2, "bob"); got != 999 {
		t.Errorf("Get(2, bob) = %d, want 999", got)
	}
}

func TestLedgerGetUnknownEntry(t *testing.T) {
	ledger := NewLedger()
	if got := ledger.Get(1, "nobody"); got != 0 {
		t.Errorf("Get on empty ledger = %d, want 0", got)
	}
}

func TestLedgerClear(t *testing.T) {
	ledger := NewLedger()
	ledger.Record(1, "bob", 400)

	if prev := ledger.Clear(1, "bob"); prev != 400 {
		t.Errorf("Clear returned %d, want 400", prev)
	}
	if got := ledger.Get(1, "bob"); got != 0 {
		t.Errorf("entry after Clear = %d, want 0", got)
	}

	// 重复清零幂等
	if prev := ledger.Clear(1, "bob"); prev != 0 {
		t.Errorf("second Clear returned %d, want 0", prev)
	}
}
