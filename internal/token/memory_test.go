package token

import "testing"

func TestMemoryTokenTransfer(t *testing.T) {
	tk := NewMemoryToken()
	tk.Mint("alice", 500)

	if err := tk.TransferIn("alice", "custody", 300); err != nil {
		t.Fatalf("TransferIn failed: %v", err)
	}
	if err := tk.TransferOut("custody", "bob", 200); err != nil {
		t.Fatalf("TransferOut failed: %v", err)
	}

	checks := map[string]int64{"alice": 200, "custody": 100, "bob": 200}
	for account, want := range checks {
		got, err := tk.BalanceOf(account)
		if err != nil {
			t.Fatalf("BalanceOf(%s) failed: %v", account, err)
		}
		if got != want {
			t.Errorf("BalanceOf(%s) = %d, want %d", account, got, want)
		}
	}
}

func TestMemoryTokenInsufficientBalance(t *testing.T) {
	tk := NewMemoryToken()
	tk.Mint("alice", 100)

	if err := tk.TransferIn("alice", "custody", 101); err == nil {
		t.Error("transfer exceeding balance must be rejected")
	}
	if err := tk.TransferOut("nobody", "bob", 1); err == nil {
		t.Error("transfer from unknown account must be rejected")
	}

	// 拒绝的划转不动余额
	if got, _ := tk.BalanceOf("alice"); got != 100 {
		t.Errorf("alice balance = %d, want 100", got)
	}
	if got, _ := tk.BalanceOf("custody"); got != 0 {
		t.Errorf("custody balance = %d, want 0", got)
	}
}

func TestMemoryTokenEdgeAmounts(t *testing.T) {
	tk := NewMemoryToken()

	if err := tk.TransferIn("alice", "custody", -1); err == nil {
		t.Error("negative amount must be rejected")
	}
	// 金额为0的划转直接成功，未知账户也不报错
	if err := tk.TransferOut("nobody", "bob", 0); err != nil {
		t.Errorf("zero transfer failed: %v", err)
	}
}
