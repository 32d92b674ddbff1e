package fund

// TokenPort 代币转账端口，由外部代币组件实现（如ERC20适配器）。
// 核心只依赖借记/贷记语义：任一调用失败即阻断触发它的操作，不重试。
type TokenPort interface {
	// TransferIn 从外部账户划转代币到托管账户
	TransferIn(from, to string, amount int64) error
	// TransferOut 从托管账户划转代币到外部账户
	TransferOut(from, to string, amount int64) error
	// BalanceOf 查询账户余额
	BalanceOf(account string) (int64, error)
}
