package fund

// ComputeFee 计算平台手续费：floor(amountRaised * feeRate / feeScaleFactor)。
// 整数截断，与代币最小单位一致。feeScaleFactor 必须为正，由配置层在初始化时校验。
func ComputeFee(amountRaised, feeRate, feeScaleFactor int64) int64 {
	return amountRaised * feeRate / feeScaleFactor
}
