package fund

import (
	"testing"
)

func TestComputeFee(t *testing.T) {
	tests := []struct {
		name         string
		amountRaised int64
		feeRate      int64
		feeScale     int64
		want         int64
	}{
		{"zero raised", 0, 1, 100, 0},
		{"one percent", 2000, 1, 100, 20},
		{"truncates toward zero", 199, 1, 100, 1},
		{"below one unit", 99, 1, 100, 0},
		{"zero rate", 5000, 0, 100, 0},
		{"full rate", 5000, 100, 100, 5000},
		{"odd scale", 1000, 3, 7, 428},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFee(tt.amountRaised, tt.feeRate, tt.feeScale)
			if got != tt.want {
				t.Errorf("ComputeFee(%d, %d, %d) = %d, want %d",
					tt.amountRaised, tt.feeRate, tt.feeScale, got, tt.want)
			}
		})
	}
}
