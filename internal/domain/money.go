package domain

// Money is an amount in integer minor units. All internal arithmetic stays
// in minor units; decimal conversion happens only at display boundaries.
type Money int64

// HalveRoundUp returns half the amount, rounding odd minor units up so the
// 1x2 promotion never bills below half.
func (m Money) HalveRoundUp() Money {
	if m <= 0 {
		return 0
	}
	return (m + 1) / 2
}
