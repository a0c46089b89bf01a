package derive

import "fmt"

// PoolState is the recomputed view of one resource pool (stamina, mana).
// Invariants after recompute: 0 <= Current <= Max, 0 <= Temp <= RingCap,
// and Temp > 0 only when Max > 0 and Current >= Max.
type PoolState struct {
	Current int
	Max     int
	Temp    int

	// RingCap is half of Max, the ceiling for Temp. Each wheel ring
	// represents 50% of the pool.
	RingCap int

	// TempAllowed reports whether the temp control is live
	TempAllowed bool

	// P1 and P2 are the fill ratios of the two half-rings, T the temp
	// ring ratio, all in [0, 1]
	P1 float64
	P2 float64
	T  float64
}

// RecomputePool derives a pool state from raw current/max/temp inputs
func RecomputePool(current, max, temp int) PoolState {
	if max < 0 {
		max = 0
	}
	ringCap := max / 2

	cur := clamp(current, 0, max)

	// Temp only accumulates on a full pool.
	tempAllowed := max > 0 && cur >= max
	t := 0
	if tempAllowed {
		t = clamp(temp, 0, ringCap)
	}

	state := PoolState{
		Current:     cur,
		Max:         max,
		Temp:        t,
		RingCap:     ringCap,
		TempAllowed: tempAllowed,
	}
	if ringCap > 0 {
		state.P1 = clamp01(float64(cur) / float64(ringCap))
		state.P2 = clamp01(float64(cur-ringCap) / float64(ringCap))
		state.T = clamp01(float64(t) / float64(ringCap))
	}
	return state
}

// String renders the wheel caption, e.g. "7/10" or "10/10 +3"
func (p PoolState) String() string {
	if p.Temp > 0 {
		return fmt.Sprintf("%d/%d +%d", p.Current, p.Max, p.Temp)
	}
	return fmt.Sprintf("%d/%d", p.Current, p.Max)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
