package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputePool_ClampsCurrent(t *testing.T) {
	state := RecomputePool(15, 10, 0)
	assert.Equal(t, 10, state.Current)

	state = RecomputePool(-3, 10, 0)
	assert.Equal(t, 0, state.Current)
}

func TestRecomputePool_RingCapIsHalfMax(t *testing.T) {
	assert.Equal(t, 5, RecomputePool(0, 10, 0).RingCap)
	assert.Equal(t, 4, RecomputePool(0, 9, 0).RingCap)
	assert.Equal(t, 0, RecomputePool(0, 1, 0).RingCap)
}

func TestRecomputePool_TempOnlyOnFullPool(t *testing.T) {
	// Not full: temp zeroes out
	state := RecomputePool(7, 10, 3)
	assert.False(t, state.TempAllowed)
	assert.Equal(t, 0, state.Temp)

	// Full: temp lives, capped at the ring cap
	state = RecomputePool(10, 10, 3)
	assert.True(t, state.TempAllowed)
	assert.Equal(t, 3, state.Temp)

	state = RecomputePool(10, 10, 9)
	assert.Equal(t, 5, state.Temp)
}

func TestRecomputePool_ZeroMax(t *testing.T) {
	state := RecomputePool(5, 0, 5)
	assert.Equal(t, 0, state.Current)
	assert.Equal(t, 0, state.Temp)
	assert.False(t, state.TempAllowed)
	assert.Zero(t, state.P1)
	assert.Zero(t, state.P2)
	assert.Zero(t, state.T)
}

func TestRecomputePool_NegativeMaxTreatedAsZero(t *testing.T) {
	state := RecomputePool(5, -4, 2)
	assert.Equal(t, 0, state.Max)
	assert.Equal(t, 0, state.Current)
}

func TestRecomputePool_RingRatios(t *testing.T) {
	// Half full: first ring saturated, second empty
	state := RecomputePool(5, 10, 0)
	assert.InDelta(t, 1.0, state.P1, 1e-9)
	assert.InDelta(t, 0.0, state.P2, 1e-9)

	// Three quarters: second ring half full
	state = RecomputePool(7, 10, 0)
	assert.InDelta(t, 1.0, state.P1, 1e-9)
	assert.InDelta(t, 0.4, state.P2, 1e-9)

	// Full with some temp
	state = RecomputePool(10, 10, 2)
	assert.InDelta(t, 1.0, state.P2, 1e-9)
	assert.InDelta(t, 0.4, state.T, 1e-9)
}

func TestRecomputePool_Invariants(t *testing.T) {
	// Invariants must hold across arbitrary inputs
	for _, cur := range []int{-5, 0, 3, 10, 99} {
		for _, max := range []int{-1, 0, 1, 7, 10} {
			for _, temp := range []int{-2, 0, 4, 50} {
				state := RecomputePool(cur, max, temp)
				assert.GreaterOrEqual(t, state.Current, 0)
				assert.LessOrEqual(t, state.Current, state.Max)
				assert.GreaterOrEqual(t, state.Temp, 0)
				assert.LessOrEqual(t, state.Temp, state.RingCap)
				if state.Temp > 0 {
					assert.True(t, state.TempAllowed)
					assert.Equal(t, state.Current, state.Max)
				}
			}
		}
	}
}

func TestPoolState_String(t *testing.T) {
	assert.Equal(t, "7/10", RecomputePool(7, 10, 0).String())
	assert.Equal(t, "10/10 +3", RecomputePool(10, 10, 3).String())
}
