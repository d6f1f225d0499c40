package life_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/LegoCylon/automagic/internal/game/life"
)

func TestGCD_ZeroIdentity_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.Uint32().Draw(rt, "a")
		assert.Equal(rt, a, life.GCD(a, 0))
	})
}

func TestGCD_Commutative_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.Uint32().Draw(rt, "a")
		b := rapid.Uint32().Draw(rt, "b")
		assert.Equal(rt, life.GCD(a, b), life.GCD(b, a))
	})
}

func TestGCD_DividesBoth_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.Uint32Range(1, math.MaxUint32).Draw(rt, "a")
		b := rapid.Uint32().Draw(rt, "b")
		g := life.GCD(a, b)
		assert.Zero(rt, a%g)
		assert.Zero(rt, b%g)
		assert.LessOrEqual(rt, g, a)
	})
}

func TestGCD_Examples(t *testing.T) {
	assert.Equal(t, 6, life.GCD(12, 18))
	assert.Equal(t, int64(1), life.GCD(int64(17), 5))
	assert.Equal(t, uint8(0), life.GCD(uint8(0), 0))
}

func TestGCDFloat(t *testing.T) {
	assert.Equal(t, 6.0, life.GCDFloat(12.0, 18.0))
	assert.Equal(t, 0.5, life.GCDFloat(1.5, 2.0))
	assert.Equal(t, float32(4), life.GCDFloat(float32(4), 0))
	assert.True(t, math.IsNaN(life.GCDFloat(math.Inf(1), 2.0)))
	assert.True(t, math.IsNaN(life.GCDFloat(3.0, math.NaN())))
}

func TestModFloat(t *testing.T) {
	assert.Equal(t, 1.5, life.ModFloat(5.5, 2.0))
	assert.Equal(t, 3, life.Mod(7, 4))
}
