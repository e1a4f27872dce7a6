package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactory_SameSeedSameSequence(t *testing.T) {
	a := New(42).R(Transactions)
	b := New(42).R(Transactions)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}
}

func TestFactory_StreamsAreIndependent(t *testing.T) {
	f := New(42)
	tx := f.R(Transactions)
	alerts := f.R(Alerts)

	assert.NotEqual(t, tx.Int63(), alerts.Int63())
}

func TestFactory_StreamIsCached(t *testing.T) {
	f := New(7)
	assert.Same(t, f.R(Overview), f.R(Overview))
}

func TestFactory_ZeroSeedUsesClock(t *testing.T) {
	f := New(0)
	assert.NotZero(t, f.Seed())
}

func TestBetween_StaysInRange(t *testing.T) {
	r := New(1).R("between")
	for i := 0; i < 1000; i++ {
		v := Between(r, 15, 40)
		assert.GreaterOrEqual(t, v, 15.0)
		assert.Less(t, v, 40.0)
	}
}

func TestChance_Extremes(t *testing.T) {
	r := New(1).R("chance")
	for i := 0; i < 100; i++ {
		assert.False(t, Chance(r, 0))
		assert.True(t, Chance(r, 1))
	}
}
