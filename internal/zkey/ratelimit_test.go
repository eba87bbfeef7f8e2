package zkey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterBurstAndRefill(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLimiter(3)
	l.now = func() time.Time { return clock }

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("uid-1"))
	}
	assert.False(t, l.Allow("uid-1"))
	assert.True(t, l.Allow("uid-2"), "keys are independent")

	clock = clock.Add(20 * time.Second)
	assert.True(t, l.Allow("uid-1"))
}

func TestLimiterSweep(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLimiter(5)
	l.now = func() time.Time { return clock }

	l.Allow("a")
	clock = clock.Add(10 * time.Minute)
	l.Allow("b")
	clock = clock.Add(10 * time.Minute)
	l.Sweep()

	assert.Equal(t, 1, l.Len())
}
