package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualClock_FiresInDeadlineOrder(t *testing.T) {
	clock := NewManualClock(epoch)
	var got []string

	clock.AfterFunc(300*time.Millisecond, func() { got = append(got, "c") })
	clock.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
	clock.AfterFunc(100*time.Millisecond, func() { got = append(got, "b") })

	clock.Advance(99 * time.Millisecond)
	assert.Empty(t, got)

	clock.Advance(1 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got, "ties fire in creation order")

	clock.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, epoch.Add(1100*time.Millisecond), clock.Now())
}

func TestManualClock_NestedTimersWithinWindow(t *testing.T) {
	clock := NewManualClock(epoch)
	var at []time.Duration

	clock.AfterFunc(100*time.Millisecond, func() {
		at = append(at, clock.Now().Sub(epoch))
		clock.AfterFunc(50*time.Millisecond, func() {
			at = append(at, clock.Now().Sub(epoch))
		})
	})

	clock.Advance(200 * time.Millisecond)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 150 * time.Millisecond}, at)
}

func TestManualClock_Stop(t *testing.T) {
	clock := NewManualClock(epoch)
	fired := false
	timer := clock.AfterFunc(10*time.Millisecond, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop reports false")
	clock.Advance(time.Second)

	assert.False(t, fired)
	assert.Equal(t, 0, clock.Pending())
}
