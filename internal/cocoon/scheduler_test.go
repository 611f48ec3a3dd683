package cocoon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualScheduler_FiresInDeadlineOrder(t *testing.T) {
	s := NewManualScheduler()
	var order []string

	s.AfterFunc(3*time.Second, func() { order = append(order, "c") })
	s.AfterFunc(time.Second, func() { order = append(order, "a") })
	s.AfterFunc(time.Second, func() { order = append(order, "b") })

	assert.Equal(t, 0, s.Advance(500*time.Millisecond))
	assert.Equal(t, 3, s.Pending())

	assert.Equal(t, 3, s.Advance(5*time.Second))
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 5500*time.Millisecond, s.Now())
}

func TestManualScheduler_Stop(t *testing.T) {
	s := NewManualScheduler()
	ran := false

	timer := s.AfterFunc(time.Second, func() { ran = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop reports nothing stopped")

	assert.Equal(t, 0, s.Advance(2*time.Second))
	assert.False(t, ran)
}

func TestManualScheduler_StopAfterFire(t *testing.T) {
	s := NewManualScheduler()
	calls := 0

	timer := s.AfterFunc(time.Second, func() { calls++ })
	s.Advance(time.Second)
	assert.False(t, timer.Stop())

	s.Advance(time.Hour)
	assert.Equal(t, 1, calls)
}

func TestManualScheduler_NegativeDelayFiresOnNextAdvance(t *testing.T) {
	s := NewManualScheduler()
	ran := false

	s.AfterFunc(-time.Second, func() { ran = true })
	s.Advance(0)
	assert.True(t, ran)
}

func TestRealScheduler_Stop(t *testing.T) {
	fired := make(chan struct{})
	timer := RealScheduler.AfterFunc(time.Hour, func() { close(fired) })
	assert.True(t, timer.Stop())

	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	default:
	}
}
