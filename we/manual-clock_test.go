package we

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	start := time.Date(2022, 2, 22, 10, 0, 0, 0, time.UTC)

	t.Run("fires due timers in deadline order", func(t *testing.T) {
		clock := NewManualClock(start)
		late := clock.After(2 * time.Second)
		early := clock.After(time.Second)

		assert.Equal(t, 2, clock.Waiters())

		clock.Advance(time.Second)
		assert.Equal(t, start.Add(time.Second), <-early)
		assert.Equal(t, 1, clock.Waiters())

		select {
		case <-late:
			t.Fatal("late timer fired early")
		default:
		}

		clock.Advance(time.Second)
		assert.Equal(t, start.Add(2*time.Second), <-late)
		assert.Equal(t, 0, clock.Waiters())
	})

	t.Run("fires non positive delays immediately", func(t *testing.T) {
		clock := NewManualClock(start)
		assert.Equal(t, start, <-clock.After(0))
		assert.Equal(t, 0, clock.Waiters())
	})

	t.Run("blocks until timers are registered", func(t *testing.T) {
		clock := NewManualClock(start)
		go clock.After(time.Minute)

		clock.BlockUntil(1)
		assert.Equal(t, 1, clock.Waiters())
		assert.Equal(t, start, clock.Now())
	})
}
