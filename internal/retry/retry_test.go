package retry_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/juju/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odpf/dotnet-fetch/internal/retry"
)

var _ clock.Clock = (*countingClock)(nil)

// countingClock fires every wait immediately and records the requested delays.
type countingClock struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (c *countingClock) Now() time.Time { return time.Now() }

func (c *countingClock) After(d time.Duration) <-chan time.Time {
	c.record(d)
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func (c *countingClock) At(t time.Time) <-chan time.Time {
	return c.After(time.Until(t))
}

func (c *countingClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.record(d)
	f()
	return newFiredTimer()
}

func (c *countingClock) NewTimer(d time.Duration) clock.Timer {
	c.record(d)
	return newFiredTimer()
}

func (c *countingClock) record(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delays = append(c.delays, d)
}

func (c *countingClock) Delays() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.delays...)
}

type firedTimer struct {
	ch chan time.Time
}

func newFiredTimer() *firedTimer {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return &firedTimer{ch: ch}
}

func (t *firedTimer) Chan() <-chan time.Time     { return t.ch }
func (*firedTimer) Reset(time.Duration) bool { return true }
func (*firedTimer) Stop() bool               { return true }

func TestExecutor(t *testing.T) {
	ctx := context.Background()

	t.Run("returns success after two failures with two delays", func(t *testing.T) {
		clk := &countingClock{}
		executor := retry.New(3, 300*time.Millisecond, retry.WithClock(clk))

		calls := 0
		result, err := retry.Call(ctx, executor, func() (string, error) {
			calls++
			if calls < 3 {
				return "", fmt.Errorf("attempt %d failed", calls)
			}
			return "3.1.201", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "3.1.201", result)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{300 * time.Millisecond, 300 * time.Millisecond}, clk.Delays())
	})

	t.Run("propagates the last failure unchanged after all attempts", func(t *testing.T) {
		clk := &countingClock{}
		executor := retry.New(3, 300*time.Millisecond, retry.WithClock(clk))
		errs := []error{errors.New("first"), errors.New("second"), errors.New("third")}

		calls := 0
		err := executor.Do(ctx, func() error {
			err := errs[calls]
			calls++
			return err
		})

		assert.Equal(t, 3, calls)
		assert.Same(t, errs[2], err)
		assert.Len(t, clk.Delays(), 2)
	})

	t.Run("does not wait when the first attempt succeeds", func(t *testing.T) {
		clk := &countingClock{}
		executor := retry.New(3, time.Second, retry.WithClock(clk))

		err := executor.Do(ctx, func() error { return nil })

		assert.NoError(t, err)
		assert.Empty(t, clk.Delays())
	})

	t.Run("calls notify for every failed attempt", func(t *testing.T) {
		var attempts []int
		executor := retry.New(2, time.Millisecond,
			retry.WithClock(&countingClock{}),
			retry.WithNotify(func(err error, attempt int) {
				attempts = append(attempts, attempt)
			}),
		)

		err := executor.Do(ctx, func() error { return errors.New("boom") })

		assert.EqualError(t, err, "boom")
		assert.Equal(t, []int{1, 2}, attempts)
	})

	t.Run("returns zero value when every attempt fails", func(t *testing.T) {
		executor := retry.New(2, time.Millisecond, retry.WithClock(&countingClock{}))

		result, err := retry.Call(ctx, executor, func() (int, error) {
			return 42, errors.New("boom")
		})

		assert.Error(t, err)
		assert.Zero(t, result)
	})

	t.Run("falls back to defaults for non positive settings", func(t *testing.T) {
		executor := retry.New(0, 0)

		assert.Equal(t, retry.DefaultAttempts, executor.Attempts())
		assert.Equal(t, retry.DefaultDelay, executor.Delay())
	})
}
