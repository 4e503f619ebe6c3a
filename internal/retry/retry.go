package retry

import (
	"context"
	"time"

	"github.com/juju/clock"
	jujuretry "github.com/juju/retry"
)

const (
	DefaultAttempts = 3
	DefaultDelay    = 300 * time.Millisecond
)

// Executor runs an operation up to a fixed number of attempts with a constant
// delay between them.
type Executor struct {
	attempts int
	delay    time.Duration
	clock    clock.Clock
	notify   func(err error, attempt int)
}

type Option func(*Executor)

// WithClock replaces the wall clock used to wait between attempts.
func WithClock(c clock.Clock) Option {
	return func(e *Executor) {
		e.clock = c
	}
}

// WithNotify registers a hook called after every failed attempt.
func WithNotify(fn func(err error, attempt int)) Option {
	return func(e *Executor) {
		e.notify = fn
	}
}

// New initializes an executor, non positive values fall back to the defaults
func New(attempts int, delay time.Duration, opts ...Option) *Executor {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	e := &Executor{
		attempts: attempts,
		delay:    delay,
		clock:    clock.WallClock,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) Attempts() int { return e.attempts }

func (e *Executor) Delay() time.Duration { return e.delay }

// Do invokes op until it succeeds or the attempts are exhausted. The error of
// the final attempt is returned as is.
func (e *Executor) Do(ctx context.Context, op func() error) error {
	var lastErr error
	err := jujuretry.Call(jujuretry.CallArgs{
		Func: func() error {
			lastErr = op()
			return lastErr
		},
		NotifyFunc: e.notify,
		Attempts:   e.attempts,
		Delay:      e.delay,
		Clock:      e.clock,
		Stop:       ctx.Done(),
	})
	if err == nil {
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return err
}

// Call is Do for operations producing a value.
func Call[T any](ctx context.Context, e *Executor, op func() (T, error)) (T, error) {
	var result T
	err := e.Do(ctx, func() error {
		var err error
		result, err = op()
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
