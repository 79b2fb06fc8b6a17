package floodgate

import (
	"context"
	"sync"
	"time"
)

// minWait is the shortest sleep Wait performs between attempts. A zero
// retry-after means the window ends at this very instant and a reset is due
// as soon as the clock moves.
const minWait = time.Millisecond

// Cooldown is a JumpingWindow that is safe for concurrent use.
//
// Every operation takes the lock and reads the clock once, so a single call
// never straddles a window boundary.
//
// Example usage:
//
//	cooldown := floodgate.NewCooldown(100, time.Minute)
//	result, err := cooldown.Allow(ctx)
//	if err == nil && result.Allowed {
//	    // process request
//	}
type Cooldown struct {
	mu     sync.Mutex
	window *JumpingWindow
	clock  func() time.Time
}

// CooldownOption configures a Cooldown.
type CooldownOption func(*Cooldown)

// WithClock returns a CooldownOption that replaces the real clock.
// A nil clock is ignored.
func WithClock(clock func() time.Time) CooldownOption {
	return func(c *Cooldown) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewCooldown creates a Cooldown allowing capacity triggers per period.
func NewCooldown(capacity uint64, period time.Duration, opts ...CooldownOption) *Cooldown {
	c := &Cooldown{clock: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.window = NewJumpingWindowAt(capacity, period, c.clock())
	return c
}

// Allow triggers the underlying window once.
//
// A done context is reported as an error and consumes nothing.
func (c *Cooldown) Allow(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Allowed: false}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	retryAfter, limited := c.window.TriggerAt(now)

	result := Result{
		Allowed:    !limited,
		Limit:      c.window.Capacity(),
		Remaining:  c.window.TokensAt(now),
		ResetAfter: retryAfter,
	}
	if !limited {
		result.ResetAfter = c.window.NextResetAt(now)
	}

	return result, nil
}

// Wait blocks until a trigger succeeds or ctx is done.
func (c *Cooldown) Wait(ctx context.Context) error {
	for {
		result, err := c.Allow(ctx)
		if err != nil {
			return err
		}
		if result.Allowed {
			return nil
		}

		wait := result.ResetAfter
		if wait < minWait {
			wait = minWait
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// Remaining returns the triggers left in the current window.
func (c *Cooldown) Remaining() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.window.TokensAt(c.clock())
}

// NextReset returns the time until the current window ends.
func (c *Cooldown) NextReset() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.window.NextResetAt(c.clock())
}

// Reset restores the full capacity and starts a new window.
func (c *Cooldown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.window.ResetAt(c.clock())
}
