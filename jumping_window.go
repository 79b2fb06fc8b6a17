package floodgate

import "time"

// JumpingWindow implements the "Jumping Window" (fixed window) rate-limiting algorithm.
//
// A JumpingWindow permits up to capacity triggers per period. Once the period
// since the last reset has elapsed, the next call that observes it restores the
// full capacity in one jump. There is no gradual refill.
//
// Every query goes through the same reset check, so methods like Tokens and
// CanTrigger may reset the window as a side effect. NextReset is the only
// method that never mutates state.
//
// A JumpingWindow is not safe for concurrent use. Wrap it in a Cooldown, or
// guard it with your own lock, when it is shared between goroutines.
//
// Every method has two forms: one reading the real clock at call time, and an
// "At" variant taking an explicit now. Timestamps passed to the At variants
// must not go backwards.
//
// Example usage:
//
//	// allow 2 triggers per 10 seconds
//	cooldown := floodgate.NewJumpingWindow(2, 10*time.Second)
//
//	cooldown.Trigger() // 0, false
//	cooldown.Trigger() // 0, false
//
//	if retryAfter, limited := cooldown.Trigger(); limited {
//	    // wait retryAfter before trying again
//	}
type JumpingWindow struct {
	capacity uint64
	period   time.Duration

	lastReset time.Time
	tokens    uint64
}

// NewJumpingWindow creates a JumpingWindow whose first window starts now.
//
// Parameters:
//   - capacity: how many triggers can occur per window (0 is accepted and never permits one)
//   - period: how long the window is
func NewJumpingWindow(capacity uint64, period time.Duration) *JumpingWindow {
	return NewJumpingWindowAt(capacity, period, time.Now())
}

// NewJumpingWindowAt creates a JumpingWindow whose first window starts at now.
func NewJumpingWindowAt(capacity uint64, period time.Duration, now time.Time) *JumpingWindow {
	return &JumpingWindow{
		capacity:  capacity,
		period:    period,
		lastReset: now,
		tokens:    capacity,
	}
}

// Capacity returns the number of triggers allowed per window.
func (w *JumpingWindow) Capacity() uint64 {
	return w.capacity
}

// Period returns the window length.
func (w *JumpingWindow) Period() time.Duration {
	return w.period
}

// LastReset returns the start of the current window.
func (w *JumpingWindow) LastReset() time.Time {
	return w.lastReset
}

// Tokens returns how many triggers are left in the current window.
func (w *JumpingWindow) Tokens() uint64 {
	return w.TokensAt(time.Now())
}

// TokensAt returns how many triggers are left in the window as observed at now.
// If more than a full period has elapsed since the last reset, the window is
// reset at now first.
func (w *JumpingWindow) TokensAt(now time.Time) uint64 {
	w.maybeReset(now)
	return w.tokens
}

// NextReset returns the time until the current window ends.
func (w *JumpingWindow) NextReset() time.Duration {
	return w.NextResetAt(time.Now())
}

// NextResetAt returns the time from now until the current window ends, or zero
// if the window has already expired. It does not reset the window.
func (w *JumpingWindow) NextResetAt(now time.Time) time.Duration {
	since := w.since(now)
	if since > w.period {
		return 0
	}
	return w.period - since
}

// RetryAfter is like NextReset, except that it reports limited == false when
// there are still triggers left.
func (w *JumpingWindow) RetryAfter() (time.Duration, bool) {
	return w.RetryAfterAt(time.Now())
}

// RetryAfterAt returns how long to wait before triggers are available again at
// now. The second value is false, with a zero duration, if a trigger would be
// permitted right away.
func (w *JumpingWindow) RetryAfterAt(now time.Time) (retryAfter time.Duration, limited bool) {
	if w.TokensAt(now) == 0 {
		return w.NextResetAt(now), true
	}
	return 0, false
}

// CanTrigger reports whether there are still triggers available.
func (w *JumpingWindow) CanTrigger() bool {
	return w.CanTriggerAt(time.Now())
}

// CanTriggerAt reports whether there are triggers available at now.
func (w *JumpingWindow) CanTriggerAt(now time.Time) bool {
	return w.TokensAt(now) != 0
}

// Trigger consumes one token from the current window.
func (w *JumpingWindow) Trigger() (time.Duration, bool) {
	return w.TriggerAt(time.Now())
}

// TriggerAt consumes one token from the window as observed at now.
//
// On success it returns (0, false). When the window is exhausted nothing is
// consumed and it returns the time until the window resets with limited set.
func (w *JumpingWindow) TriggerAt(now time.Time) (retryAfter time.Duration, limited bool) {
	if w.TokensAt(now) == 0 {
		return w.NextResetAt(now), true
	}

	w.tokens--
	return 0, false
}

// Reset restores the full capacity and starts a new window now.
func (w *JumpingWindow) Reset() {
	w.ResetAt(time.Now())
}

// ResetAt restores the full capacity and starts a new window at now,
// regardless of how much time has elapsed.
func (w *JumpingWindow) ResetAt(now time.Time) {
	w.tokens = w.capacity
	w.lastReset = now
}

// maybeReset resets the window at now when strictly more than one period has
// elapsed since the last reset.
func (w *JumpingWindow) maybeReset(now time.Time) {
	if w.since(now) > w.period {
		w.ResetAt(now)
	}
}

// since returns the time elapsed from the last reset to now, saturating at zero
// when now lies before the last reset.
func (w *JumpingWindow) since(now time.Time) time.Duration {
	d := now.Sub(w.lastReset)
	if d < 0 {
		return 0
	}
	return d
}
