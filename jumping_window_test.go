package floodgate

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestNewJumpingWindowAt(t *testing.T) {
	w := NewJumpingWindowAt(2, 10*time.Second, t0)

	assert.Equal(t, uint64(2), w.Capacity())
	assert.Equal(t, 10*time.Second, w.Period())
	assert.Equal(t, t0, w.LastReset())
	assert.Equal(t, uint64(2), w.TokensAt(t0))
}

func TestTriggerExhaustsCapacity(t *testing.T) {
	w := NewJumpingWindowAt(2, 10*time.Second, t0)

	retryAfter, limited := w.TriggerAt(t0)
	assert.False(t, limited)
	assert.Zero(t, retryAfter)

	retryAfter, limited = w.TriggerAt(t0)
	assert.False(t, limited)
	assert.Zero(t, retryAfter)

	retryAfter, limited = w.TriggerAt(t0)
	assert.True(t, limited)
	assert.Equal(t, 10*time.Second, retryAfter)
}

func TestTokensResetsAfterPeriod(t *testing.T) {
	w := NewJumpingWindowAt(1, 10*time.Second, t0)

	_, limited := w.TriggerAt(t0)
	require.False(t, limited)

	later := t0.Add(11 * time.Second)
	assert.Equal(t, uint64(1), w.TokensAt(later))
	assert.Equal(t, later, w.LastReset())
}

func TestExplicitReset(t *testing.T) {
	w := NewJumpingWindowAt(1, 10*time.Second, t0)
	mid := t0.Add(5 * time.Second)

	_, limited := w.TriggerAt(t0)
	require.False(t, limited)

	assert.False(t, w.CanTriggerAt(mid))
	w.ResetAt(mid)
	assert.True(t, w.CanTriggerAt(mid))
	assert.Equal(t, mid, w.LastReset())
	assert.Equal(t, 10*time.Second, w.NextResetAt(mid))
}

func TestZeroCapacityIsAlwaysLimited(t *testing.T) {
	w := NewJumpingWindowAt(0, 10*time.Second, t0)

	retryAfter, limited := w.TriggerAt(t0)
	assert.True(t, limited)
	assert.Equal(t, 10*time.Second, retryAfter)

	later := t0.Add(11 * time.Second)
	retryAfter, limited = w.TriggerAt(later)
	assert.True(t, limited)
	assert.Equal(t, 10*time.Second, retryAfter)
	assert.Equal(t, later, w.LastReset())
	assert.False(t, w.CanTriggerAt(later))
}

func TestNextResetProjection(t *testing.T) {
	w := NewJumpingWindowAt(1, 10*time.Second, t0)

	assert.Equal(t, 10*time.Second, w.NextResetAt(t0))
	assert.Equal(t, 5*time.Second, w.NextResetAt(t0.Add(5*time.Second)))
}

func TestNextResetDoesNotReset(t *testing.T) {
	w := NewJumpingWindowAt(1, 10*time.Second, t0)
	_, _ = w.TriggerAt(t0)

	later := t0.Add(11 * time.Second)
	assert.Zero(t, w.NextResetAt(later))
	assert.Equal(t, t0, w.LastReset())
	assert.Equal(t, uint64(0), w.tokens)

	assert.Equal(t, uint64(1), w.TokensAt(later))
}

func TestResetBoundaryIsExclusive(t *testing.T) {
	w := NewJumpingWindowAt(1, 10*time.Second, t0)
	_, _ = w.TriggerAt(t0)

	boundary := t0.Add(10 * time.Second)
	assert.Equal(t, uint64(0), w.TokensAt(boundary))
	assert.Equal(t, t0, w.LastReset())
	assert.Zero(t, w.NextResetAt(boundary))

	retryAfter, limited := w.TriggerAt(boundary)
	assert.True(t, limited)
	assert.Zero(t, retryAfter)

	assert.Equal(t, uint64(1), w.TokensAt(boundary.Add(time.Nanosecond)))
}

func TestTokensIsIdempotent(t *testing.T) {
	w := NewJumpingWindowAt(3, 10*time.Second, t0)
	_, _ = w.TriggerAt(t0)

	now := t0.Add(2 * time.Second)
	for i := 0; i < 3; i++ {
		assert.Equal(t, uint64(2), w.TokensAt(now))
	}
	assert.Equal(t, t0, w.LastReset())
}

func TestTriggerNeverGoesBelowZero(t *testing.T) {
	w := NewJumpingWindowAt(5, time.Minute, t0)

	for i := 0; i < 5; i++ {
		_, limited := w.TriggerAt(t0.Add(time.Duration(i) * time.Second))
		require.False(t, limited, "trigger %d should be allowed", i+1)
	}

	for i := 0; i < 3; i++ {
		now := t0.Add(10 * time.Second)
		retryAfter, limited := w.TriggerAt(now)
		assert.True(t, limited)
		assert.Equal(t, 50*time.Second, retryAfter)
		assert.Equal(t, uint64(0), w.TokensAt(now))
	}
}

func TestRetryAfterMatchesTokens(t *testing.T) {
	w := NewJumpingWindowAt(2, 10*time.Second, t0)

	for _, offset := range []time.Duration{0, time.Second, 2 * time.Second, 9 * time.Second, 10 * time.Second, 15 * time.Second, 21 * time.Second, 22 * time.Second} {
		now := t0.Add(offset)

		tokens := w.TokensAt(now)
		retryAfter, limited := w.RetryAfterAt(now)
		assert.Equal(t, tokens == 0, limited, "offset %s", offset)
		if limited {
			assert.Equal(t, w.NextResetAt(now), retryAfter, "offset %s", offset)
		} else {
			assert.Zero(t, retryAfter, "offset %s", offset)
		}

		_, _ = w.TriggerAt(now)
	}
}

func TestTokensStayWithinCapacity(t *testing.T) {
	const capacity = 4
	w := NewJumpingWindowAt(capacity, 3*time.Second, t0)
	rng := rand.New(rand.NewSource(42))

	now := t0
	for i := 0; i < 1000; i++ {
		now = now.Add(time.Duration(rng.Intn(1500)) * time.Millisecond)

		switch rng.Intn(6) {
		case 0:
			w.TokensAt(now)
		case 1:
			w.NextResetAt(now)
		case 2:
			w.RetryAfterAt(now)
		case 3:
			w.CanTriggerAt(now)
		case 4:
			w.TriggerAt(now)
		case 5:
			if rng.Intn(10) == 0 {
				w.ResetAt(now)
			}
		}

		require.LessOrEqual(t, w.tokens, uint64(capacity))
		require.False(t, w.LastReset().After(now))
	}
}

func TestOutOfOrderTimestampDoesNotReset(t *testing.T) {
	w := NewJumpingWindowAt(1, 10*time.Second, t0)
	_, _ = w.TriggerAt(t0)

	earlier := t0.Add(-time.Hour)
	assert.Equal(t, uint64(0), w.TokensAt(earlier))
	assert.Equal(t, 10*time.Second, w.NextResetAt(earlier))
	assert.Equal(t, t0, w.LastReset())
}

func TestZeroPeriod(t *testing.T) {
	w := NewJumpingWindowAt(1, 0, t0)

	_, limited := w.TriggerAt(t0)
	assert.False(t, limited)

	retryAfter, limited := w.TriggerAt(t0)
	assert.True(t, limited)
	assert.Zero(t, retryAfter)

	_, limited = w.TriggerAt(t0.Add(time.Nanosecond))
	assert.False(t, limited)
}

func TestMaybeReset(t *testing.T) {
	w := NewJumpingWindowAt(2, 10*time.Second, t0)
	_, _ = w.TriggerAt(t0)
	_, _ = w.TriggerAt(t0)

	w.maybeReset(t0.Add(5 * time.Second))
	assert.Equal(t, uint64(0), w.tokens)
	assert.Equal(t, t0, w.lastReset)

	later := t0.Add(11 * time.Second)
	w.maybeReset(later)
	assert.Equal(t, uint64(2), w.tokens)
	assert.Equal(t, later, w.lastReset)
}

func TestRealClock(t *testing.T) {
	w := NewJumpingWindow(1, 10*time.Second)

	assert.Equal(t, uint64(1), w.Tokens())
	assert.True(t, w.CanTrigger())

	retryAfter, limited := w.RetryAfter()
	assert.False(t, limited)
	assert.Zero(t, retryAfter)

	_, limited = w.Trigger()
	require.False(t, limited)

	assert.Equal(t, uint64(0), w.Tokens())
	assert.False(t, w.CanTrigger())

	retryAfter, limited = w.Trigger()
	assert.True(t, limited)
	assert.Greater(t, retryAfter, 9*time.Second)
	assert.LessOrEqual(t, retryAfter, 10*time.Second)

	retryAfter, limited = w.RetryAfter()
	assert.True(t, limited)
	assert.Greater(t, retryAfter, 9*time.Second)

	next := w.NextReset()
	assert.Greater(t, next, 9*time.Second)
	assert.LessOrEqual(t, next, 10*time.Second)

	w.Reset()
	assert.True(t, w.CanTrigger())
}
