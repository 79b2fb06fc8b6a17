// Package floodgate provides a fixed-window ("jumping window") rate limiter.
//
// The package defines these core abstractions:
//   - JumpingWindow: the single-owner counter of triggers per period
//   - Cooldown: a JumpingWindow serialized behind a lock, usable from many goroutines
//   - Limiter: the interface middleware consumes (implemented by Cooldown)
//   - Result: the outcome of a limit check, useful for HTTP headers
package floodgate

import (
	"context"
	"time"
)

// Result contains the outcome of a rate limit check.
//
// It provides the necessary data to populate standard rate-limiting HTTP headers
// such as `X-RateLimit-Limit`, `X-RateLimit-Remaining`, `X-RateLimit-Reset` and `Retry-After`.
type Result struct {
	// Allowed indicates whether the trigger was permitted.
	Allowed bool
	// Limit is the total number of triggers allowed per window.
	Limit uint64
	// Remaining is the number of triggers left in the current window.
	Remaining uint64
	// ResetAfter is the duration until the current window ends.
	// When Allowed is false it is the time to wait before retrying.
	ResetAfter time.Duration
}

// Limiter defines the interface middleware uses to admit or reject work.
//
// All callers of a Limiter share one counter; there is no per-client keying.
type Limiter interface {
	// Allow consumes one trigger if one is available.
	//
	// Returns:
	//   - Result: the outcome and header-related info
	//   - error: a non-nil error means no decision was made (e.g. ctx is done)
	Allow(ctx context.Context) (Result, error)
}
