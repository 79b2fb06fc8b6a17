// Package simulate replays a sequence of triggers against a JumpingWindow on a
// synthetic clock, so the window behaviour can be inspected without waiting.
package simulate

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jassus213/floodgate"
)

// Plan describes one simulation run.
type Plan struct {
	Capacity uint64
	Period   time.Duration
	// Interval is the synthetic time between consecutive triggers.
	Interval time.Duration
	// Count is the number of triggers to attempt.
	Count int
	// ResetAt lists step indexes before which an explicit reset is issued.
	ResetAt []int
}

// Step is the observed outcome of one trigger.
type Step struct {
	Index      int
	Offset     time.Duration
	Reset      bool
	Allowed    bool
	Tokens     uint64
	RetryAfter time.Duration
	NextReset  time.Duration
}

var (
	ErrNoTriggers       = errors.New("count must be positive")
	ErrNegativeInterval = errors.New("interval must not be negative")
)

// Run executes plan starting at start and returns one Step per trigger.
func Run(plan Plan, start time.Time) ([]Step, error) {
	if plan.Count <= 0 {
		return nil, ErrNoTriggers
	}
	if plan.Interval < 0 {
		return nil, ErrNegativeInterval
	}
	resets := make(map[int]bool, len(plan.ResetAt))
	for _, i := range plan.ResetAt {
		if i < 0 || i >= plan.Count {
			return nil, fmt.Errorf("reset index %d out of range [0, %d)", i, plan.Count)
		}
		resets[i] = true
	}

	window := floodgate.NewJumpingWindowAt(plan.Capacity, plan.Period, start)
	steps := make([]Step, 0, plan.Count)

	for i := 0; i < plan.Count; i++ {
		offset := time.Duration(i) * plan.Interval
		now := start.Add(offset)

		if resets[i] {
			window.ResetAt(now)
		}

		retryAfter, limited := window.TriggerAt(now)
		steps = append(steps, Step{
			Index:      i,
			Offset:     offset,
			Reset:      resets[i],
			Allowed:    !limited,
			Tokens:     window.TokensAt(now),
			RetryAfter: retryAfter,
			NextReset:  window.NextResetAt(now),
		})
	}

	return steps, nil
}

// Summary counts the allowed and rejected steps.
func Summary(steps []Step) (allowed, rejected int) {
	for _, s := range steps {
		if s.Allowed {
			allowed++
		} else {
			rejected++
		}
	}
	return allowed, rejected
}

// Render writes steps as a table to w.
func Render(w io.Writer, steps []Step) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Offset", "Result", "Tokens", "Retry After", "Next Reset"})

	for _, s := range steps {
		result := "allowed"
		if !s.Allowed {
			result = "limited"
		}
		if s.Reset {
			result += " (reset)"
		}

		retryAfter := "-"
		if !s.Allowed {
			retryAfter = s.RetryAfter.String()
		}

		t.AppendRow(table.Row{s.Index, s.Offset, result, s.Tokens, retryAfter, s.NextReset})
	}

	allowed, rejected := Summary(steps)
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d allowed, %d limited", allowed, rejected), "", "", ""})

	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}
