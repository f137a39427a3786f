package engine

import (
	"context"
	"time"
)

// TimeHandler turns UCI clock parameters into a thinking budget.
type TimeHandler struct {
	Remaining time.Duration
	Increment time.Duration
	MoveTime  time.Duration
}

// Engine-side safety knobs.
const (
	overhead         = 30 * time.Millisecond // reserve for UCI/IO jitter
	minMoveTime      = 5 * time.Millisecond
	maxFraction      = 0.7 // never spend more than 70% of the remaining time
	panicThreshold   = time.Second
	panicFraction    = 0.9
	defaultMovesToGo = 30
)

// Budget returns how long the next move may take, or 0 when no clock was
// given (depth-limited search).
func (th TimeHandler) Budget() time.Duration {
	if th.MoveTime > 0 {
		return th.MoveTime
	}
	rem, inc := th.Remaining, th.Increment
	if rem <= 0 {
		return 0
	}

	var moveTime time.Duration
	switch {
	case inc > 0 && rem < panicThreshold:
		// Panic: live on the increment.
		moveTime = time.Duration(float64(inc) * panicFraction)
	case inc > 0:
		moveTime = rem/defaultMovesToGo + inc
	default:
		moveTime = rem / 40
	}

	moveTime = Min(moveTime, time.Duration(float64(rem)*maxFraction))
	moveTime = Min(moveTime, rem-overhead)
	return Max(moveTime, minMoveTime)
}

// Context derives a context that expires after the budget. With no budget the
// parent is returned unchanged together with a no-op cancel.
func (th TimeHandler) Context(parent context.Context) (context.Context, context.CancelFunc) {
	budget := th.Budget()
	if budget <= 0 {
		return parent, func() {}
	}
	return context.WithTimeout(parent, budget)
}
