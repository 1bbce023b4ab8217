package engine

import (
	"time"

	"cfast/internal/clock"
	"cfast/internal/question"
)

// RawAnswer is the finalized input for one question. Produced exactly
// once per question and never mutated afterwards.
type RawAnswer struct {
	Text        string
	SubmittedAt time.Duration
	TimedOut    bool
}

// Controller collects candidate input while a countdown runs and
// finalizes exactly once, either on submit or on expiry.
//
// It performs no blocking waits: expiry is detected by Tick, which the
// caller's render loop invokes periodically.
type Controller struct {
	clk       clock.Clock
	spec      question.Spec
	active    bool
	finalized bool
	startedAt time.Time
	buffer    string
	answer    RawAnswer
}

// NewController creates a controller driven by the given clock.
func NewController(clk clock.Clock) *Controller {
	return &Controller{clk: clk}
}

// Start arms the controller for a new question and begins its countdown.
func (c *Controller) Start(spec question.Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	c.spec = spec
	c.active = true
	c.finalized = false
	c.startedAt = c.clk.Now()
	c.buffer = ""
	c.answer = RawAnswer{}
	return nil
}

// Push appends an input value to the answer buffer, coercing non-text
// values to text. Ignored when no question is active or after
// finalization.
func (c *Controller) Push(value interface{}) {
	if !c.active || c.finalized {
		return
	}
	c.buffer += CoerceText(value)
}

// Replace sets the whole answer buffer, for callers that own an editable
// input field. Same activity rules as Push.
func (c *Controller) Replace(value interface{}) {
	if !c.active || c.finalized {
		return
	}
	c.buffer = CoerceText(value)
}

// Submit finalizes the current question with the buffered text, after
// appending value if one is given. A submission landing exactly on the
// time limit is on time; anything later finalizes as timed out with
// whatever was buffered at expiry, so a late value is discarded.
// Submitting with no active question returns ErrNotActive; submitting
// after finalization returns the recorded answer unchanged.
func (c *Controller) Submit(value interface{}) (RawAnswer, error) {
	if !c.active {
		return RawAnswer{}, ErrNotActive
	}
	if c.finalized {
		return c.answer, nil
	}
	elapsed := c.clk.Now().Sub(c.startedAt)
	timedOut := elapsed > c.spec.TimeLimit
	if value != nil && !timedOut {
		c.buffer += CoerceText(value)
	}
	c.finalize(elapsed, timedOut)
	return c.answer, nil
}

// Tick checks the countdown against now and auto-finalizes as a timeout
// once the limit has passed. It reports whether this call finalized the
// answer; calls after finalization are no-ops.
func (c *Controller) Tick(now time.Time) (RawAnswer, bool) {
	if !c.active || c.finalized {
		return c.answer, false
	}
	elapsed := now.Sub(c.startedAt)
	if elapsed <= c.spec.TimeLimit {
		return RawAnswer{}, false
	}
	c.finalize(elapsed, true)
	return c.answer, true
}

// Remaining returns the time left on the countdown, never negative.
func (c *Controller) Remaining(now time.Time) time.Duration {
	if !c.active || c.finalized {
		return 0
	}
	remaining := c.spec.TimeLimit - now.Sub(c.startedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Buffer returns the current (not yet finalized) input text.
func (c *Controller) Buffer() string {
	return c.buffer
}

// Answer returns the finalized answer, if any.
func (c *Controller) Answer() (RawAnswer, bool) {
	return c.answer, c.finalized
}

// Finalized reports whether the current question has been finalized.
func (c *Controller) Finalized() bool {
	return c.finalized
}

func (c *Controller) finalize(elapsed time.Duration, timedOut bool) {
	c.answer = RawAnswer{
		Text:        c.buffer,
		SubmittedAt: elapsed,
		TimedOut:    timedOut,
	}
	c.finalized = true
}
