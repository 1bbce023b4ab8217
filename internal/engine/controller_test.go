package engine

import (
	"errors"
	"testing"
	"time"

	"cfast/internal/question"
	"cfast/internal/testutil"
)

func fuelSpec(limit time.Duration) question.Spec {
	return question.Spec{
		Domain:    question.DomainAirborneNumerical,
		Topic:     question.TopicFuelEndurance,
		Prompt:    "Fuel on board: 300 units. Consumption: 120 units/hr.\nEndurance in hours?",
		Expected:  question.NumericExpected(2.5),
		Tolerance: question.Tolerance{Absolute: 0.05},
		TimeLimit: limit,
	}
}

// TestSubmitBeforeStartFails verifies submitting with no active
// question reports caller misuse.
func TestSubmitBeforeStartFails(t *testing.T) {
	controller := NewController(testutil.NewFakeClock(time.Unix(0, 0)))
	if _, err := controller.Submit("2.5"); !errors.Is(err, ErrNotActive) {
		t.Fatalf("expected ErrNotActive, got %v", err)
	}
}

// TestSubmitRecordsElapsedTime verifies the finalized answer carries
// the time since presentation.
func TestSubmitRecordsElapsedTime(t *testing.T) {
	clk := testutil.NewFakeClock(time.Unix(0, 0))
	controller := NewController(clk)
	if err := controller.Start(fuelSpec(10 * time.Second)); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(3 * time.Second)
	answer, err := controller.Submit("2.5")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if answer.TimedOut {
		t.Fatalf("expected on-time answer")
	}
	if answer.Text != "2.5" {
		t.Fatalf("expected buffered text 2.5, got %q", answer.Text)
	}
	if answer.SubmittedAt != 3*time.Second {
		t.Fatalf("expected 3s elapsed, got %s", answer.SubmittedAt)
	}
}

// TestSubmitAtExactLimitIsOnTime verifies the boundary: a submission at
// exactly the time limit counts, one past it does not.
func TestSubmitAtExactLimitIsOnTime(t *testing.T) {
	clk := testutil.NewFakeClock(time.Unix(0, 0))
	controller := NewController(clk)
	if err := controller.Start(fuelSpec(10 * time.Second)); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(10 * time.Second)
	answer, err := controller.Submit("2.5")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if answer.TimedOut {
		t.Fatalf("submission at the exact limit must be on time")
	}
}

// TestSubmitPastLimitFinalizesAsTimeout verifies a late submission is
// marked timed out and keeps only the text buffered at expiry; the late
// value is discarded.
func TestSubmitPastLimitFinalizesAsTimeout(t *testing.T) {
	clk := testutil.NewFakeClock(time.Unix(0, 0))
	controller := NewController(clk)
	if err := controller.Start(fuelSpec(10 * time.Second)); err != nil {
		t.Fatalf("start: %v", err)
	}
	controller.Push("2.")
	clk.Advance(10*time.Second + time.Millisecond)
	answer, err := controller.Submit("5")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !answer.TimedOut {
		t.Fatalf("expected timeout past the limit")
	}
	if answer.Text != "2." {
		t.Fatalf("expected only the buffered text, got %q", answer.Text)
	}
}

// TestTickBoundary verifies Tick does not expire at the limit and does
// expire one tick past it.
func TestTickBoundary(t *testing.T) {
	clk := testutil.NewFakeClock(time.Unix(0, 0))
	controller := NewController(clk)
	if err := controller.Start(fuelSpec(10 * time.Second)); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(10 * time.Second)
	if _, expired := controller.Tick(clk.Now()); expired {
		t.Fatalf("tick at the exact limit must not expire")
	}
	clk.Advance(time.Millisecond)
	answer, expired := controller.Tick(clk.Now())
	if !expired {
		t.Fatalf("tick past the limit must expire")
	}
	if !answer.TimedOut {
		t.Fatalf("expired answer must be marked timed out")
	}
}

// TestFinalizationIsIdempotent verifies later ticks and submits leave
// the finalized answer unchanged.
func TestFinalizationIsIdempotent(t *testing.T) {
	clk := testutil.NewFakeClock(time.Unix(0, 0))
	controller := NewController(clk)
	if err := controller.Start(fuelSpec(10 * time.Second)); err != nil {
		t.Fatalf("start: %v", err)
	}
	controller.Push("2.5")
	clk.Advance(11 * time.Second)
	first, expired := controller.Tick(clk.Now())
	if !expired {
		t.Fatalf("expected expiry")
	}
	if !controller.Finalized() {
		t.Fatalf("expected controller to report finalized")
	}
	clk.Advance(time.Hour)
	if _, expiredAgain := controller.Tick(clk.Now()); expiredAgain {
		t.Fatalf("second tick must be a no-op")
	}
	again, err := controller.Submit("changed")
	if err != nil {
		t.Fatalf("submit after finalize: %v", err)
	}
	if again != first {
		t.Fatalf("finalized answer changed: %+v vs %+v", again, first)
	}
	controller.Push("more")
	if stored, _ := controller.Answer(); stored != first {
		t.Fatalf("push after finalize mutated the answer")
	}
}

// TestInputCoercionNeverFails verifies non-text input values are
// coerced to text instead of rejected.
func TestInputCoercionNeverFails(t *testing.T) {
	clk := testutil.NewFakeClock(time.Unix(0, 0))
	controller := NewController(clk)
	if err := controller.Start(fuelSpec(10 * time.Second)); err != nil {
		t.Fatalf("start: %v", err)
	}
	answer, err := controller.Submit(2.5)
	if err != nil {
		t.Fatalf("submit float: %v", err)
	}
	if answer.Text != "2.5" {
		t.Fatalf("expected coerced text 2.5, got %q", answer.Text)
	}
}

// TestCoerceText covers the coercion table at the input boundary.
func TestCoerceText(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{[]byte("xy"), "xy"},
		{42, "42"},
		{int64(-7), "-7"},
		{2.5, "2.5"},
		{float32(0.5), "0.5"},
		{true, "true"},
	}
	for _, tc := range cases {
		if got := CoerceText(tc.in); got != tc.want {
			t.Fatalf("coerce %v: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

// TestRemainingClampsAtZero verifies remaining time never goes negative.
func TestRemainingClampsAtZero(t *testing.T) {
	clk := testutil.NewFakeClock(time.Unix(0, 0))
	controller := NewController(clk)
	if err := controller.Start(fuelSpec(10 * time.Second)); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(4 * time.Second)
	if got := controller.Remaining(clk.Now()); got != 6*time.Second {
		t.Fatalf("expected 6s remaining, got %s", got)
	}
	clk.Advance(20 * time.Second)
	if got := controller.Remaining(clk.Now()); got != 0 {
		t.Fatalf("expected 0 remaining, got %s", got)
	}
}

// TestStartRejectsInvalidSpec verifies the positive time limit invariant.
func TestStartRejectsInvalidSpec(t *testing.T) {
	controller := NewController(testutil.NewFakeClock(time.Unix(0, 0)))
	if err := controller.Start(fuelSpec(0)); err == nil {
		t.Fatalf("expected error for non-positive time limit")
	}
}
