package question

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Domain identifies a category of aptitude question.
type Domain string

// Built-in question domains.
const (
	// DomainAirborneNumerical covers fuel endurance, parcel drift, and
	// arrival time calculations.
	DomainAirborneNumerical Domain = "airborne-numerical"
	// DomainNumericalOperations covers mental arithmetic with
	// integer-exact answers.
	DomainNumericalOperations Domain = "numerical-operations"
)

// Topic identifies a question family within a domain.
type Topic string

// Topics of the airborne-numerical domain.
const (
	TopicFuelEndurance Topic = "fuel-endurance"
	TopicParcelDrift   Topic = "parcel-drift"
	TopicArrivalTime   Topic = "arrival-time"
)

// TopicMentalArithmetic is the single topic of the
// numerical-operations domain.
const TopicMentalArithmetic Topic = "mental-arithmetic"

// Expected is the graded answer of a question: either a numeric value
// or a piece of text.
type Expected struct {
	Numeric bool
	Number  float64
	Text    string
}

// NumericExpected wraps a numeric expected value.
func NumericExpected(value float64) Expected {
	return Expected{Numeric: true, Number: value}
}

// TextExpected wraps a textual expected value.
func TextExpected(value string) Expected {
	return Expected{Text: value}
}

// String returns the exact stringified form of the expected value.
// Feeding this form back as a submitted answer always grades as a match.
func (e Expected) String() string {
	if e.Numeric {
		return strconv.FormatFloat(e.Number, 'f', -1, 64)
	}
	return e.Text
}

// Tolerance is the allowed numeric deviation still counted as correct.
// Absolute and Relative may both be set; the larger band wins.
type Tolerance struct {
	Absolute float64
	Relative float64
}

// Allowed returns the absolute deviation permitted for an expected value.
func (t Tolerance) Allowed(expected float64) float64 {
	allowed := t.Absolute
	if relative := t.Relative * math.Abs(expected); relative > allowed {
		allowed = relative
	}
	return allowed
}

// TopicSettings carries the grading parameters configured per topic.
type TopicSettings struct {
	TimeLimit time.Duration
	Tolerance Tolerance
}

// Spec is one generated question instance: prompt, expected answer,
// tolerance, and time limit. Immutable once created.
type Spec struct {
	Domain    Domain
	Topic     Topic
	Prompt    string
	Expected  Expected
	Tolerance Tolerance
	TimeLimit time.Duration
}

// Validate checks structural invariants of a generated spec.
func (s Spec) Validate() error {
	if s.Domain == "" {
		return fmt.Errorf("question spec: domain is required")
	}
	if s.Prompt == "" {
		return fmt.Errorf("question spec: prompt is required")
	}
	if s.TimeLimit <= 0 {
		return fmt.Errorf("question spec: time limit must be positive, got %s", s.TimeLimit)
	}
	if s.Tolerance.Absolute < 0 || s.Tolerance.Relative < 0 {
		return fmt.Errorf("question spec: tolerance must not be negative")
	}
	return nil
}
