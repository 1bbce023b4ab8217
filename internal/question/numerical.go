package question

import (
	"fmt"
	"math/rand"
)

// NumericalOperationsGenerator produces mental arithmetic problems
// (addition, subtraction, multiplication, division) with integer-exact
// answers. Easy sessions lean on addition and subtraction; harder ones
// mix in more multiplication and division and widen the operand ranges.
type NumericalOperationsGenerator struct{}

// Generate builds one arithmetic problem from the request's seeded RNG.
func (g NumericalOperationsGenerator) Generate(req Request) (Spec, error) {
	if req.Rng == nil {
		return Spec{}, fmt.Errorf("numerical operations: rng is required")
	}
	if req.Topic != "" && req.Topic != TopicMentalArithmetic {
		return Spec{}, fmt.Errorf("numerical operations: unknown topic %q", req.Topic)
	}
	settings, ok := req.Settings[TopicMentalArithmetic]
	if !ok {
		return Spec{}, fmt.Errorf("numerical operations: no settings for topic %q", TopicMentalArithmetic)
	}
	difficulty := clamp01(req.Difficulty)

	var prompt string
	var answer int
	switch g.pickOperator(req.Rng, difficulty) {
	case '+':
		a, b := g.operands(req.Rng, difficulty)
		prompt = fmt.Sprintf("%d + %d =", a, b)
		answer = a + b
	case '-':
		a, b := g.operands(req.Rng, difficulty)
		// Keep results non-negative.
		if b > a {
			a, b = b, a
		}
		prompt = fmt.Sprintf("%d - %d =", a, b)
		answer = a - b
	case '*':
		a := randRange(req.Rng, 2, lerpInt(9, 25, difficulty))
		b := randRange(req.Rng, 2, lerpInt(9, 15, difficulty))
		prompt = fmt.Sprintf("%d × %d =", a, b)
		answer = a * b
	default:
		// Division is built backwards from a clean integer quotient.
		divisor := randRange(req.Rng, 2, lerpInt(9, 25, difficulty))
		quotient := randRange(req.Rng, 2, lerpInt(9, 25, difficulty))
		prompt = fmt.Sprintf("%d ÷ %d =", divisor*quotient, divisor)
		answer = quotient
	}

	return Spec{
		Domain:    DomainNumericalOperations,
		Topic:     TopicMentalArithmetic,
		Prompt:    prompt,
		Expected:  NumericExpected(float64(answer)),
		Tolerance: settings.Tolerance,
		TimeLimit: settings.TimeLimit,
	}, nil
}

// pickOperator draws an operator with a difficulty-weighted mix: easy
// favors addition and subtraction, hard favors multiplication and
// division.
func (g NumericalOperationsGenerator) pickOperator(rng *rand.Rand, difficulty float64) byte {
	r := rng.Float64()
	switch {
	case r < 0.45-0.20*difficulty:
		return '+'
	case r < 0.80-0.20*difficulty:
		return '-'
	case r < 0.92+0.04*difficulty:
		return '*'
	default:
		return '/'
	}
}

// operands draws the addition/subtraction operand pair.
func (g NumericalOperationsGenerator) operands(rng *rand.Rand, difficulty float64) (int, int) {
	hi := lerpInt(9, 99, difficulty)
	return randRange(rng, 1, hi), randRange(rng, 1, hi)
}

// randRange draws an integer in [lo, hi] inclusive.
func randRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
