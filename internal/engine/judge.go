package engine

import (
	"math"
	"strconv"
	"strings"
	"time"

	"cfast/internal/question"
)

// Reason classifies a judged outcome. These are normal verdict values,
// never errors.
type Reason string

// Verdict reasons.
const (
	ReasonMatch         Reason = "MATCH"
	ReasonToleranceFail Reason = "TOLERANCE_FAIL"
	ReasonTypeMismatch  Reason = "TYPE_MISMATCH"
	ReasonTimeout       Reason = "TIMEOUT"
)

// Verdict is the judged outcome of one answer.
type Verdict struct {
	Correct bool
	Reason  Reason
	Elapsed time.Duration
}

// Judge grades a finalized answer against its question spec.
//
// Decision order: timeout first, then parseability against the expected
// value's type, then the tolerance band (numeric) or a trimmed
// case-insensitive match (text). A wrong but well-formed text answer
// reports ToleranceFail, the generic wrong-value reason.
func Judge(spec question.Spec, answer RawAnswer) Verdict {
	verdict := Verdict{Elapsed: answer.SubmittedAt}
	if answer.TimedOut {
		verdict.Reason = ReasonTimeout
		return verdict
	}

	text := strings.TrimSpace(answer.Text)
	if !spec.Expected.Numeric {
		if strings.EqualFold(text, strings.TrimSpace(spec.Expected.Text)) {
			verdict.Correct = true
			verdict.Reason = ReasonMatch
		} else {
			verdict.Reason = ReasonToleranceFail
		}
		return verdict
	}

	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil {
		verdict.Reason = ReasonTypeMismatch
		return verdict
	}
	if math.Abs(parsed-spec.Expected.Number) <= spec.Tolerance.Allowed(spec.Expected.Number) {
		verdict.Correct = true
		verdict.Reason = ReasonMatch
	} else {
		verdict.Reason = ReasonToleranceFail
	}
	return verdict
}
