package engine

import (
	"fmt"
	"time"

	"cfast/internal/question"
)

// Record is one fully judged question: its spec, the finalized answer,
// and the verdict.
type Record struct {
	Spec    question.Spec
	Answer  RawAnswer
	Verdict Verdict
}

// Summary aggregates a session's outcomes. It may describe a partial
// session; Scorer.Summarize is idempotent.
type Summary struct {
	Domain    question.Domain
	Total     int
	Correct   int
	Incorrect int
	Timeouts  int
	Accuracy  float64
	// MeanElapsed covers non-timeout answers only, so time-limit caps do
	// not skew the latency statistic.
	MeanElapsed time.Duration
	// Throughput is questions recorded per minute of session time.
	Throughput float64
	Elapsed    time.Duration
}

// Scorer accumulates per-question records into running session
// statistics. It belongs to exactly one session and is not safe for
// concurrent use; the engine is single-threaded by design.
type Scorer struct {
	domain    question.Domain
	records   []Record
	correct   int
	incorrect int
	timeouts  int
}

// NewScorer creates a scorer for one session in the given domain.
func NewScorer(domain question.Domain) *Scorer {
	return &Scorer{domain: domain}
}

// Record appends a judged question and updates the running counters.
// The counter invariant correct+incorrect+timeouts == len(records) is
// checked after every append; a violation is a programming error and is
// returned rather than swallowed.
func (s *Scorer) Record(spec question.Spec, answer RawAnswer, verdict Verdict) error {
	s.records = append(s.records, Record{Spec: spec, Answer: answer, Verdict: verdict})
	switch {
	case verdict.Reason == ReasonTimeout:
		s.timeouts++
	case verdict.Correct:
		s.correct++
	default:
		s.incorrect++
	}
	if s.correct+s.incorrect+s.timeouts != len(s.records) {
		return fmt.Errorf("scorer: counters diverged from record count (%d+%d+%d != %d)",
			s.correct, s.incorrect, s.timeouts, len(s.records))
	}
	return nil
}

// Records returns a copy of the judged questions so far, in order.
func (s *Scorer) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Summarize produces the session statistics over the records so far.
// It can be called mid-session for a partial summary and again at the
// end; it never mutates the scorer.
func (s *Scorer) Summarize(elapsed time.Duration) Summary {
	summary := Summary{
		Domain:    s.domain,
		Total:     len(s.records),
		Correct:   s.correct,
		Incorrect: s.incorrect,
		Timeouts:  s.timeouts,
		Elapsed:   elapsed,
	}
	if summary.Total > 0 {
		summary.Accuracy = float64(s.correct) / float64(summary.Total)
	}
	var answered int
	var answeredTime time.Duration
	for _, record := range s.records {
		if record.Answer.TimedOut {
			continue
		}
		answered++
		answeredTime += record.Answer.SubmittedAt
	}
	if answered > 0 {
		summary.MeanElapsed = answeredTime / time.Duration(answered)
	}
	if elapsed > 0 {
		summary.Throughput = float64(summary.Total) / elapsed.Minutes()
	}
	return summary
}
