package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"cfast/internal/clock"
	"cfast/internal/question"
)

// State names a position in the session lifecycle.
type State string

// Session states. Complete and Aborted are terminal; a new session
// requires a fresh Session instance.
const (
	StateIdle           State = "idle"
	StateQuestionActive State = "question-active"
	StateJudging        State = "judging"
	StateRecorded       State = "recorded"
	StateComplete       State = "complete"
	StateAborted        State = "aborted"
)

// Config describes one training session.
type Config struct {
	Domain     question.Domain
	Topic      question.Topic // optional topic hint
	Questions  int
	Difficulty float64
	// Seed fixes the question stream; zero derives one from the clock.
	Seed     int64
	Settings map[question.Topic]question.TopicSettings
}

// Session sequences question generation, timed input, judging, and
// scoring for one run:
//
//	Idle -> QuestionActive -> Judging -> Recorded -> {QuestionActive | Complete}
//
// plus Aborted, reachable from any non-terminal state. Judging and
// Recorded are traversed within the same call that finalizes an answer,
// so an answer is always judged and recorded before the session can
// move on; a new question cannot start until the prior record landed.
type Session struct {
	id         uuid.UUID
	cfg        Config
	registry   *question.Registry
	clk        clock.Clock
	rng        *rand.Rand
	controller *Controller
	scorer     *Scorer

	state      State
	asked      int
	startedAt  time.Time
	finishedAt time.Time
	lastRecord Record
	hasRecord  bool
}

// NewSession creates a session in the Idle state.
func NewSession(registry *question.Registry, clk clock.Clock, cfg Config) (*Session, error) {
	if registry == nil {
		return nil, fmt.Errorf("session: registry is required")
	}
	if clk == nil {
		return nil, fmt.Errorf("session: clock is required")
	}
	if cfg.Domain == "" {
		return nil, fmt.Errorf("session: domain is required")
	}
	if cfg.Questions <= 0 {
		return nil, fmt.Errorf("session: question count must be positive, got %d", cfg.Questions)
	}
	if len(cfg.Settings) == 0 {
		return nil, fmt.Errorf("session: no topic settings configured")
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = clk.Now().UnixNano()
	}
	return &Session{
		id:         uuid.New(),
		cfg:        cfg,
		registry:   registry,
		clk:        clk,
		rng:        rand.New(rand.NewSource(seed)),
		controller: NewController(clk),
		scorer:     NewScorer(cfg.Domain),
		state:      StateIdle,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Config returns the configuration the session was built with.
func (s *Session) Config() Config {
	return s.cfg
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Start begins the session and activates the first question.
func (s *Session) Start() error {
	if s.state != StateIdle {
		return &InvalidTransitionError{State: s.state, Op: "start"}
	}
	s.startedAt = s.clk.Now()
	return s.nextQuestion()
}

// Submit finalizes the active question with the candidate's input and
// drives it through judging and recording. The value may be any
// primitive; it is coerced to text at the boundary.
func (s *Session) Submit(value interface{}) error {
	if s.state != StateQuestionActive {
		return &InvalidTransitionError{State: s.state, Op: "submit"}
	}
	answer, err := s.controller.Submit(value)
	if err != nil {
		return err
	}
	return s.judgeAndRecord(answer)
}

// Push buffers partial input for the active question without
// finalizing. Inactive states ignore it, matching the controller.
func (s *Session) Push(value interface{}) {
	if s.state == StateQuestionActive {
		s.controller.Push(value)
	}
}

// Replace sets the active question's input buffer wholesale, for UIs
// that own an editable field.
func (s *Session) Replace(value interface{}) {
	if s.state == StateQuestionActive {
		s.controller.Replace(value)
	}
}

// Tick polls the countdown. When the active question's limit has
// passed, the buffered input finalizes as a timeout and is judged and
// recorded; Tick reports whether that happened. In every other state
// Tick is a no-op, so callers may drive it unconditionally from their
// render loop.
func (s *Session) Tick(now time.Time) (bool, error) {
	if s.state != StateQuestionActive {
		return false, nil
	}
	answer, expired := s.controller.Tick(now)
	if !expired {
		return false, nil
	}
	if err := s.judgeAndRecord(answer); err != nil {
		return false, err
	}
	return true, nil
}

// Next advances past a recorded question: to the next question if any
// remain, otherwise to Complete.
func (s *Session) Next() error {
	if s.state != StateRecorded {
		return &InvalidTransitionError{State: s.state, Op: "next"}
	}
	if s.asked >= s.cfg.Questions {
		s.state = StateComplete
		s.finishedAt = s.clk.Now()
		return nil
	}
	return s.nextQuestion()
}

// Abort ends the session early. The in-flight question is discarded
// without judging; records already taken stay untouched, so a partial
// summary remains valid. Aborting a terminal session is rejected.
func (s *Session) Abort() error {
	switch s.state {
	case StateComplete, StateAborted:
		return &InvalidTransitionError{State: s.state, Op: "abort"}
	}
	s.state = StateAborted
	s.finishedAt = s.clk.Now()
	return nil
}

// Current returns the active question spec for rendering.
func (s *Session) Current() (question.Spec, bool) {
	if s.state != StateQuestionActive {
		return question.Spec{}, false
	}
	return s.controller.spec, true
}

// Buffer returns the active question's input buffer.
func (s *Session) Buffer() string {
	return s.controller.Buffer()
}

// Remaining returns the time left for the active question.
func (s *Session) Remaining(now time.Time) time.Duration {
	return s.controller.Remaining(now)
}

// LastRecord returns the most recently recorded question, if any.
func (s *Session) LastRecord() (Record, bool) {
	return s.lastRecord, s.hasRecord
}

// Records returns all judged questions so far, in order.
func (s *Session) Records() []Record {
	return s.scorer.Records()
}

// Asked returns how many questions have been activated so far.
func (s *Session) Asked() int {
	return s.asked
}

// QuestionCount returns the configured session length.
func (s *Session) QuestionCount() int {
	return s.cfg.Questions
}

// Summary returns the running statistics. Valid mid-session (partial),
// after Complete, and after Abort.
func (s *Session) Summary() Summary {
	var elapsed time.Duration
	switch {
	case s.startedAt.IsZero():
	case !s.finishedAt.IsZero():
		elapsed = s.finishedAt.Sub(s.startedAt)
	default:
		elapsed = s.clk.Now().Sub(s.startedAt)
	}
	return s.scorer.Summarize(elapsed)
}

// nextQuestion pulls a fresh spec from the registry and arms the
// controller. Generator failures propagate to the caller, which decides
// whether to abort or restart.
func (s *Session) nextQuestion() error {
	spec, err := s.registry.Generate(s.cfg.Domain, question.Request{
		Topic:      s.cfg.Topic,
		Difficulty: s.cfg.Difficulty,
		Settings:   s.cfg.Settings,
		Rng:        s.rng,
	})
	if err != nil {
		return err
	}
	if err := s.controller.Start(spec); err != nil {
		return err
	}
	s.asked++
	s.state = StateQuestionActive
	return nil
}

// judgeAndRecord drives a finalized answer through Judging into
// Recorded. The ordering finalize -> judge -> record is enforced here;
// nothing else mutates the scorer.
func (s *Session) judgeAndRecord(answer RawAnswer) error {
	s.state = StateJudging
	spec := s.controller.spec
	verdict := Judge(spec, answer)
	if err := s.scorer.Record(spec, answer, verdict); err != nil {
		return err
	}
	s.lastRecord = Record{Spec: spec, Answer: answer, Verdict: verdict}
	s.hasRecord = true
	s.state = StateRecorded
	return nil
}
