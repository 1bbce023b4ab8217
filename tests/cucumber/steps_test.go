package cucumber

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cucumber/godog"

	"cfast/internal/engine"
	"cfast/internal/question"
	"cfast/internal/testutil"
)

// fixedGenerator produces the same fuel endurance question every time
// so scenario answers are predictable.
type fixedGenerator struct {
	limit time.Duration
}

func (g fixedGenerator) Generate(question.Request) (question.Spec, error) {
	return question.Spec{
		Domain:    question.DomainAirborneNumerical,
		Topic:     question.TopicFuelEndurance,
		Prompt:    "Fuel on board: 300 units. Consumption: 120 units/hr.\nEndurance in hours?",
		Expected:  question.NumericExpected(2.5),
		Tolerance: question.Tolerance{Absolute: 0.05},
		TimeLimit: g.limit,
	}, nil
}

// featureState holds scenario state for session feature tests.
type featureState struct {
	clk     *testutil.FakeClock
	session *engine.Session
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a training session of (\d+) fuel endurance questions with a (\d+) second limit$`, state.aTrainingSession)
	ctx.Step(`^the session has started$`, state.theSessionHasStarted)
	ctx.Step(`^I answer "([^"]*)" after (\d+) seconds$`, state.iAnswerAfter)
	ctx.Step(`^I let the question time out$`, state.iLetTheQuestionTimeOut)
	ctx.Step(`^I abort the session$`, state.iAbortTheSession)
	ctx.Step(`^the session is complete$`, state.theSessionIsComplete)
	ctx.Step(`^the session state is "([^"]*)"$`, state.theSessionStateIs)
	ctx.Step(`^(\d+) questions are recorded$`, state.questionsAreRecorded)
	ctx.Step(`^the accuracy is (\d+)%$`, state.theAccuracyIs)
	ctx.Step(`^the last answer is judged "([^"]*)"$`, state.theLastAnswerIsJudged)
}

func (s *featureState) reset() {
	s.clk = nil
	s.session = nil
}

func (s *featureState) aTrainingSession(count, limitSeconds int) error {
	s.clk = testutil.NewFakeClock(time.Unix(1_700_000_000, 0))
	limit := time.Duration(limitSeconds) * time.Second
	registry := question.NewRegistry()
	registry.Register(question.DomainAirborneNumerical, fixedGenerator{limit: limit})
	session, err := engine.NewSession(registry, s.clk, engine.Config{
		Domain:    question.DomainAirborneNumerical,
		Questions: count,
		Seed:      1,
		Settings: map[question.Topic]question.TopicSettings{
			question.TopicFuelEndurance: {
				TimeLimit: limit,
				Tolerance: question.Tolerance{Absolute: 0.05},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	s.session = session
	return nil
}

func (s *featureState) theSessionHasStarted() error {
	return s.session.Start()
}

func (s *featureState) iAnswerAfter(answer string, seconds int) error {
	s.clk.Advance(time.Duration(seconds) * time.Second)
	if err := s.session.Submit(answer); err != nil {
		return err
	}
	return s.advanceIfRecorded()
}

func (s *featureState) iLetTheQuestionTimeOut() error {
	spec, ok := s.session.Current()
	if !ok {
		return fmt.Errorf("no active question to time out")
	}
	s.clk.Advance(spec.TimeLimit + time.Second)
	expired, err := s.session.Tick(s.clk.Now())
	if err != nil {
		return err
	}
	if !expired {
		return fmt.Errorf("expected the question to expire")
	}
	return s.advanceIfRecorded()
}

func (s *featureState) iAbortTheSession() error {
	return s.session.Abort()
}

// advanceIfRecorded moves past the feedback state. Completion is left
// for the assertion steps to observe.
func (s *featureState) advanceIfRecorded() error {
	if s.session.State() != engine.StateRecorded {
		return nil
	}
	return s.session.Next()
}

func (s *featureState) theSessionIsComplete() error {
	return s.theSessionStateIs(string(engine.StateComplete))
}

func (s *featureState) theSessionStateIs(want string) error {
	if got := string(s.session.State()); got != want {
		return fmt.Errorf("expected state %q, got %q", want, got)
	}
	return nil
}

func (s *featureState) questionsAreRecorded(count int) error {
	if got := len(s.session.Records()); got != count {
		return fmt.Errorf("expected %d records, got %d", count, got)
	}
	return nil
}

func (s *featureState) theAccuracyIs(percent int) error {
	summary := s.session.Summary()
	want := float64(percent) / 100
	if math.Abs(summary.Accuracy-want) > 1e-9 {
		return fmt.Errorf("expected accuracy %.2f, got %.2f", want, summary.Accuracy)
	}
	return nil
}

func (s *featureState) theLastAnswerIsJudged(reason string) error {
	record, ok := s.session.LastRecord()
	if !ok {
		return fmt.Errorf("no recorded answer")
	}
	if string(record.Verdict.Reason) != reason {
		return fmt.Errorf("expected reason %q, got %q", reason, record.Verdict.Reason)
	}
	return nil
}
