package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"cfast/internal/clock"
	"cfast/internal/config"
	"cfast/internal/engine"
	"cfast/internal/question"
	"cfast/internal/report"
	"cfast/internal/store"
	"cfast/internal/ui/live"
)

// trainInput allows tests to override stdin for the plain session loop.
var trainInput io.Reader = os.Stdin

// runLiveSession runs the Bubble Tea UI; a seam for tests.
var runLiveSession = func(session *engine.Session, stdout io.Writer) error {
	model := live.NewModel(session, clock.Real{}, live.Options{})
	program := tea.NewProgram(model, tea.WithOutput(stdout))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("live ui: %w", err)
	}
	if m, ok := final.(live.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

func runTrain(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "cfast.yml", "Path to cfast.yml")
		domain := fs.String("domain", string(question.DomainAirborneNumerical), "Question domain")
		topic := fs.String("topic", "", "Restrict the session to one topic")
		questions := fs.Int("questions", 0, "Number of questions (0 uses the config)")
		difficulty := fs.Float64("difficulty", -1, "Difficulty in [0,1] (-1 uses the config)")
		seed := fs.Int64("seed", 0, "Random seed (0 uses the config)")
		uiMode := fs.String("ui", "auto", "UI mode: auto, live, or plain")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		cfg, err := loadOrDefault(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		settings, err := cfg.Settings(question.Domain(*domain))
		if err != nil {
			fmt.Fprintf(stderr, "Train failed: %v\n", err)
			return ExitError
		}

		sessionCfg := engine.Config{
			Domain:     question.Domain(*domain),
			Topic:      question.Topic(*topic),
			Questions:  cfg.Session.Questions,
			Difficulty: cfg.Session.Difficulty,
			Seed:       cfg.Session.Seed,
			Settings:   settings,
		}
		if *questions > 0 {
			sessionCfg.Questions = *questions
		}
		if *difficulty >= 0 {
			sessionCfg.Difficulty = *difficulty
		}
		if *seed != 0 {
			sessionCfg.Seed = *seed
		}

		session, err := engine.NewSession(question.DefaultRegistry(), clock.Real{}, sessionCfg)
		if err != nil {
			fmt.Fprintf(stderr, "Train failed: %v\n", err)
			return ExitError
		}

		decision, err := resolveUIMode(*uiMode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		if decision.useLive {
			err = runLiveSession(session, stdout)
		} else {
			err = runPlainSession(session, trainInput, stdout)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Train failed: %v\n", err)
			return ExitError
		}

		if !decision.useLive {
			fmt.Fprint(stdout, report.FormatSummary(session.Summary()))
		}

		if cfg.Store.Path != "" && len(session.Records()) > 0 {
			if err := saveSession(cfg.Store.Path, session); err != nil {
				fmt.Fprintf(stderr, "Failed to save session: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Saved session %s\n", session.ID())
		}
		return ExitOK
	}
}

// loadOrDefault loads the config file, falling back to built-in
// defaults when the default path does not exist.
func loadOrDefault(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if path == "cfast.yml" && errors.Is(err, os.ErrNotExist) {
		return config.Parse([]byte(config.DefaultYAML))
	}
	return config.Config{}, err
}

// runPlainSession drives a session over line-oriented stdin for
// non-TTY use. Answers are judged against the wall clock, so a reply
// typed after the limit still times out.
func runPlainSession(session *engine.Session, in io.Reader, stdout io.Writer) error {
	reader := bufio.NewReader(in)
	if err := session.Start(); err != nil {
		return err
	}
	for {
		switch session.State() {
		case engine.StateQuestionActive:
			spec, ok := session.Current()
			if !ok {
				return fmt.Errorf("no active question")
			}
			fmt.Fprintf(stdout, "\nQuestion %d of %d (%.0fs limit)\n%s\n> ",
				session.Asked(), session.QuestionCount(),
				spec.TimeLimit.Seconds(), spec.Prompt)
			line, err := reader.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return session.Abort()
				}
				return fmt.Errorf("read answer: %w", err)
			}
			if err := session.Submit(strings.TrimRight(line, "\r\n")); err != nil {
				return err
			}
		case engine.StateRecorded:
			if record, ok := session.LastRecord(); ok {
				fmt.Fprintf(stdout, "%s\n", report.FormatVerdict(record))
			}
			if err := session.Next(); err != nil {
				return err
			}
		case engine.StateComplete, engine.StateAborted:
			return nil
		default:
			return fmt.Errorf("unexpected session state %s", session.State())
		}
	}
}

// saveSession persists a finished session's summary and records.
func saveSession(path string, session *engine.Session) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return store.SaveSession(context.Background(), db, session.ID(), session.Summary(), session.Records())
}
