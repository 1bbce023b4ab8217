// Package live renders a training session in the terminal. The model
// owns no timing logic: it polls the engine with the current time on
// every tick and renders whatever state comes back.
package live

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cfast/internal/clock"
	"cfast/internal/engine"
)

// Model drives one session through Bubble Tea.
type Model struct {
	session      *engine.Session
	clk          clock.Clock
	input        textinput.Model
	tickInterval time.Duration
	now          time.Time
	width        int
	err          error
}

// Options configures the live session UI.
type Options struct {
	TickInterval time.Duration
}

// NewModel constructs a live UI for a session in the Idle state.
func NewModel(session *engine.Session, clk clock.Clock, opts Options) Model {
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = 100 * time.Millisecond
	}
	input := textinput.New()
	input.Placeholder = "answer"
	input.CharLimit = 32
	input.Focus()
	return Model{
		session:      session,
		clk:          clk,
		input:        input,
		tickInterval: tickInterval,
		now:          clk.Now(),
	}
}

// Err returns the first engine error encountered, if any.
func (m Model) Err() error {
	return m.err
}

// Init starts the session and the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick(m.tickInterval))
}

// tickMsg carries a clock tick for countdown polling.
type tickMsg time.Time

// tick emits a periodic tick message.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update consumes key presses and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil

	case tickMsg:
		m.now = m.clk.Now()
		if _, err := m.session.Tick(m.now); err != nil {
			m.err = err
			return m, tea.Quit
		}
		if m.session.State() == engine.StateRecorded {
			m.input.Reset()
		}
		return m, tick(m.tickInterval)

	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

// handleKey routes a key press according to the session state.
func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		switch m.session.State() {
		case engine.StateComplete, engine.StateAborted:
		default:
			if err := m.session.Abort(); err != nil {
				m.err = err
			}
		}
		return m, tea.Quit

	case tea.KeyEnter:
		switch m.session.State() {
		case engine.StateIdle:
			if err := m.session.Start(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		case engine.StateQuestionActive:
			// The buffer already mirrors the field; finalize it as is.
			if err := m.session.Submit(nil); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.input.Reset()
		case engine.StateRecorded:
			if err := m.session.Next(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		case engine.StateComplete, engine.StateAborted:
			return m, tea.Quit
		}
		return m, nil
	}

	if m.session.State() == engine.StateQuestionActive {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(key)
		// Mirror the edited field into the engine's buffer so a timeout
		// captures the partial answer.
		m.session.Replace(m.input.Value())
		return m, cmd
	}
	if m.session.State() == engine.StateRecorded {
		// Any key advances past the feedback screen.
		if err := m.session.Next(); err != nil {
			m.err = err
			return m, tea.Quit
		}
	}
	return m, nil
}
