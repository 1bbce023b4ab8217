package live

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"cfast/internal/engine"
	"cfast/internal/report"
)

var (
	promptStyle    = lipgloss.NewStyle().Bold(true)
	countdownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	urgentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	hintStyle      = lipgloss.NewStyle().Faint(true)
)

// View renders the current session state.
func (m Model) View() string {
	switch m.session.State() {
	case engine.StateIdle:
		return lipgloss.JoinVertical(lipgloss.Left,
			promptStyle.Render(fmt.Sprintf("%s: %d questions",
				m.session.Config().Domain, m.session.QuestionCount())),
			"",
			hintStyle.Render("Press Enter to start, Esc to quit."),
		) + "\n"

	case engine.StateQuestionActive:
		spec, ok := m.session.Current()
		if !ok {
			return ""
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			m.header(),
			"",
			spec.Prompt,
			"",
			m.countdown(),
			m.input.View(),
		) + "\n"

	case engine.StateRecorded:
		record, ok := m.session.LastRecord()
		if !ok {
			return ""
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			m.header(),
			"",
			report.FormatVerdict(record),
			"",
			hintStyle.Render("Press any key for the next question."),
		) + "\n"

	case engine.StateComplete, engine.StateAborted:
		lines := []string{report.FormatSummary(m.session.Summary())}
		if m.session.State() == engine.StateAborted {
			lines = append(lines, hintStyle.Render("Session aborted before all questions were asked."))
		}
		lines = append(lines, hintStyle.Render("Press Enter to exit."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
	}
	return ""
}

// header shows session progress.
func (m Model) header() string {
	return promptStyle.Render(fmt.Sprintf("Question %d of %d",
		m.session.Asked(), m.session.QuestionCount()))
}

// countdown renders the remaining time, switching style when under five
// seconds.
func (m Model) countdown() string {
	remaining := m.session.Remaining(m.now)
	text := fmt.Sprintf("Time left: %.1fs", remaining.Seconds())
	if remaining.Seconds() < 5 {
		return urgentStyle.Render(text)
	}
	return countdownStyle.Render(text)
}
