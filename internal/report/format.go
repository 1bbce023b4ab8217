package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"cfast/internal/engine"
	"cfast/internal/store"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// FormatVerdict renders one judged question as a feedback line.
func FormatVerdict(record engine.Record) string {
	if record.Verdict.Correct {
		return correctStyle.Render(fmt.Sprintf("Correct (%.1fs)", record.Verdict.Elapsed.Seconds()))
	}
	detail := ""
	switch record.Verdict.Reason {
	case engine.ReasonTimeout:
		detail = "time expired"
	case engine.ReasonTypeMismatch:
		detail = fmt.Sprintf("could not read %q as a number", strings.TrimSpace(record.Answer.Text))
	default:
		detail = fmt.Sprintf("you answered %q", strings.TrimSpace(record.Answer.Text))
	}
	return wrongStyle.Render(fmt.Sprintf(
		"Incorrect: %s. Expected %s.", detail, record.Spec.Expected.String(),
	))
}

// FormatSummary renders session statistics as a block of lines.
func FormatSummary(summary engine.Summary) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Session results: %s", summary.Domain)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Questions:  %d\n", summary.Total)
	fmt.Fprintf(&b, "Correct:    %d\n", summary.Correct)
	fmt.Fprintf(&b, "Incorrect:  %d\n", summary.Incorrect)
	fmt.Fprintf(&b, "Timeouts:   %d\n", summary.Timeouts)
	fmt.Fprintf(&b, "Accuracy:   %.0f%%\n", summary.Accuracy*100)
	fmt.Fprintf(&b, "Mean time:  %s\n", formatSeconds(summary.MeanElapsed))
	fmt.Fprintf(&b, "Throughput: %.1f/min\n", summary.Throughput)
	return b.String()
}

// FormatHistory renders stored sessions as an aligned table, newest
// first.
func FormatHistory(rows []store.SessionRow) string {
	if len(rows) == 0 {
		return "No sessions recorded yet.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s  %-20s  %5s  %7s  %8s  %9s\n",
		"WHEN", "DOMAIN", "TOTAL", "CORRECT", "ACCURACY", "MEAN TIME")
	for _, row := range rows {
		fmt.Fprintf(&b, "%-20s  %-20s  %5d  %7d  %7.0f%%  %9s\n",
			row.CreatedAt.Format("2006-01-02 15:04"),
			row.Domain,
			row.Total,
			row.Correct,
			row.Accuracy*100,
			formatSeconds(row.MeanElapsed),
		)
	}
	return b.String()
}

// formatSeconds prints a duration with one decimal of seconds.
func formatSeconds(d time.Duration) string {
	if d == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
