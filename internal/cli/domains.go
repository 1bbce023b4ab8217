package cli

import (
	"fmt"
	"io"

	"cfast/internal/question"
)

func runDomains(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		if len(args) > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		for _, domain := range question.DefaultRegistry().Domains() {
			fmt.Fprintln(stdout, domain)
		}
		return ExitOK
	}
}
