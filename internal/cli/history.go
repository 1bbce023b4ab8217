package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"cfast/internal/report"
	"cfast/internal/store"
)

func runHistory(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "cfast.yml", "Path to cfast.yml")
		limit := fs.Int("limit", 20, "Maximum sessions to show")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		cfg, err := loadOrDefault(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		if cfg.Store.Path == "" {
			fmt.Fprintln(stderr, "History unavailable: no store path configured.")
			return ExitError
		}

		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open history: %v\n", err)
			return ExitError
		}
		defer db.Close()

		rows, err := store.ListSessions(context.Background(), db, *limit)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to list sessions: %v\n", err)
			return ExitError
		}
		fmt.Fprint(stdout, report.FormatHistory(rows))
		return ExitOK
	}
}
