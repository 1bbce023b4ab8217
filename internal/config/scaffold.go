package config

import (
	"fmt"
	"os"
)

// DefaultYAML is the configuration written by `cfast init`. The
// tolerance bands are illustrative, not authoritative; adjust them to
// the candidate guide you are training against.
const DefaultYAML = `version: 1

session:
  questions: 10
  difficulty: 0.5
  # seed: 0 uses a fresh question stream each run; set a value to drill
  # the same questions repeatedly.
  seed: 0

store:
  # Session history database. Leave empty to disable persistence.
  path: cfast.duckdb

domains:
  airborne-numerical:
    topics:
      fuel-endurance:
        time_limit: 45s
        tolerance:
          absolute: 0.05
      parcel-drift:
        time_limit: 60s
        tolerance:
          relative: 0.05
      arrival-time:
        time_limit: 90s
  numerical-operations:
    topics:
      # Mental arithmetic answers are exact integers: no tolerance band.
      mental-arithmetic:
        time_limit: 20s
`

// Scaffold writes the default configuration file. It refuses to
// overwrite an existing file.
func Scaffold(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultYAML), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
