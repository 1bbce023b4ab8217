package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the trainer configuration schema loaded from cfast.yml.
type Config struct {
	Version int                     `yaml:"version"`
	Session SessionConfig           `yaml:"session"`
	Store   StoreConfig             `yaml:"store"`
	Domains map[string]DomainConfig `yaml:"domains"`
}

// SessionConfig sets the defaults for a training session.
type SessionConfig struct {
	Questions  int     `yaml:"questions"`
	Difficulty float64 `yaml:"difficulty"`
	// Seed fixes the question stream for reproducible drills; zero
	// derives one from the clock at session start.
	Seed int64 `yaml:"seed"`
}

// StoreConfig locates the session history database. An empty path
// disables persistence.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// DomainConfig configures the topics available within one domain.
type DomainConfig struct {
	Topics map[string]TopicConfig `yaml:"topics"`
}

// TopicConfig carries grading parameters for one topic. Tolerance bands
// are deliberately configuration data, not constants: the candidate
// guide does not pin exact thresholds.
type TopicConfig struct {
	TimeLimit Duration        `yaml:"time_limit"`
	Tolerance ToleranceConfig `yaml:"tolerance"`
}

// ToleranceConfig is the allowed numeric deviation for a topic.
type ToleranceConfig struct {
	Absolute float64 `yaml:"absolute"`
	Relative float64 `yaml:"relative"`
}

// Duration decodes Go duration strings ("45s", "1m30s") from YAML.
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration back as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}
