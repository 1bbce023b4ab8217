package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"cfast/internal/question"
)

// Load reads, parses, normalizes, and validates a configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration bytes with strict field checking, then
// normalizes and validates.
func Parse(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize trims keys and fills defaults before validation.
func Normalize(cfg *Config) {
	if cfg.Session.Questions == 0 {
		cfg.Session.Questions = 10
	}
	normalized := make(map[string]DomainConfig, len(cfg.Domains))
	for name, domain := range cfg.Domains {
		topics := make(map[string]TopicConfig, len(domain.Topics))
		for topic, tc := range domain.Topics {
			topics[strings.TrimSpace(topic)] = tc
		}
		domain.Topics = topics
		normalized[strings.TrimSpace(name)] = domain
	}
	cfg.Domains = normalized
}

// Settings converts a domain's topic configuration into the grading
// parameters the engine consumes.
func (c Config) Settings(domain question.Domain) (map[question.Topic]question.TopicSettings, error) {
	dc, ok := c.Domains[string(domain)]
	if !ok {
		return nil, fmt.Errorf("domain %q is not configured", domain)
	}
	settings := make(map[question.Topic]question.TopicSettings, len(dc.Topics))
	for topic, tc := range dc.Topics {
		settings[question.Topic(topic)] = question.TopicSettings{
			TimeLimit: time.Duration(tc.TimeLimit),
			Tolerance: question.Tolerance{
				Absolute: tc.Tolerance.Absolute,
				Relative: tc.Tolerance.Relative,
			},
		}
	}
	return settings, nil
}
