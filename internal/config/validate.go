package config

import (
	"fmt"
	"strings"

	"cfast/internal/question"
)

// Issue captures a validation problem in a configuration file.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message covering every issue found.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("config validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// knownTopics lists the topics each built-in domain understands.
var knownTopics = map[string]map[string]struct{}{
	string(question.DomainAirborneNumerical): {
		string(question.TopicFuelEndurance): {},
		string(question.TopicParcelDrift):   {},
		string(question.TopicArrivalTime):   {},
	},
	string(question.DomainNumericalOperations): {
		string(question.TopicMentalArithmetic): {},
	},
}

// Validate checks a normalized configuration, collecting every issue
// rather than stopping at the first.
func Validate(cfg *Config) error {
	collector := &issueCollector{}
	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if cfg.Session.Questions <= 0 {
		collector.add("session.questions", "must be positive")
	}
	if cfg.Session.Difficulty < 0 || cfg.Session.Difficulty > 1 {
		collector.add("session.difficulty", "must be in [0, 1]")
	}

	if len(cfg.Domains) == 0 {
		collector.add("domains", "must include at least one entry")
	}
	for name, domain := range cfg.Domains {
		prefix := fmt.Sprintf("domains[%s]", name)
		topics, known := knownTopics[name]
		if !known {
			collector.add(prefix, fmt.Sprintf("unknown domain %q", name))
			continue
		}
		if len(domain.Topics) == 0 {
			collector.add(prefix+".topics", "must include at least one entry")
		}
		for topicName, topic := range domain.Topics {
			topicPrefix := fmt.Sprintf("%s.topics[%s]", prefix, topicName)
			if _, ok := topics[topicName]; !ok {
				collector.add(topicPrefix, fmt.Sprintf("unknown topic %q", topicName))
			}
			if topic.TimeLimit <= 0 {
				collector.add(topicPrefix+".time_limit", "must be positive")
			}
			if topic.Tolerance.Absolute < 0 {
				collector.add(topicPrefix+".tolerance.absolute", "must not be negative")
			}
			if topic.Tolerance.Relative < 0 {
				collector.add(topicPrefix+".tolerance.relative", "must not be negative")
			}
		}
	}

	return collector.result()
}
