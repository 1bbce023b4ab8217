package question

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

// Request carries the parameters for generating one question instance.
type Request struct {
	// Topic narrows generation to a single topic. Empty picks one of the
	// configured topics from the RNG.
	Topic Topic
	// Difficulty scales operand ranges, in [0, 1].
	Difficulty float64
	// Settings holds the configured grading parameters per topic.
	Settings map[Topic]TopicSettings
	// Rng is the seeded random stream owned by the session.
	Rng *rand.Rand
}

// Generator produces question instances for one domain. Generators are
// pure functions of the request's random stream.
type Generator interface {
	Generate(req Request) (Spec, error)
}

// UnsupportedDomainError reports a generate call for a domain with no
// registered generator.
type UnsupportedDomainError struct {
	Domain Domain
}

// Error describes the unsupported domain.
func (e *UnsupportedDomainError) Error() string {
	return fmt.Sprintf("no question generator registered for domain %q", e.Domain)
}

// Registry maps domains to their question generators.
type Registry struct {
	mu         sync.RWMutex
	generators map[Domain]Generator
}

// NewRegistry creates an empty generator registry.
func NewRegistry() *Registry {
	return &Registry{generators: map[Domain]Generator{}}
}

// Register installs or replaces the generator for a domain.
func (r *Registry) Register(domain Domain, gen Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[domain] = gen
}

// Domains returns the registered domains in sorted order.
func (r *Registry) Domains() []Domain {
	r.mu.RLock()
	defer r.mu.RUnlock()
	domains := make([]Domain, 0, len(r.generators))
	for domain := range r.generators {
		domains = append(domains, domain)
	}
	sort.Slice(domains, func(i, j int) bool { return domains[i] < domains[j] })
	return domains
}

// Generate produces a validated question instance for a domain.
func (r *Registry) Generate(domain Domain, req Request) (Spec, error) {
	r.mu.RLock()
	gen, ok := r.generators[domain]
	r.mu.RUnlock()
	if !ok {
		return Spec{}, &UnsupportedDomainError{Domain: domain}
	}
	spec, err := gen.Generate(req)
	if err != nil {
		return Spec{}, fmt.Errorf("generate %s question: %w", domain, err)
	}
	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// DefaultRegistry returns a registry with all built-in domains installed.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(DomainAirborneNumerical, AirborneGenerator{})
	registry.Register(DomainNumericalOperations, NumericalOperationsGenerator{})
	return registry
}
