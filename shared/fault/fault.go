// Package fault provides the injected failure capability used to exercise the
// compensation path. Production wiring uses Disabled; test mode installs a
// PrefixInjector so no step carries implicit test-only branching.
package fault

import "strings"

// Injector decides whether a step should fail for a given key. The decision
// is consulted after the step's durable write, so a triggered fault still
// leaves the step's own record behind for compensation to find.
type Injector interface {
	ShouldFail(step string, key string) bool
}

// Disabled never fails anything
type Disabled struct{}

func (Disabled) ShouldFail(string, string) bool { return false }

// PrefixInjector fails a step when the key starts with the prefix configured
// for that step. Reproduces the legacy order-id prefix convention.
type PrefixInjector struct {
	prefixes map[string]string
}

// NewPrefixInjector creates an injector from a step-name to prefix mapping
func NewPrefixInjector(prefixes map[string]string) *PrefixInjector {
	copied := make(map[string]string, len(prefixes))
	for step, prefix := range prefixes {
		copied[step] = prefix
	}
	return &PrefixInjector{prefixes: copied}
}

func (i *PrefixInjector) ShouldFail(step string, key string) bool {
	prefix, ok := i.prefixes[step]
	if !ok || prefix == "" {
		return false
	}
	return strings.HasPrefix(key, prefix)
}
