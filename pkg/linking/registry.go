/*
Copyright 2025 The SeqLink Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package linking

import (
	"fmt"
	"sync"

	errutil "github.com/transitionnets/seqlink/pkg/util/error"
)

// FactoryFunc is the definition of the factory functions that are used to
// instantiate linkers for a channel.
type FactoryFunc func(name string, channel Channel) (SequenceLinker, error)

// Registration describes one linker strategy known to a registry.
type Registration struct {
	// Name uniquely identifies the strategy within a registry.
	Name string
	// Supports reports whether the strategy can serve the given channel.
	// Predicates must be total: a malformed channel yields false, never a
	// panic.
	Supports func(Channel) bool
	// Factory builds a linker for a supported channel.
	Factory FactoryFunc
}

// Registry is an ordered collection of linker registrations. Registration
// order is significant: Select scans entries in the order they were added
// and the first supporting entry wins.
//
// A registry is populated during process startup and read afterwards; reads
// are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries []Registration
	byName  map[string]int
}

// NewRegistry creates a new empty Registry and returns its pointer.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds a registration to the registry. It panics when the
// registration is incomplete or its name is already taken; both are process
// configuration errors no later call could repair.
func (r *Registry) Register(registration Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if registration.Name == "" {
		panic("linking: Register called with empty linker name")
	}
	if registration.Supports == nil || registration.Factory == nil {
		panic(fmt.Sprintf("linking: linker %q registered without supports predicate or factory", registration.Name))
	}
	if _, taken := r.byName[registration.Name]; taken {
		panic(fmt.Sprintf("linking: Register called twice for linker %q", registration.Name))
	}
	r.byName[registration.Name] = len(r.entries)
	r.entries = append(r.entries, registration)
}

// Select returns the name of the first registered linker that supports the
// channel, scanning in registration order. The result is deterministic for
// a given registry content and channel.
func (r *Registry) Select(channel Channel) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, registration := range r.entries {
		if registration.Supports(channel) {
			return registration.Name, nil
		}
	}
	return "", errutil.Error{Code: errutil.NotFound, Msg: fmt.Sprintf("no sequence linker supports channel (%s)", channel)}
}

// New builds a linker by registered name for the given channel. Names
// returned by Select on the same registry always resolve; any other name
// yields an UnknownLinker error.
func (r *Registry) New(name string, channel Channel) (SequenceLinker, error) {
	r.mu.RLock()
	index, ok := r.byName[name]
	var registration Registration
	if ok {
		registration = r.entries[index]
	}
	r.mu.RUnlock()

	if !ok {
		return nil, errutil.Error{Code: errutil.UnknownLinker, Msg: fmt.Sprintf("no sequence linker registered as %q", name)}
	}
	return registration.Factory(name, channel)
}

// Names returns the registered linker names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.entries))
	for i, registration := range r.entries {
		names[i] = registration.Name
	}
	return names
}

var defaultRegistry = NewRegistry()

// --- Default Registry Accessors ---

// DefaultRegistry returns the process-wide registry used by the package
// level functions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a registration to the default registry.
func Register(registration Registration) {
	defaultRegistry.Register(registration)
}

// Select returns the name of the first linker in the default registry that
// supports the channel.
func Select(channel Channel) (string, error) {
	return defaultRegistry.Select(channel)
}

// New builds a linker from the default registry by registered name.
func New(name string, channel Channel) (SequenceLinker, error) {
	return defaultRegistry.New(name, channel)
}
