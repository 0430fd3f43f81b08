package docstate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Function represents a callable registered against constraint engines.
type Function func(args ...any) (any, error)

// FunctionRegistry stores custom validation functions keyed by name.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]Function),
	}
}

// DefaultFunctionRegistry returns a registry preloaded with the helpers the
// bundled document schemas rely on: nonEmpty, oneOf, and matches.
func DefaultFunctionRegistry() *FunctionRegistry {
	registry := NewFunctionRegistry()
	_ = registry.Register("nonEmpty", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("docstate: nonEmpty expects one argument")
		}
		value, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("docstate: nonEmpty expects a string")
		}
		return strings.TrimSpace(value) != "", nil
	})
	_ = registry.Register("oneOf", func(args ...any) (any, error) {
		if len(args) < 2 {
			return nil, fmt.Errorf("docstate: oneOf expects a value and at least one candidate")
		}
		for _, candidate := range args[1:] {
			if args[0] == candidate {
				return true, nil
			}
		}
		return false, nil
	})
	_ = registry.Register("matches", func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("docstate: matches expects a value and a pattern")
		}
		value, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("docstate: matches expects a string value")
		}
		pattern, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("docstate: matches expects a string pattern")
		}
		matched, err := regexp.MatchString(pattern, value)
		if err != nil {
			return nil, fmt.Errorf("docstate: matches: %w", err)
		}
		return matched, nil
	})
	return registry
}

// Register stores fn under name guarding against duplicates.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("docstate: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("docstate: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	key := strings.ToLower(name)
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("docstate: function %q already registered", name)
	}
	r.functions[key] = fn
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]Function, len(r.functions)),
	}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("docstate: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("docstate: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns registered function names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
