// Package evaluator provides the method registry infrastructure for
// declarative method definitions. The registries are the language's
// dispatch table: (receiver type, method name) resolves to exactly one
// entry, and operator syntax desugars onto the same table.
package evaluator

import (
	"sort"
	"strconv"
	"strings"
)

// MethodFunc is the signature for all method implementations.
// The receiver is passed as an Object to allow uniform handling across types.
// Methods that don't need env can ignore that parameter.
type MethodFunc func(receiver Object, args []Object, env *Environment) Object

// MethodEntry defines a single method with its implementation and metadata.
type MethodEntry struct {
	Fn          MethodFunc
	Arity       string // "0", "1", "0-1", "1+", etc.
	Description string
}

// MethodRegistry maps method names to their entries for a type.
type MethodRegistry map[string]MethodEntry

// Names returns a sorted list of method names in this registry.
// Used for fuzzy matching in error messages.
func (r MethodRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the method entry for the given name, if it exists.
func (r MethodRegistry) Get(name string) (MethodEntry, bool) {
	entry, ok := r[name]
	return entry, ok
}

// typeRegistries maps type names to their method registries.
// Populated during init and never mutated afterwards, so concurrent
// evaluations can read it without locking.
var typeRegistries = map[string]MethodRegistry{}

// RegisterMethodRegistry registers a method registry for a type.
// Called during init to populate the master registry.
func RegisterMethodRegistry(typeName string, registry MethodRegistry) {
	typeRegistries[typeName] = registry
}

// GetRegistryForType returns the method registry for a type, or nil if not found.
func GetRegistryForType(typeName string) MethodRegistry {
	return typeRegistries[typeName]
}

// checkArity validates that the argument count matches the arity specification.
// Arity specs: "0", "1", "2", "0-1", "1-2", "1+", "0+", etc.
func checkArity(spec string, got int) bool {
	spec = strings.TrimSpace(spec)

	// Exact match: "0", "1", "2", etc.
	if exact, err := strconv.Atoi(spec); err == nil {
		return got == exact
	}

	// Range: "0-1", "1-2", "0-2", etc.
	if strings.Contains(spec, "-") {
		parts := strings.Split(spec, "-")
		if len(parts) == 2 {
			minVal, errMin := strconv.Atoi(parts[0])
			maxVal, errMax := strconv.Atoi(parts[1])
			if errMin == nil && errMax == nil {
				return got >= minVal && got <= maxVal
			}
		}
	}

	// Variadic: "1+", "0+", "2+", etc.
	if suffix, found := strings.CutSuffix(spec, "+"); found {
		minVal, err := strconv.Atoi(suffix)
		if err == nil {
			return got >= minVal
		}
	}

	// Unknown spec - be permissive
	return true
}

// newArityErrorFromSpec creates an arity error based on the spec string.
func newArityErrorFromSpec(method, spec string, got int) *Error {
	spec = strings.TrimSpace(spec)

	if exact, err := strconv.Atoi(spec); err == nil {
		return newArityError(method, got, exact)
	}

	if strings.Contains(spec, "-") {
		parts := strings.Split(spec, "-")
		if len(parts) == 2 {
			minVal, errMin := strconv.Atoi(parts[0])
			maxVal, errMax := strconv.Atoi(parts[1])
			if errMin == nil && errMax == nil {
				return newArityErrorRange(method, got, minVal, maxVal)
			}
		}
	}

	if suffix, found := strings.CutSuffix(spec, "+"); found {
		minVal, err := strconv.Atoi(suffix)
		if err == nil {
			return newArityErrorMin(method, got, minVal)
		}
	}

	return newArityError(method, got, 0)
}

// dispatchFromRegistry handles method dispatch using a registry.
// Returns nil if the method is not found (caller should handle unknown method error).
func dispatchFromRegistry(registry MethodRegistry, receiver Object, method string, args []Object, env *Environment) Object {
	entry, ok := registry.Get(method)
	if !ok {
		return nil // Method not found - caller handles error
	}

	if !checkArity(entry.Arity, len(args)) {
		return newArityErrorFromSpec(method, entry.Arity, len(args))
	}

	return entry.Fn(receiver, args, env)
}
