// Package identifiers provides a registry of identifier systems, supporting
// the validation and sanitisation of system/value tuples in which the system
// is a URI naming the issuing authority and the value is the identifier
// itself.

package identifiers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// System represents an identifier system registered with the registry
type System struct {
	Name string
	URI  string
}

// Validator validates the value of an identifier within a single system,
// returning a sanitised version of that value suitable for storage or
// display.
type Validator func(ctx context.Context, value string) (string, error)

var (
	systemsMu    sync.RWMutex
	systems      = make(map[string]System)
	validatorsMu sync.RWMutex
	validators   = make(map[string]Validator)
)

// ErrUnknownSystem is an error for when a system is not registered
var ErrUnknownSystem = errors.New("unknown identifier system")

// ErrNoValidator is an error for when no validator is registered for the specified URI
var ErrNoValidator = errors.New("no validator for uri")

// Register registers an identifier system with the registry
func Register(name string, uri string) {
	systemsMu.Lock()
	defer systemsMu.Unlock()
	systems[uri] = System{Name: name, URI: uri}
}

// RegisterValidator registers a handler to validate values for the specified system
func RegisterValidator(uri string, f Validator) {
	validatorsMu.Lock()
	defer validatorsMu.Unlock()
	if _, dup := validators[uri]; dup {
		panic("identifiers: register validator called twice for URI " + uri)
	}
	validators[uri] = f
}

// Validate validates the specified system/value tuple, returning a sanitised
// version of the value
func Validate(ctx context.Context, uri string, value string) (string, error) {
	systemsMu.RLock()
	_, registered := systems[uri]
	systemsMu.RUnlock()
	if !registered {
		return "", fmt.Errorf("unable to validate '%s|%s': %w", uri, value, ErrUnknownSystem)
	}
	validatorsMu.RLock()
	validator, ok := validators[uri]
	validatorsMu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unable to validate '%s|%s': %w", uri, value, ErrNoValidator)
	}
	return validator(ctx, value)
}

// LookupSystem finds a registered system by its URI or, failing that, by its
// name, case-insensitively
func LookupSystem(s string) (System, bool) {
	systemsMu.RLock()
	defer systemsMu.RUnlock()
	if system, ok := systems[s]; ok {
		return system, true
	}
	for _, system := range systems {
		if strings.EqualFold(system.Name, s) {
			return system, true
		}
	}
	return System{}, false
}

// ListSystems returns the registered identifier systems, ordered by URI
func ListSystems() []System {
	systemsMu.RLock()
	defer systemsMu.RUnlock()
	result := make([]System, 0, len(systems))
	for _, system := range systems {
		result = append(result, system)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].URI < result[j].URI })
	return result
}
