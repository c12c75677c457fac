// Package observe provides the notification core shared by the observable
// containers: update-type categories, change records, and a callback registry
// with handle-based removal and owner-scoped deregistration.
//
// Everything here is synchronous and single-threaded. Callbacks run inline on
// the goroutine that performs the mutation, and registries take no locks.
package observe

import "github.com/google/uuid"

// UpdateType categorizes a container mutation.
type UpdateType int

const (
	Added UpdateType = iota
	Updated
	Removed
)

var updateTypes = [...]UpdateType{Added, Updated, Removed}

func (t UpdateType) String() string {
	switch t {
	case Added:
		return "added"
	case Updated:
		return "updated"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Change describes a single container mutation delivered to observers.
// For Added, Previous is the zero value; for Removed, Value is the zero value.
type Change[K comparable, V any] struct {
	Key      K
	Previous V
	Value    V
	Type     UpdateType
}

// Callback receives a change notification.
type Callback[K comparable, V any] func(Change[K, V])

// Handle identifies one registration. Handles are unique per registration, so
// the same callback may be registered any number of times and each
// StopObserving call removes exactly one registration.
type Handle string

func newHandle() Handle {
	return Handle(uuid.Must(uuid.NewV7()).String())
}
