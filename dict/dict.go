// Package dict provides an observable wrapper around a key-value map for
// game-object data binding. The wrapper owns only the observer registry; the
// backing map stays the caller's storage and must not be mutated externally
// for the wrapper's lifetime.
//
// Not safe for concurrent use. Notifications run inline during the mutating
// call, on the caller's goroutine; mutating the dictionary from inside a
// callback is unsupported.
package dict

import (
	"context"
	"fmt"
	"time"

	"github.com/playforge/databind/observability"
	"github.com/playforge/databind/observe"
)

// Dictionary wraps a map and notifies registered observers when entries are
// added, updated, or removed.
type Dictionary[K comparable, V any] struct {
	items    map[K]V
	registry *observe.Registry[K, V]
	source   string
	observer observability.Observer
}

// New creates a Dictionary over the given backing map. A nil backing map is
// replaced with an empty one. Events are discarded until the dictionary is
// constructed with NewWithConfig and a non-noop observer.
func New[K comparable, V any](backing map[K]V) *Dictionary[K, V] {
	if backing == nil {
		backing = make(map[K]V)
	}
	return &Dictionary[K, V]{
		items:    backing,
		registry: observe.NewRegistry[K, V](),
		source:   observe.DefaultConfig().Source,
		observer: observability.NoOpObserver{},
	}
}

// NewWithConfig creates a Dictionary with the merged config applied: the
// source label is used on emitted events and the named observer receives them.
func NewWithConfig[K comparable, V any](backing map[K]V, cfg observe.Config) (*Dictionary[K, V], error) {
	merged := observe.DefaultConfig()
	merged.Merge(&cfg)

	obs, err := observability.GetObserver(merged.Observer)
	if err != nil {
		return nil, fmt.Errorf("resolve observer: %w", err)
	}

	d := New(backing)
	d.source = merged.Source
	d.observer = obs
	return d, nil
}

// Len returns the number of entries.
func (d *Dictionary[K, V]) Len() int {
	return len(d.items)
}

// Get returns the value for key, or the zero value when absent.
func (d *Dictionary[K, V]) Get(key K) V {
	return d.items[key]
}

// TryGet returns the value for key and whether it is present.
func (d *Dictionary[K, V]) TryGet(key K) (V, bool) {
	v, ok := d.items[key]
	return v, ok
}

// Contains reports whether key is present.
func (d *Dictionary[K, V]) Contains(key K) bool {
	_, ok := d.items[key]
	return ok
}

// Keys returns the keys in unspecified order.
func (d *Dictionary[K, V]) Keys() []K {
	keys := make([]K, 0, len(d.items))
	for k := range d.items {
		keys = append(keys, k)
	}
	return keys
}

// Add stores a new entry and notifies Added observers with a zero previous
// value. Adding an existing key fails with ErrKeyExists.
func (d *Dictionary[K, V]) Add(key K, value V) error {
	if _, exists := d.items[key]; exists {
		return fmt.Errorf("%w: %v", ErrKeyExists, key)
	}

	d.items[key] = value
	var zero V
	d.registry.Notify(observe.Change[K, V]{Key: key, Previous: zero, Value: value, Type: observe.Added})
	d.emit(EventAdd, key, observe.Added)
	return nil
}

// Set stores an entry unconditionally and notifies Updated observers with the
// previous value, or the zero value when the key was absent.
func (d *Dictionary[K, V]) Set(key K, value V) {
	previous := d.items[key]
	d.items[key] = value
	d.registry.Notify(observe.Change[K, V]{Key: key, Previous: previous, Value: value, Type: observe.Updated})
	d.emit(EventSet, key, observe.Updated)
}

// Remove deletes an entry and notifies Removed observers with the previous
// value. Removing an absent key returns false without notifying.
func (d *Dictionary[K, V]) Remove(key K) bool {
	previous, exists := d.items[key]
	if !exists {
		return false
	}

	delete(d.items, key)
	var zero V
	d.registry.Notify(observe.Change[K, V]{Key: key, Previous: previous, Value: zero, Type: observe.Removed})
	d.emit(EventRemove, key, observe.Removed)
	return true
}

// Clear removes all entries. Observers are not notified per entry.
func (d *Dictionary[K, V]) Clear() {
	for k := range d.items {
		delete(d.items, k)
	}
	d.observer.OnEvent(context.Background(), observability.Event{
		Type:      EventClear,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    d.source,
		Data:      map[string]any{},
	})
}

// Observe registers fn for all mutations of the dictionary. The owner tags
// the registration for StopObservingAll.
func (d *Dictionary[K, V]) Observe(owner string, fn observe.Callback[K, V]) observe.Handle {
	return d.registry.Observe(owner, fn)
}

// ObserveKey registers fn for mutations of a single key.
func (d *Dictionary[K, V]) ObserveKey(owner string, key K, fn observe.Callback[K, V]) observe.Handle {
	return d.registry.ObserveKey(owner, key, fn)
}

// InvokeObserve invokes fn immediately with the current value tagged Updated,
// then registers it scoped to key. Fails with ErrKeyNotFound when key is
// absent.
func (d *Dictionary[K, V]) InvokeObserve(owner string, key K, fn observe.Callback[K, V]) (observe.Handle, error) {
	current, exists := d.items[key]
	if !exists {
		return "", fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}

	fn(observe.Change[K, V]{Key: key, Previous: current, Value: current, Type: observe.Updated})
	return d.registry.ObserveKey(owner, key, fn), nil
}

// InvokeUpdate notifies all Updated-category observers of key, scoped then
// global, with the current value as both previous and new. The data is not
// mutated. Fails with ErrKeyNotFound when key is absent.
func (d *Dictionary[K, V]) InvokeUpdate(key K) error {
	current, exists := d.items[key]
	if !exists {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}

	d.registry.Notify(observe.Change[K, V]{Key: key, Previous: current, Value: current, Type: observe.Updated})
	d.emit(EventInvoke, key, observe.Updated)
	return nil
}

// StopObserving removes exactly one registration by handle, reporting whether
// one was found.
func (d *Dictionary[K, V]) StopObserving(handle observe.Handle) bool {
	return d.registry.StopObserving(handle)
}

// StopObservingAll removes every registration made by the named owners, or
// all registrations when called with no arguments.
func (d *Dictionary[K, V]) StopObservingAll(owners ...string) {
	d.registry.StopObservingAll(owners...)
}

// Metrics returns a snapshot of the dictionary's registry counters.
func (d *Dictionary[K, V]) Metrics() observe.MetricsSnapshot {
	return d.registry.Metrics()
}

func (d *Dictionary[K, V]) emit(t observability.EventType, key K, ut observe.UpdateType) {
	d.observer.OnEvent(context.Background(), observability.Event{
		Type:      t,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    d.source,
		Data: map[string]any{
			"key":  key,
			"type": ut.String(),
			"len":  len(d.items),
		},
	})
}
