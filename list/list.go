// Package list provides an observable wrapper around a slice for game-object
// data binding. The wrapper owns only the observer registry; the backing
// slice stays the caller's storage and must not be mutated externally for the
// wrapper's lifetime. A resolver constructor supports backing slices that the
// host framework relocates or creates lazily.
//
// Not safe for concurrent use. Notifications run inline during the mutating
// call, on the caller's goroutine; mutating the list from inside a callback
// is unsupported.
package list

import (
	"context"
	"fmt"
	"time"

	"github.com/playforge/databind/observability"
	"github.com/playforge/databind/observe"
)

// List wraps a slice and notifies registered observers when elements are
// added, updated, or removed. Observers are scoped per index or global.
type List[T any] struct {
	resolve  func() *[]T
	registry *observe.Registry[int, T]
	source   string
	observer observability.Observer
}

// New creates a List over the given backing slice. A nil backing pointer is
// replaced with a fresh empty slice owned by the wrapper.
func New[T any](backing *[]T) *List[T] {
	if backing == nil {
		owned := make([]T, 0)
		backing = &owned
	}
	return NewResolved(func() *[]T { return backing })
}

// NewResolved creates a List whose backing slice is supplied by a deferred
// accessor, resolved on every access. The accessor must return a non-nil
// pointer; it may return different pointers over time as the host framework
// relocates the sequence.
func NewResolved[T any](resolve func() *[]T) *List[T] {
	return &List[T]{
		resolve:  resolve,
		registry: observe.NewRegistry[int, T](),
		source:   observe.DefaultConfig().Source,
		observer: observability.NoOpObserver{},
	}
}

// NewWithConfig creates a List with the merged config applied: the source
// label is used on emitted events and the named observer receives them.
func NewWithConfig[T any](backing *[]T, cfg observe.Config) (*List[T], error) {
	merged := observe.DefaultConfig()
	merged.Merge(&cfg)

	obs, err := observability.GetObserver(merged.Observer)
	if err != nil {
		return nil, fmt.Errorf("resolve observer: %w", err)
	}

	l := New(backing)
	l.source = merged.Source
	l.observer = obs
	return l, nil
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return len(*l.resolve())
}

// Get returns the element at index i, or ErrIndexOutOfRange.
func (l *List[T]) Get(i int) (T, error) {
	items := *l.resolve()
	if i < 0 || i >= len(items) {
		var zero T
		return zero, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return items[i], nil
}

// TryGet returns the element at index i and whether i is in range.
func (l *List[T]) TryGet(i int) (T, bool) {
	items := *l.resolve()
	if i < 0 || i >= len(items) {
		var zero T
		return zero, false
	}
	return items[i], true
}

// Items returns a copy of the backing slice.
func (l *List[T]) Items() []T {
	items := *l.resolve()
	copied := make([]T, len(items))
	copy(copied, items)
	return copied
}

// Add appends an element and notifies Added observers at the insertion index.
func (l *List[T]) Add(value T) {
	backing := l.resolve()
	*backing = append(*backing, value)
	index := len(*backing) - 1

	var zero T
	l.registry.Notify(observe.Change[int, T]{Key: index, Previous: zero, Value: value, Type: observe.Added})
	l.emit(EventAdd, index, observe.Added)
}

// Append adds each value in order, notifying Added observers at each
// element's actual insertion index.
func (l *List[T]) Append(values ...T) {
	for _, v := range values {
		l.Add(v)
	}
}

// Set replaces the element at index i and notifies Updated observers with the
// previous element. Fails with ErrIndexOutOfRange.
func (l *List[T]) Set(i int, value T) error {
	backing := l.resolve()
	if i < 0 || i >= len(*backing) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	previous := (*backing)[i]
	(*backing)[i] = value
	l.registry.Notify(observe.Change[int, T]{Key: i, Previous: previous, Value: value, Type: observe.Updated})
	l.emit(EventSet, i, observe.Updated)
	return nil
}

// RemoveAt removes and returns the element at index i, shifting later
// elements down, and notifies Removed observers at i. Fails with
// ErrIndexOutOfRange.
func (l *List[T]) RemoveAt(i int) (T, error) {
	backing := l.resolve()
	if i < 0 || i >= len(*backing) {
		var zero T
		return zero, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	previous := (*backing)[i]
	*backing = append((*backing)[:i], (*backing)[i+1:]...)

	var zero T
	l.registry.Notify(observe.Change[int, T]{Key: i, Previous: previous, Value: zero, Type: observe.Removed})
	l.emit(EventRemove, i, observe.Removed)
	return previous, nil
}

// RemoveFunc removes the first element for which match returns true,
// reporting whether one was removed.
func (l *List[T]) RemoveFunc(match func(T) bool) bool {
	for i, v := range *l.resolve() {
		if match(v) {
			l.RemoveAt(i)
			return true
		}
	}
	return false
}

// Remove removes the first element equal to value, reporting whether one was
// removed.
func Remove[T comparable](l *List[T], value T) bool {
	return l.RemoveFunc(func(v T) bool { return v == value })
}

// Clear truncates the list to empty. Observers are not notified per element.
func (l *List[T]) Clear() {
	backing := l.resolve()
	*backing = (*backing)[:0]
	l.observer.OnEvent(context.Background(), observability.Event{
		Type:      EventClear,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    l.source,
		Data:      map[string]any{},
	})
}

// Observe registers fn for all mutations of the list. The owner tags the
// registration for StopObservingAll.
func (l *List[T]) Observe(owner string, fn observe.Callback[int, T]) observe.Handle {
	return l.registry.Observe(owner, fn)
}

// ObserveIndex registers fn for mutations at a single index.
func (l *List[T]) ObserveIndex(owner string, i int, fn observe.Callback[int, T]) observe.Handle {
	return l.registry.ObserveKey(owner, i, fn)
}

// InvokeObserve invokes fn immediately with the current element tagged
// Updated, then registers it scoped to index i. Fails with
// ErrIndexOutOfRange.
func (l *List[T]) InvokeObserve(owner string, i int, fn observe.Callback[int, T]) (observe.Handle, error) {
	current, ok := l.TryGet(i)
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	fn(observe.Change[int, T]{Key: i, Previous: current, Value: current, Type: observe.Updated})
	return l.registry.ObserveKey(owner, i, fn), nil
}

// InvokeUpdate notifies all Updated-category observers of index i, scoped
// then global, with the current element as both previous and new. The data is
// not mutated. Fails with ErrIndexOutOfRange.
func (l *List[T]) InvokeUpdate(i int) error {
	current, ok := l.TryGet(i)
	if !ok {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	l.registry.Notify(observe.Change[int, T]{Key: i, Previous: current, Value: current, Type: observe.Updated})
	l.emit(EventInvoke, i, observe.Updated)
	return nil
}

// StopObserving removes exactly one registration by handle, reporting whether
// one was found.
func (l *List[T]) StopObserving(handle observe.Handle) bool {
	return l.registry.StopObserving(handle)
}

// StopObservingAll removes every registration made by the named owners, or
// all registrations when called with no arguments.
func (l *List[T]) StopObservingAll(owners ...string) {
	l.registry.StopObservingAll(owners...)
}

// Metrics returns a snapshot of the list's registry counters.
func (l *List[T]) Metrics() observe.MetricsSnapshot {
	return l.registry.Metrics()
}

func (l *List[T]) emit(t observability.EventType, index int, ut observe.UpdateType) {
	l.observer.OnEvent(context.Background(), observability.Event{
		Type:      t,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    l.source,
		Data: map[string]any{
			"index": index,
			"type":  ut.String(),
			"len":   l.Len(),
		},
	})
}
