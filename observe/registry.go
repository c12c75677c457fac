package observe

type registration[K comparable, V any] struct {
	handle Handle
	owner  string
	fn     Callback[K, V]
}

// Registry manages callback registrations for one container: an ordered list
// per update type for global observers, plus the same three-bucket structure
// per key for scoped observers. A single registration made with Observe or
// ObserveKey is visible in all three buckets under one handle.
//
// Not safe for concurrent use. Notifications run inline on the caller's
// goroutine, in scoped-then-global order, each in registration order.
type Registry[K comparable, V any] struct {
	global  map[UpdateType][]registration[K, V]
	scoped  map[K]map[UpdateType][]registration[K, V]
	metrics *Metrics
}

// NewRegistry creates an empty Registry.
func NewRegistry[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		global:  make(map[UpdateType][]registration[K, V]),
		scoped:  make(map[K]map[UpdateType][]registration[K, V]),
		metrics: NewMetrics(),
	}
}

// Observe registers fn for every update type on the whole container.
// The owner tags the registration for StopObservingAll.
func (r *Registry[K, V]) Observe(owner string, fn Callback[K, V]) Handle {
	reg := registration[K, V]{handle: newHandle(), owner: owner, fn: fn}
	for _, t := range updateTypes {
		r.global[t] = append(r.global[t], reg)
	}
	r.metrics.RecordRegistration(1)
	return reg.handle
}

// ObserveKey registers fn for every update type scoped to a single key.
func (r *Registry[K, V]) ObserveKey(owner string, key K, fn Callback[K, V]) Handle {
	reg := registration[K, V]{handle: newHandle(), owner: owner, fn: fn}
	buckets, ok := r.scoped[key]
	if !ok {
		buckets = make(map[UpdateType][]registration[K, V])
		r.scoped[key] = buckets
	}
	for _, t := range updateTypes {
		buckets[t] = append(buckets[t], reg)
	}
	r.metrics.RecordRegistration(1)
	return reg.handle
}

// Notify delivers change to observers scoped to change.Key, then to global
// observers, each set in registration order.
func (r *Registry[K, V]) Notify(change Change[K, V]) {
	if buckets, ok := r.scoped[change.Key]; ok {
		for _, reg := range buckets[change.Type] {
			reg.fn(change)
			r.metrics.RecordNotification(1)
		}
	}
	for _, reg := range r.global[change.Type] {
		reg.fn(change)
		r.metrics.RecordNotification(1)
	}
}

// StopObserving removes the registration identified by handle. It reports
// whether a registration was removed; handles are unique, so at most one
// registration is removed per call even when the same callback was registered
// multiple times.
func (r *Registry[K, V]) StopObserving(handle Handle) bool {
	removed := false
	for _, t := range updateTypes {
		if regs, ok := removeHandle(r.global[t], handle); ok {
			r.global[t] = regs
			removed = true
		}
	}
	for key, buckets := range r.scoped {
		for _, t := range updateTypes {
			if regs, ok := removeHandle(buckets[t], handle); ok {
				buckets[t] = regs
				removed = true
			}
		}
		if bucketsEmpty(buckets) {
			delete(r.scoped, key)
		}
	}
	if removed {
		r.metrics.RecordStop(1)
	}
	return removed
}

// StopObservingAll removes every registration made by the named owners, or
// every registration in the registry when called with no arguments.
func (r *Registry[K, V]) StopObservingAll(owners ...string) {
	if len(owners) == 0 {
		stopped := r.Observers(Added) // each registration appears once per bucket
		for k := range r.global {
			delete(r.global, k)
		}
		for k := range r.scoped {
			stopped += len(r.scoped[k][Added])
			delete(r.scoped, k)
		}
		r.metrics.RecordStop(stopped)
		return
	}

	owned := make(map[string]bool, len(owners))
	for _, o := range owners {
		owned[o] = true
	}

	stopped := 0
	for _, t := range updateTypes {
		var n int
		r.global[t], n = removeOwned(r.global[t], owned)
		if t == Added {
			stopped += n
		}
	}
	for key, buckets := range r.scoped {
		for _, t := range updateTypes {
			var n int
			buckets[t], n = removeOwned(buckets[t], owned)
			if t == Added {
				stopped += n
			}
		}
		if bucketsEmpty(buckets) {
			delete(r.scoped, key)
		}
	}
	r.metrics.RecordStop(stopped)
}

// Observers returns the number of global registrations for t.
func (r *Registry[K, V]) Observers(t UpdateType) int {
	return len(r.global[t])
}

// KeyObservers returns the number of registrations scoped to key for t.
func (r *Registry[K, V]) KeyObservers(key K, t UpdateType) int {
	return len(r.scoped[key][t])
}

// Metrics returns a snapshot of the registry's counters.
func (r *Registry[K, V]) Metrics() MetricsSnapshot {
	return r.metrics.Snapshot()
}

func removeHandle[K comparable, V any](regs []registration[K, V], handle Handle) ([]registration[K, V], bool) {
	for i, reg := range regs {
		if reg.handle == handle {
			return append(regs[:i], regs[i+1:]...), true
		}
	}
	return regs, false
}

func removeOwned[K comparable, V any](regs []registration[K, V], owned map[string]bool) ([]registration[K, V], int) {
	kept := regs[:0]
	removed := 0
	for _, reg := range regs {
		if owned[reg.owner] {
			removed++
			continue
		}
		kept = append(kept, reg)
	}
	return kept, removed
}

func bucketsEmpty[K comparable, V any](buckets map[UpdateType][]registration[K, V]) bool {
	for _, regs := range buckets {
		if len(regs) > 0 {
			return false
		}
	}
	return true
}
