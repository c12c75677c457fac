package observe

import "sync/atomic"

// MetricsSnapshot is a point-in-time copy of a registry's counters.
type MetricsSnapshot struct {
	Registrations int64
	Notifications int64
	Stopped       int64
}

// Metrics counts registry activity: registrations made, notifications
// delivered to callbacks, and registrations stopped.
type Metrics struct {
	registrations atomic.Int64
	notifications atomic.Int64
	stopped       atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordRegistration(delta int) {
	m.registrations.Add(int64(delta))
}

func (m *Metrics) RecordNotification(delta int) {
	m.notifications.Add(int64(delta))
}

func (m *Metrics) RecordStop(delta int) {
	m.stopped.Add(int64(delta))
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Registrations: m.registrations.Load(),
		Notifications: m.notifications.Load(),
		Stopped:       m.stopped.Load(),
	}
}
