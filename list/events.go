package list

import "github.com/playforge/databind/observability"

// List event types emitted through the configured observer.
const (
	EventAdd    observability.EventType = "bind.list.add"
	EventSet    observability.EventType = "bind.list.set"
	EventRemove observability.EventType = "bind.list.remove"
	EventClear  observability.EventType = "bind.list.clear"
	EventInvoke observability.EventType = "bind.list.invoke"
)
