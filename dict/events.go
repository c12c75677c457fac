package dict

import "github.com/playforge/databind/observability"

// Dictionary event types emitted through the configured observer.
const (
	EventAdd    observability.EventType = "bind.dict.add"
	EventSet    observability.EventType = "bind.dict.set"
	EventRemove observability.EventType = "bind.dict.remove"
	EventClear  observability.EventType = "bind.dict.clear"
	EventInvoke observability.EventType = "bind.dict.invoke"
)
