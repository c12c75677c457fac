package observability

import "context"

// NoOpObserver discards all events with zero overhead. It is the default for
// containers, keeping the library silent unless an observer is wired.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(ctx context.Context, event Event) {}
