package observe_test

import (
	"testing"

	"github.com/playforge/databind/observe"
)

func change(key string, prev, val int, t observe.UpdateType) observe.Change[string, int] {
	return observe.Change[string, int]{Key: key, Previous: prev, Value: val, Type: t}
}

func TestRegistry_NotifyGlobal(t *testing.T) {
	r := observe.NewRegistry[string, int]()

	var got []observe.Change[string, int]
	r.Observe("owner-a", func(c observe.Change[string, int]) {
		got = append(got, c)
	})

	r.Notify(change("hp", 0, 10, observe.Added))
	r.Notify(change("hp", 10, 7, observe.Updated))
	r.Notify(change("hp", 7, 0, observe.Removed))

	if len(got) != 3 {
		t.Fatalf("delivered %d changes, want 3", len(got))
	}
	if got[0].Type != observe.Added || got[1].Type != observe.Updated || got[2].Type != observe.Removed {
		t.Errorf("types = %v %v %v, want added updated removed", got[0].Type, got[1].Type, got[2].Type)
	}
}

func TestRegistry_NotifyScopedOnlyForKey(t *testing.T) {
	r := observe.NewRegistry[string, int]()

	hits := 0
	r.ObserveKey("owner-a", "mana", func(c observe.Change[string, int]) {
		hits++
		if c.Key != "mana" {
			t.Errorf("scoped observer got key %q, want %q", c.Key, "mana")
		}
	})

	r.Notify(change("hp", 0, 10, observe.Added))
	r.Notify(change("mana", 0, 5, observe.Added))

	if hits != 1 {
		t.Errorf("scoped observer fired %d times, want 1", hits)
	}
}

func TestRegistry_NotifyOrder_ScopedBeforeGlobal(t *testing.T) {
	r := observe.NewRegistry[string, int]()

	var order []string
	r.Observe("owner-a", func(observe.Change[string, int]) {
		order = append(order, "global-1")
	})
	r.ObserveKey("owner-a", "hp", func(observe.Change[string, int]) {
		order = append(order, "scoped-1")
	})
	r.ObserveKey("owner-a", "hp", func(observe.Change[string, int]) {
		order = append(order, "scoped-2")
	})
	r.Observe("owner-a", func(observe.Change[string, int]) {
		order = append(order, "global-2")
	})

	r.Notify(change("hp", 0, 1, observe.Updated))

	want := []string{"scoped-1", "scoped-2", "global-1", "global-2"}
	if len(order) != len(want) {
		t.Fatalf("delivered %d notifications, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestRegistry_StopObserving_RemovesExactlyOne(t *testing.T) {
	r := observe.NewRegistry[string, int]()

	hits := 0
	fn := func(observe.Change[string, int]) { hits++ }

	// Same callback registered twice, each with its own handle.
	h1 := r.Observe("owner-a", fn)
	h2 := r.Observe("owner-a", fn)
	if h1 == h2 {
		t.Fatal("duplicate registrations share a handle")
	}

	if !r.StopObserving(h1) {
		t.Fatal("StopObserving(h1) = false, want true")
	}

	r.Notify(change("hp", 0, 1, observe.Updated))
	if hits != 1 {
		t.Errorf("remaining registration fired %d times, want 1", hits)
	}

	if r.StopObserving(h1) {
		t.Error("second StopObserving(h1) = true, want false")
	}
	if !r.StopObserving(h2) {
		t.Error("StopObserving(h2) = false, want true")
	}
}

func TestRegistry_StopObserving_UnknownHandle(t *testing.T) {
	r := observe.NewRegistry[string, int]()

	if r.StopObserving("no-such-handle") {
		t.Error("StopObserving(unknown) = true, want false")
	}
}

func TestRegistry_StopObserving_ScopedRegistration(t *testing.T) {
	r := observe.NewRegistry[string, int]()

	h := r.ObserveKey("owner-a", "hp", func(observe.Change[string, int]) {})
	if r.KeyObservers("hp", observe.Updated) != 1 {
		t.Fatalf("KeyObservers = %d, want 1", r.KeyObservers("hp", observe.Updated))
	}

	if !r.StopObserving(h) {
		t.Fatal("StopObserving(scoped handle) = false, want true")
	}
	if r.KeyObservers("hp", observe.Updated) != 0 {
		t.Errorf("KeyObservers after stop = %d, want 0", r.KeyObservers("hp", observe.Updated))
	}
}

func TestRegistry_StopObservingAll_ByOwner(t *testing.T) {
	r := observe.NewRegistry[string, int]()

	aHits, bHits := 0, 0
	r.Observe("owner-a", func(observe.Change[string, int]) { aHits++ })
	r.ObserveKey("owner-a", "hp", func(observe.Change[string, int]) { aHits++ })
	r.Observe("owner-b", func(observe.Change[string, int]) { bHits++ })

	r.StopObservingAll("owner-a")
	r.Notify(change("hp", 0, 1, observe.Updated))

	if aHits != 0 {
		t.Errorf("owner-a fired %d times after StopObservingAll(owner-a), want 0", aHits)
	}
	if bHits != 1 {
		t.Errorf("owner-b fired %d times, want 1", bHits)
	}
}

func TestRegistry_StopObservingAll_Everything(t *testing.T) {
	r := observe.NewRegistry[string, int]()

	hits := 0
	r.Observe("owner-a", func(observe.Change[string, int]) { hits++ })
	r.ObserveKey("owner-b", "hp", func(observe.Change[string, int]) { hits++ })

	r.StopObservingAll()
	r.Notify(change("hp", 0, 1, observe.Updated))

	if hits != 0 {
		t.Errorf("observers fired %d times after StopObservingAll(), want 0", hits)
	}
	if r.Observers(observe.Updated) != 0 {
		t.Errorf("Observers = %d, want 0", r.Observers(observe.Updated))
	}
}

func TestRegistry_Metrics(t *testing.T) {
	r := observe.NewRegistry[string, int]()

	h := r.Observe("owner-a", func(observe.Change[string, int]) {})
	r.ObserveKey("owner-a", "hp", func(observe.Change[string, int]) {})

	r.Notify(change("hp", 0, 1, observe.Updated)) // scoped + global
	r.StopObserving(h)

	snap := r.Metrics()
	if snap.Registrations != 2 {
		t.Errorf("Registrations = %d, want 2", snap.Registrations)
	}
	if snap.Notifications != 2 {
		t.Errorf("Notifications = %d, want 2", snap.Notifications)
	}
	if snap.Stopped != 1 {
		t.Errorf("Stopped = %d, want 1", snap.Stopped)
	}
}
