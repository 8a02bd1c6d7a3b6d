package event

import (
	"sync"
	"testing"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe(TypePhaseChanged, func(e Event) {
		called = true
	})

	if id == "" {
		t.Error("Subscribe should return a non-empty ID")
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("SubscriptionCount() = %d, want 1", bus.SubscriptionCount())
	}
	if called {
		t.Error("Handler should not be called until an event is published")
	}
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus()

	var received Event
	bus.Subscribe(TypeTeamCheckedIn, func(e Event) {
		received = e
	})

	bus.Publish(NewTeamCheckedInEvent("run-1", "offense", 4, 12, 0))

	if received == nil {
		t.Fatal("Handler should have received the event")
	}
	got, ok := received.(TeamCheckedInEvent)
	if !ok {
		t.Fatalf("received %T, want TeamCheckedInEvent", received)
	}
	if got.Team != "offense" || got.Players != 4 || got.PlayersReady != 12 {
		t.Errorf("unexpected event payload: %+v", got)
	}
	if got.RunID != "run-1" {
		t.Errorf("RunID = %q, want %q", got.RunID, "run-1")
	}
}

func TestBus_OrderSpecificBeforeWildcard(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(e Event) { order = append(order, "wildcard") })
	bus.Subscribe(TypeGameFinished, func(e Event) { order = append(order, "first") })
	bus.Subscribe(TypeGameFinished, func(e Event) { order = append(order, "second") })

	bus.Publish(NewGameFinishedEvent("run", 0, true, false))

	want := []string{"first", "second", "wildcard"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestBus_NoMatchingHandlers(t *testing.T) {
	bus := NewBus()

	bus.Subscribe(TypeGameAborted, func(e Event) {
		t.Error("Handler should not be called for non-matching event type")
	})

	bus.Publish(NewPhaseChangeEvent("run", "init", "spawning_low"))
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	id := bus.Subscribe(TypePhaseChanged, func(e Event) { calls++ })
	bus.Subscribe(TypePhaseChanged, func(e Event) { calls += 10 })

	if !bus.Unsubscribe(id) {
		t.Error("Unsubscribe should return true when subscription exists")
	}
	if bus.Unsubscribe(id) {
		t.Error("Unsubscribe should return false the second time")
	}

	bus.Publish(NewPhaseChangeEvent("run", "init", "spawning_low"))
	if calls != 10 {
		t.Errorf("calls = %d, want 10", calls)
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("SubscriptionCount() = %d, want 1", bus.SubscriptionCount())
	}
}

func TestBus_PanickingHandler(t *testing.T) {
	bus := NewBus()

	var recovered any
	bus.onPanic = func(_ string, r any, _ []byte) { recovered = r }

	delivered := false
	bus.Subscribe(TypeGameAborted, func(e Event) { panic("handler failure") })
	bus.Subscribe(TypeGameAborted, func(e Event) { delivered = true })

	bus.Publish(NewGameAbortedEvent("run", "spawning_mid", "boom"))

	if recovered != "handler failure" {
		t.Errorf("recovered = %v, want %q", recovered, "handler failure")
	}
	if !delivered {
		t.Error("second handler should still receive the event")
	}
}

func TestBus_NilPublish(t *testing.T) {
	var bus *Bus
	bus.Publish(NewPhaseChangeEvent("run", "a", "b"))
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.SubscribeAll(func(e Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bus.Publish(NewPhaseChangeEvent("run", "a", "b"))
			}
		}()
	}
	wg.Wait()

	if count != 1000 {
		t.Errorf("count = %d, want 1000", count)
	}
}
