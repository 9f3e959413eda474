package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type listener struct {
	name string
}

func TestEventBusFireOrderAndHandled(t *testing.T) {
	eb := NewEventBus()
	var calls []string
	add := func(l *listener, handled bool) {
		eb.Register(EVENT_CODE_KEY_PRESSED, l, func(ctx EventContext) bool {
			calls = append(calls, l.name)
			return handled
		})
	}
	add(&listener{"first"}, false)
	add(&listener{"second"}, true)
	add(&listener{"third"}, false)

	if !eb.Fire(EventContext{Type: EVENT_CODE_KEY_PRESSED}) {
		t.Error("Fire() = false, want handled")
	}
	if diff := cmp.Diff([]string{"first", "second"}, calls); diff != "" {
		t.Errorf("listener calls mismatch (-want +got):\n%s", diff)
	}
}

func TestEventBusRegister(t *testing.T) {
	eb := NewEventBus()
	l := &listener{"l"}
	noop := func(EventContext) bool { return false }

	if !eb.Register(EVENT_CODE_RESIZED, l, noop) {
		t.Fatal("Register() = false")
	}
	if eb.Register(EVENT_CODE_RESIZED, l, noop) {
		t.Error("duplicate Register() = true")
	}
	if !eb.Register(EVENT_CODE_KEY_PRESSED, l, noop) {
		t.Error("Register() for another code = false")
	}
	if eb.Register(EVENT_CODE_RESIZED, &listener{"other"}, nil) {
		t.Error("Register() with nil callback = true")
	}
	if !eb.Register(EVENT_CODE_RESIZED, nil, noop) || !eb.Register(EVENT_CODE_RESIZED, nil, noop) {
		t.Error("anonymous listeners should always register")
	}
}

func TestEventBusUnregister(t *testing.T) {
	eb := NewEventBus()
	l := &listener{"l"}
	fired := 0
	eb.Register(EVENT_CODE_RESIZED, l, func(EventContext) bool {
		fired++
		return false
	})

	if eb.Unregister(EVENT_CODE_RESIZED, &listener{"unknown"}) {
		t.Error("Unregister() of unknown listener = true")
	}
	if !eb.Unregister(EVENT_CODE_RESIZED, l) {
		t.Fatal("Unregister() = false")
	}
	if eb.Fire(EventContext{Type: EVENT_CODE_RESIZED}) {
		t.Error("Fire() with no listeners = true")
	}
	if fired != 0 {
		t.Errorf("listener fired %d times after Unregister", fired)
	}
}

func TestEventBusUnregisterWhileFiring(t *testing.T) {
	eb := NewEventBus()
	a, b := &listener{"a"}, &listener{"b"}
	var calls []string
	eb.Register(EVENT_CODE_APPLICATION_QUIT, a, func(EventContext) bool {
		calls = append(calls, "a")
		eb.Unregister(EVENT_CODE_APPLICATION_QUIT, b)
		return false
	})
	eb.Register(EVENT_CODE_APPLICATION_QUIT, b, func(EventContext) bool {
		calls = append(calls, "b")
		return false
	})

	eb.Fire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT})
	eb.Fire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT})

	if diff := cmp.Diff([]string{"a", "b", "a"}, calls); diff != "" {
		t.Errorf("listener calls mismatch (-want +got):\n%s", diff)
	}
}

func TestEventBusShutdown(t *testing.T) {
	eb := NewEventBus()
	eb.Register(EVENT_CODE_RESIZED, nil, func(EventContext) bool { return true })
	eb.Shutdown()
	if eb.Fire(EventContext{Type: EVENT_CODE_RESIZED}) {
		t.Error("Fire() after Shutdown = true")
	}
}
