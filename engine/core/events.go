package core

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data is *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data is *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed. Data is *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released. Data is *MouseEvent.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved. Data is *MouseEvent with PosX/PosY set.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel. Data is *MouseEvent with Scroll set.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Resized/resolution changed from the OS. Data is *SystemEvent.
	EVENT_CODE_RESIZED EventCode = 0x08

	// The active application state changed. Data is *StateEvent.
	EVENT_CODE_STATE_CHANGED EventCode = 0x09

	// A watched asset changed on disk. Data is *AssetEvent.
	EVENT_CODE_ASSET_CHANGED EventCode = 0x0A

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Type   EventCode
	Sender interface{}
	Data   interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   int32
	PosY   int32
	Scroll float32
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type StateEvent struct {
	From string
	To   string
}

type AssetEvent struct {
	Name string
	Path string
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventBus dispatches events synchronously on the calling goroutine.
// It is meant to be used from the main loop only.
type EventBus struct {
	registered map[EventCode][]*registeredEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[EventCode][]*registeredEvent),
	}
}

// Register listens for events sent with the provided code. A non-nil listener
// can only be registered once per code; a second attempt returns false.
func (eb *EventBus) Register(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	if onEvent == nil {
		return false
	}
	if listener != nil {
		for _, e := range eb.registered[code] {
			if e.listener == listener {
				LogWarn("listener already registered for event code %d", code)
				return false
			}
		}
	}
	eb.registered[code] = append(eb.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// Unregister removes the registration of listener for code.
func (eb *EventBus) Unregister(code EventCode, listener interface{}) bool {
	events := eb.registered[code]
	for i, e := range events {
		if e.listener == listener {
			eb.registered[code] = append(events[:i:i], events[i+1:]...)
			if len(eb.registered[code]) == 0 {
				delete(eb.registered, code)
			}
			return true
		}
	}
	return false
}

// Fire sends context to the listeners of context.Type in registration order.
// Once a listener returns true the event is handled and propagation stops.
func (eb *EventBus) Fire(context EventContext) bool {
	events := eb.registered[context.Type]
	if len(events) == 0 {
		return false
	}
	// Listeners may (un)register while handling.
	snapshot := make([]*registeredEvent, len(events))
	copy(snapshot, events)
	for _, e := range snapshot {
		if e.callback(context) {
			return true
		}
	}
	return false
}

func (eb *EventBus) Shutdown() {
	eb.registered = make(map[EventCode][]*registeredEvent)
}
