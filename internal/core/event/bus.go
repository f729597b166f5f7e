// Package event provides the synchronous in-process bus the ECS core uses
// for lifecycle notifications. Delivery is immediate, same call stack, and
// fire-and-forget: no persistence, no replay, no cross-process transport.
package event

import (
	"reflect"

	"go.uber.org/zap"
)

// Event is a tagged payload. EntityID and Component are set when the event
// concerns an entity or one of its components; Data carries any further
// auxiliary fields (game-level events use it, lifecycle events leave it nil).
type Event struct {
	Type      string
	EntityID  string
	Component string
	Data      map[string]any
}

// Listener receives events synchronously on the emitter's call stack.
type Listener func(Event)

type entry struct {
	key  uintptr
	fn   Listener
	once bool
}

// Bus is a typed publish/subscribe hub. Listeners for one type are invoked
// in registration order and all receive the same event value. There is no
// ordering guarantee across different event types.
//
// The bus is single-threaded like the rest of the core: all calls happen on
// the frame-driving goroutine.
type Bus struct {
	log       *zap.Logger
	listeners map[string][]entry
}

func NewBus(log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		log:       log,
		listeners: make(map[string][]entry, 16),
	}
}

// listenerKey identifies a listener by its code pointer. Value.Pointer is
// documented as not necessarily unique per function value; on the gc
// toolchain distinct closures get distinct keys, but method values of the
// same method on different receivers collide. Register closures, not
// method values.
func listenerKey(fn Listener) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// On registers a listener for an event type. Registering the same listener
// twice for the same type is idempotent.
func (b *Bus) On(eventType string, fn Listener) {
	b.add(eventType, fn, false)
}

// Once registers a listener that removes itself before its first invocation
// fires. It can still be cancelled early with Off using the same function.
func (b *Bus) Once(eventType string, fn Listener) {
	b.add(eventType, fn, true)
}

func (b *Bus) add(eventType string, fn Listener, once bool) {
	if fn == nil {
		return
	}
	key := listenerKey(fn)
	for _, en := range b.listeners[eventType] {
		if en.key == key {
			return
		}
	}
	b.listeners[eventType] = append(b.listeners[eventType], entry{key: key, fn: fn, once: once})
}

// Off removes a previously registered listener. Unknown listeners are a
// no-op.
func (b *Bus) Off(eventType string, fn Listener) {
	if fn == nil {
		return
	}
	b.remove(eventType, listenerKey(fn))
}

func (b *Bus) remove(eventType string, key uintptr) {
	list := b.listeners[eventType]
	for i, en := range list {
		if en.key == key {
			b.listeners[eventType] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Emit delivers the event to every listener registered for its type at the
// moment of the call, in registration order. A listener that panics is
// logged and does not block delivery to the rest, and listeners may add or
// remove listeners mid-delivery without skipping or double-calling anyone
// in the current round.
//
// Emit is re-entrant: a listener may emit further events on its own call
// stack. Deep re-entrant chains grow the stack accordingly; the bus does
// not guard against that.
func (b *Bus) Emit(ev Event) {
	list := b.listeners[ev.Type]
	if len(list) == 0 {
		return
	}
	snapshot := make([]entry, len(list))
	copy(snapshot, list)

	for _, en := range snapshot {
		if en.once {
			b.remove(ev.Type, en.key)
		}
		b.dispatch(en.fn, ev)
	}
}

func (b *Bus) dispatch(fn Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event listener panicked",
				zap.String("event", ev.Type),
				zap.Any("panic", r))
		}
	}()
	fn(ev)
}

// ListenerCount returns the number of listeners registered for a type.
func (b *Bus) ListenerCount(eventType string) int {
	return len(b.listeners[eventType])
}

// Clear drops every listener for every type.
func (b *Bus) Clear() {
	b.listeners = make(map[string][]entry, 16)
}
