package events

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Event names delivered to the host application.
const (
	NativeOfferClicked = "onNativeOfferClicked"
	BalanceChanged     = "onBalanceChanged"
)

// Emitter forwards a named event to the host application.
type Emitter interface {
	Emit(name string, params any)
}

type listener struct {
	id int
	fn func(any)
}

// Hub is an Emitter that fans events out to registered listeners. Events emitted while nobody
// listens are dropped; there is no buffering or replay.
type Hub struct {
	lock      sync.RWMutex
	nextID    int
	listeners map[string][]listener
}

var _ Emitter = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{listeners: make(map[string][]listener)}
}

// AddListener registers fn for name and returns a function that removes it again.
func (h *Hub) AddListener(name string, fn func(any)) (remove func()) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.nextID++
	id := h.nextID
	h.listeners[name] = append(h.listeners[name], listener{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { h.removeListener(name, id) })
	}
}

func (h *Hub) removeListener(name string, id int) {
	h.lock.Lock()
	defer h.lock.Unlock()
	current := h.listeners[name]
	kept := make([]listener, 0, len(current))
	for _, l := range current {
		if l.id != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		delete(h.listeners, name)
		return
	}
	h.listeners[name] = kept
}

func (h *Hub) ListenerCount(name string) int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.listeners[name])
}

// Emit calls every listener for name in registration order.
func (h *Hub) Emit(name string, params any) {
	h.lock.RLock()
	current := append([]listener(nil), h.listeners[name]...)
	h.lock.RUnlock()

	for _, l := range current {
		h.deliver(name, l, params)
	}
}

func (h *Hub) deliver(name string, l listener, params any) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("event", name).Interface("panic", r).Msg("event listener panicked")
		}
	}()
	l.fn(params)
}
