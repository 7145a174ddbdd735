// Package streaming is the live-push subscriber registry (§4.H, §5
// "Shared-resource policy"): an in-memory mapping from session id to
// subscriber handle, mutation serialised by a mutex. There is no
// multi-subscriber fan-out — one user, one live page — so a new
// subscription tears down whichever one preceded it.
package streaming

import "sync"

// Event is one server-push message published through the hub: a named
// segment or stopped event. The connected and keepalive events are written
// by the stream handler itself and never pass through the hub.
type Event struct {
	Name string
	Data []byte
}

type subscriber struct {
	events   chan Event
	tornDown chan struct{}
}

// Hub holds at most one live subscriber per session.
type Hub struct {
	mu   sync.Mutex
	subs map[string]*subscriber
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]*subscriber)}
}

// Subscribe registers the caller as the session's sole subscriber. If a
// prior subscriber exists its tornDown channel is closed so its stream
// handler can exit; the caller receives its own events/tornDown channels
// plus an unsubscribe func to call on disconnect.
func (h *Hub) Subscribe(sessionID string) (events <-chan Event, tornDown <-chan struct{}, unsubscribe func()) {
	h.mu.Lock()
	if old, ok := h.subs[sessionID]; ok {
		close(old.tornDown)
	}
	sub := &subscriber{
		events:   make(chan Event, 32),
		tornDown: make(chan struct{}),
	}
	h.subs[sessionID] = sub
	h.mu.Unlock()

	unsubscribe = func() {
		h.mu.Lock()
		if h.subs[sessionID] == sub {
			delete(h.subs, sessionID)
		}
		h.mu.Unlock()
	}
	return sub.events, sub.tornDown, unsubscribe
}

// Publish delivers an event to the session's current subscriber, if any.
// A full buffer drops the event rather than blocking — replay-on-reconnect
// from persisted segments makes this safe for segment events.
func (h *Hub) Publish(sessionID string, event Event) {
	h.mu.Lock()
	sub, ok := h.subs[sessionID]
	h.mu.Unlock()
	if !ok {
		return
	}
	select {
	case sub.events <- event:
	default:
	}
}

// Close tears down the session's subscriber (used at stop, after the
// "stopped" event has been published).
func (h *Hub) Close(sessionID string) {
	h.mu.Lock()
	sub, ok := h.subs[sessionID]
	if ok {
		delete(h.subs, sessionID)
	}
	h.mu.Unlock()
	if ok {
		close(sub.tornDown)
	}
}
