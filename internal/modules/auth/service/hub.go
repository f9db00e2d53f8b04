package service

import (
	"sync"

	"wellness/internal/modules/auth/domain"
)

// Hub fans auth events out to subscribers. Listeners run outside the lock,
// so a listener may unsubscribe itself.
type Hub struct {
	mu        sync.Mutex
	next      int
	listeners map[int]func(domain.Event)
}

func NewHub() *Hub {
	return &Hub{listeners: map[int]func(domain.Event){}}
}

type Subscription struct {
	hub  *Hub
	id   int
	once sync.Once
}

func (h *Hub) Subscribe(listener func(domain.Event)) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.listeners[h.next] = listener
	return &Subscription{hub: h, id: h.next}
}

func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		delete(s.hub.listeners, s.id)
	})
}

func (h *Hub) Publish(event domain.Event) {
	h.mu.Lock()
	listeners := make([]func(domain.Event), 0, len(h.listeners))
	for _, l := range h.listeners {
		listeners = append(listeners, l)
	}
	h.mu.Unlock()
	for _, l := range listeners {
		l(event)
	}
}

// Len reports the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}
