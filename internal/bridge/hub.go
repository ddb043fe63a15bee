package bridge

import (
	"sync"

	"github.com/zhubert/streamchat/internal/logger"
)

// subscriptionBuffer is how many events a slow subscriber may lag behind
// before publishers block.
const subscriptionBuffer = 256

// Subscription is a scoped listener handle. Events arrive on Events() in the
// order they were published. Close releases the handle; it never fails and may
// be called more than once.
type Subscription struct {
	id    int
	kinds map[EventKind]bool
	ch    chan Event
	done  chan struct{}
	once  sync.Once
	hub   *Hub
}

// Events returns the channel events are delivered on.
func (s *Subscription) Events() <-chan Event { return s.ch }

// Done is closed once the subscription is released.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Close releases the subscription.
func (s *Subscription) Close() {
	s.once.Do(func() {
		close(s.done)
		if s.hub != nil {
			s.hub.remove(s.id)
		}
	})
}

func (s *Subscription) wants(k EventKind) bool {
	return len(s.kinds) == 0 || s.kinds[k]
}

// Hub fans events out to subscriptions. Adapters embed it to implement Events.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]*Subscription
	nextID int
	closed bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]*Subscription)}
}

// Subscribe registers interest in kinds. No kinds means every kind. Subscribing
// to a closed hub returns an already-released subscription.
func (h *Hub) Subscribe(kinds ...EventKind) *Subscription {
	sub := &Subscription{
		kinds: make(map[EventKind]bool, len(kinds)),
		ch:    make(chan Event, subscriptionBuffer),
		done:  make(chan struct{}),
	}
	for _, k := range kinds {
		sub.kinds[k] = true
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		sub.Close()
		return sub
	}
	h.nextID++
	sub.id = h.nextID
	sub.hub = h
	h.subs[sub.id] = sub
	return sub
}

func (h *Hub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

// Publish delivers ev to every interested subscription. It blocks while a
// subscriber's buffer is full, so per-subscription order is never broken and
// nothing is dropped; a released subscription unblocks it.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	targets := make([]*Subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		if sub.wants(ev.Kind()) {
			targets = append(targets, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range targets {
		select {
		case sub.ch <- ev:
		case <-sub.done:
		}
	}
	logger.WithComponent("hub").Debug("published event", "kind", ev.Kind().String(), "subscribers", len(targets))
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close releases every subscription. Later subscriptions are returned closed.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := make([]*Subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.closed = true
	h.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}
