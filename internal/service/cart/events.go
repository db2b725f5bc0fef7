package cart

import (
	"sync"

	"paintland/internal/domain"
)

type EventKind string

const (
	EventItemAdded       EventKind = "added"
	EventItemRemoved     EventKind = "removed"
	EventQuantityUpdated EventKind = "quantity_updated"
	EventCleared         EventKind = "cleared"
)

// Event describes the cart after a mutation. Items is a private copy owned
// by the receiver.
type Event struct {
	Kind           EventKind         `json:"kind"`
	Items          []domain.LineItem `json:"items"`
	TotalItemCount int               `json:"totalItemCount"`
	// ProductName is set for EventItemAdded.
	ProductName string `json:"productName,omitempty"`
	// Persisted is false when the storage write failed; the in-memory cart
	// is still authoritative.
	Persisted bool `json:"persisted"`
}

// Listener receives change events synchronously. It must not block.
type Listener func(Event)

type notifier struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
}

func (n *notifier) subscribe(l Listener) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.listeners == nil {
		n.listeners = make(map[int]Listener)
	}
	id := n.nextID
	n.nextID++
	n.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.listeners, id)
			n.mu.Unlock()
		})
	}
}

func (n *notifier) publish(ev Event) {
	n.mu.RLock()
	listeners := make([]Listener, 0, len(n.listeners))
	for _, l := range n.listeners {
		listeners = append(listeners, l)
	}
	n.mu.RUnlock()

	for _, l := range listeners {
		l(Event{
			Kind:           ev.Kind,
			Items:          domain.CloneLineItems(ev.Items),
			TotalItemCount: ev.TotalItemCount,
			ProductName:    ev.ProductName,
			Persisted:      ev.Persisted,
		})
	}
}
