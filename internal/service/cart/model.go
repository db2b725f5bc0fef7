package cart

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"

	"paintland/internal/domain"
)

// Store persists the full cart. Load never fails: unreadable data is an
// empty cart.
type Store interface {
	Load(ctx context.Context) []domain.LineItem
	Save(ctx context.Context, items []domain.LineItem) error
}

// Model is one device's cart. Every operation runs to completion under the
// model's lock and ends with a full overwrite of the stored cart. Two models
// over the same storage namespace do not coordinate: the last save wins.
type Model struct {
	mu     sync.Mutex
	items  []domain.LineItem
	store  Store
	logger *log.Logger
	events notifier
}

// Open builds a Model hydrated from store.
func Open(ctx context.Context, store Store, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	items := store.Load(ctx)
	if items == nil {
		items = []domain.LineItem{}
	}
	return &Model{items: items, store: store, logger: logger}
}

// Subscribe registers l for change events and returns a function that
// removes it.
func (m *Model) Subscribe(l Listener) func() {
	return m.events.subscribe(l)
}

// AddItem adds quantity units of product in the given color. A line with the
// same product and variant has its quantity increased instead.
func (m *Model) AddItem(ctx context.Context, product domain.ProductSnapshot, variant *domain.ColorVariant, quantity int) error {
	if strings.TrimSpace(product.ID) == "" {
		m.logger.Printf("cart model: add rejected name=%q error=%v", product.Name, domain.ErrInvalidProduct)
		return domain.ErrInvalidProduct
	}
	if quantity < 1 {
		m.logger.Printf("cart model: add rejected product_id=%s quantity=%d error=%v", product.ID, quantity, domain.ErrInvalidQuantity)
		return domain.ErrInvalidQuantity
	}

	var shade *domain.ColorVariant
	if variant != nil {
		v := *variant
		if variant.Hex != nil {
			hex := *variant.Hex
			v.Hex = &hex
		}
		shade = &v
	}
	key := domain.LineItemKey(product.ID, shade)

	m.mu.Lock()
	if idx := m.indexOf(key); idx >= 0 {
		m.items[idx].Quantity += quantity
	} else {
		m.items = append(m.items, domain.LineItem{
			Key:         key,
			ProductID:   product.ID,
			Name:        product.Name,
			Description: product.Description,
			ImageURL:    product.ImageURL,
			BrandID:     product.BrandID,
			Shade:       shade,
			Quantity:    quantity,
		})
	}
	ev := m.commit(ctx, EventItemAdded)
	m.mu.Unlock()

	ev.ProductName = product.Name
	m.events.publish(ev)
	return nil
}

// RemoveItem deletes the line with key. An unknown key changes nothing but
// the cart is still saved.
func (m *Model) RemoveItem(ctx context.Context, key string) {
	m.mu.Lock()
	m.removeLocked(key)
	ev := m.commit(ctx, EventItemRemoved)
	m.mu.Unlock()

	m.events.publish(ev)
}

// UpdateQuantity sets the quantity of the line with key. Zero or less
// removes the line. An unknown key is ignored.
func (m *Model) UpdateQuantity(ctx context.Context, key string, quantity int) {
	m.mu.Lock()
	idx := m.indexOf(key)
	if idx < 0 {
		m.mu.Unlock()
		return
	}

	kind := EventQuantityUpdated
	if quantity <= 0 {
		m.removeLocked(key)
		kind = EventItemRemoved
	} else {
		m.items[idx].Quantity = quantity
	}
	ev := m.commit(ctx, kind)
	m.mu.Unlock()

	m.events.publish(ev)
}

// Clear empties the cart.
func (m *Model) Clear(ctx context.Context) {
	m.mu.Lock()
	m.items = []domain.LineItem{}
	ev := m.commit(ctx, EventCleared)
	m.mu.Unlock()

	m.events.publish(ev)
}

// Items returns a copy of the cart lines in insertion order.
func (m *Model) Items() []domain.LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.CloneLineItems(m.items)
}

// TotalItemCount is the sum of all line quantities.
func (m *Model) TotalItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.TotalQuantity(m.items)
}

func (m *Model) indexOf(key string) int {
	for i, item := range m.items {
		if item.Key == key {
			return i
		}
	}
	return -1
}

func (m *Model) removeLocked(key string) {
	kept := m.items[:0]
	for _, item := range m.items {
		if item.Key != key {
			kept = append(kept, item)
		}
	}
	m.items = kept
}

// commit saves the cart and builds the change event. Must hold m.mu. A
// started save is not abandoned when the caller goes away.
func (m *Model) commit(ctx context.Context, kind EventKind) Event {
	persisted := true
	if err := m.store.Save(context.WithoutCancel(ctx), m.items); err != nil {
		persisted = false
		m.logger.Printf("cart model: save kind=%s items=%d error=%v", kind, len(m.items), err)
	}
	return Event{
		Kind:           kind,
		Items:          domain.CloneLineItems(m.items),
		TotalItemCount: domain.TotalQuantity(m.items),
		Persisted:      persisted,
	}
}
