package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"paintland/internal/domain"
	"paintland/internal/repository/kv"
	"github.com/google/uuid"
)

// StorageKey is the single key the cart is stored under in every namespace.
const StorageKey = "peintureLandCart"

// Store reads and writes one device's cart as a JSON array.
type Store struct {
	kv           kv.Repository
	namespace    string
	logger       *log.Logger
	newVariantID func() string
}

func NewStore(repo kv.Repository, namespace string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		kv:           repo,
		namespace:    namespace,
		logger:       logger,
		newVariantID: syntheticVariantID,
	}
}

func syntheticVariantID() string {
	return "migrated_" + uuid.NewString()
}

// Load returns the stored cart, upgrading legacy entries on the way. A
// missing or unreadable value is an empty cart. When any entry had to be
// upgraded the whole cart is written back once.
func (s *Store) Load(ctx context.Context) []domain.LineItem {
	value, err := s.kv.Get(ctx, s.namespace, StorageKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("cart store: load namespace=%s error=%v", s.namespace, err)
		}
		return []domain.LineItem{}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(value, &raw); err != nil {
		s.logger.Printf("cart store: decode namespace=%s error=%v", s.namespace, err)
		return []domain.LineItem{}
	}

	items, changed := Migrate(raw, s.newVariantID)
	if changed > 0 {
		if err := s.Save(ctx, items); err != nil {
			s.logger.Printf("cart store: migrate writeback namespace=%s error=%v", s.namespace, err)
		} else {
			s.logger.Printf("cart store: migrated namespace=%s changed=%d items=%d", s.namespace, changed, len(items))
		}
	}
	return items
}

// Save overwrites the stored cart with items.
func (s *Store) Save(ctx context.Context, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	value, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.kv.Put(ctx, s.namespace, StorageKey, value); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	return nil
}
