package cart

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"paintland/internal/domain"
	"paintland/internal/repository/kv"
)

// countingRepo wraps a kv.Repository and records writes.
type countingRepo struct {
	kv.Repository
	puts   int
	putErr error
	getErr error
}

func (r *countingRepo) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.Repository.Get(ctx, namespace, key)
}

func (r *countingRepo) Put(ctx context.Context, namespace, key string, value []byte) error {
	r.puts++
	if r.putErr != nil {
		return r.putErr
	}
	return r.Repository.Put(ctx, namespace, key, value)
}

func strPtr(v string) *string {
	return &v
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	store := NewStore(kv.NewMemory(), "dev", nil)
	items := store.Load(context.Background())
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil cart, got %#v", items)
	}
}

func TestStore_LoadMalformedIsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemory()
	if err := repo.Put(ctx, "dev", StorageKey, []byte(`{not json`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	items := NewStore(repo, "dev", nil).Load(ctx)
	if len(items) != 0 {
		t.Fatalf("expected empty cart for malformed value, got %+v", items)
	}
}

func TestStore_LoadBackendErrorIsEmpty(t *testing.T) {
	repo := &countingRepo{Repository: kv.NewMemory(), getErr: errors.New("unavailable")}
	items := NewStore(repo, "dev", nil).Load(context.Background())
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemory()
	items := []domain.LineItem{
		{
			Key:         "p1_v1",
			ProductID:   "p1",
			Name:        "Matte White",
			Description: "Interior",
			ImageURL:    "https://img/p1.jpg",
			BrandID:     "b1",
			Shade:       &domain.ColorVariant{ID: "v1", Code: "RAL9010", Name: "Signal White", Hex: strPtr("#f4f4f4")},
			Quantity:    2,
		},
		{Key: "p2_no-variant", ProductID: "p2", Name: "Gloss Black", Quantity: 1},
	}
	if err := NewStore(repo, "dev", nil).Save(ctx, items); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := NewStore(repo, "dev", nil).Load(ctx)
	if !reflect.DeepEqual(items, got) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", items, got)
	}
}

func TestStore_SaveUsesCanonicalKeyAndJSONArray(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemory()
	if err := NewStore(repo, "dev", nil).Save(ctx, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := repo.Get(ctx, "dev", "peintureLandCart")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("expected empty JSON array, got %s", raw)
	}
}

func TestStore_LoadMigratesAndWritesBackOnce(t *testing.T) {
	ctx := context.Background()
	repo := &countingRepo{Repository: kv.NewMemory()}
	legacy := `[{"id":"p1","name":"Matte White","shade":"RAL9010 - Signal White","quantity":2},{"id":"p2","name":"Gloss Black","quantity":1}]`
	if err := repo.Repository.Put(ctx, "dev", StorageKey, []byte(legacy)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	first := NewStore(repo, "dev", nil).Load(ctx)
	if repo.puts != 1 {
		t.Fatalf("expected exactly one writeback, got %d", repo.puts)
	}
	if len(first) != 2 || first[0].Shade == nil || !strings.HasPrefix(first[0].Shade.ID, "migrated_") {
		t.Fatalf("unexpected migrated cart %+v", first)
	}

	second := NewStore(repo, "dev", nil).Load(ctx)
	if repo.puts != 1 {
		t.Fatalf("expected no write on current data, got %d writes", repo.puts)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reload after migration differs:\n%+v\n%+v", first, second)
	}
}

func TestStore_MigrationWritebackFailureStillReturnsItems(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	if err := mem.Put(ctx, "dev", StorageKey, []byte(`[{"id":"p1","name":"A","quantity":1}]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	repo := &countingRepo{Repository: mem, putErr: errors.New("quota exceeded")}
	items := NewStore(repo, "dev", nil).Load(ctx)
	if len(items) != 1 || items[0].Key != "p1_no-variant" {
		t.Fatalf("expected migrated item despite write failure, got %+v", items)
	}
}

func TestStore_SaveReportsBackendError(t *testing.T) {
	repo := &countingRepo{Repository: kv.NewMemory(), putErr: errors.New("quota exceeded")}
	err := NewStore(repo, "dev", nil).Save(context.Background(), []domain.LineItem{{Key: "k", ProductID: "p", Quantity: 1}})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
}
