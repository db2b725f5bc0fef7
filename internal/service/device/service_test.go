package device

import (
	"context"
	"errors"
	"testing"
	"time"

	"paintland/internal/repository/kv"
)

func TestService_IssueAndLookup(t *testing.T) {
	ctx := context.Background()
	svc := New(kv.NewMemory(), nil)

	token, deviceID, err := svc.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" || deviceID == "" {
		t.Fatalf("expected token and device id, got %q %q", token, deviceID)
	}

	got, err := svc.Lookup(ctx, token)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != deviceID {
		t.Fatalf("expected device %s, got %s", deviceID, got)
	}
}

func TestService_IssueDistinctDevices(t *testing.T) {
	ctx := context.Background()
	svc := New(kv.NewMemory(), nil)

	t1, d1, _ := svc.Issue(ctx)
	t2, d2, _ := svc.Issue(ctx)
	if t1 == t2 || d1 == d2 {
		t.Fatalf("expected distinct tokens and devices")
	}
}

func TestService_LookupUnknown(t *testing.T) {
	svc := New(kv.NewMemory(), nil)
	for _, token := range []string{"", "nope"} {
		if _, err := svc.Lookup(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestService_LookupSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	token, deviceID, err := New(store, nil).Issue(ctx)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := New(store, nil).Lookup(ctx, token)
	if err != nil {
		t.Fatalf("Lookup after restart: %v", err)
	}
	if got != deviceID {
		t.Fatalf("expected device %s, got %s", deviceID, got)
	}
}

func TestService_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := New(store, nil, WithTTL(time.Hour), WithClock(func() time.Time { return now }))

	token, _, err := svc.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := svc.Lookup(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := store.Get(ctx, TokenNamespace, token); err == nil {
		t.Fatalf("expected expired token to be deleted")
	}
}

func TestService_UnreadableRecord(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	_ = store.Put(ctx, TokenNamespace, "broken", []byte("{"))

	if _, err := New(store, nil).Lookup(ctx, "broken"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestService_TTLSeconds(t *testing.T) {
	if got := New(kv.NewMemory(), nil).TTLSeconds(); got != int(DefaultTTL.Seconds()) {
		t.Fatalf("unexpected default ttl %d", got)
	}
	if got := New(kv.NewMemory(), nil, WithTTL(2*time.Hour)).TTLSeconds(); got != 7200 {
		t.Fatalf("unexpected ttl %d", got)
	}
	if got := New(kv.NewMemory(), nil, WithTTL(0)).TTLSeconds(); got != int(DefaultTTL.Seconds()) {
		t.Fatalf("zero ttl should keep default, got %d", got)
	}
}
