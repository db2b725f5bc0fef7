// Package device issues opaque bearer tokens that identify a shopper's
// device. Each device id owns one cart namespace.
package device

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"paintland/internal/domain"
	"paintland/internal/repository/kv"
	"github.com/google/uuid"
)

// TokenNamespace is the kv namespace holding issued tokens.
const TokenNamespace = "device_tokens"

const DefaultTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type Service struct {
	store  kv.Repository
	cache  *tokenCache
	ttl    time.Duration
	now    func() time.Time
	logger *log.Logger
}

type Option func(*Service)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(store kv.Repository, logger *log.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Service{
		store:  store,
		cache:  newTokenCache(),
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates a new device id and a token bound to it.
func (s *Service) Issue(ctx context.Context) (token, deviceID string, err error) {
	token, err = randomToken()
	if err != nil {
		return "", "", err
	}
	meta := tokenMeta{
		DeviceID:  uuid.NewString(),
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return "", "", err
	}
	if err := s.store.Put(ctx, TokenNamespace, token, raw); err != nil {
		s.logger.Printf("device: issue token device_id=%s error=%v", meta.DeviceID, err)
		return "", "", fmt.Errorf("store token: %w", err)
	}
	s.cache.put(token, meta)
	s.logger.Printf("device: issued token device_id=%s expires_at=%s", meta.DeviceID, meta.ExpiresAt.Format(time.RFC3339))
	return token, meta.DeviceID, nil
}

// Lookup resolves a token to its device id. Expired tokens are removed.
func (s *Service) Lookup(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	meta, ok := s.cache.get(token)
	if !ok {
		raw, err := s.store.Get(ctx, TokenNamespace, token)
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrInvalidToken
		}
		if err != nil {
			s.logger.Printf("device: lookup token error=%v", err)
			return "", err
		}
		if err := json.Unmarshal(raw, &meta); err != nil || meta.DeviceID == "" {
			s.logger.Printf("device: unreadable token record error=%v", err)
			return "", ErrInvalidToken
		}
		s.cache.put(token, meta)
	}
	if meta.expired(s.now()) {
		s.cache.drop(token)
		if err := s.store.Delete(ctx, TokenNamespace, token); err != nil {
			s.logger.Printf("device: delete expired token device_id=%s error=%v", meta.DeviceID, err)
		}
		return "", ErrInvalidToken
	}
	return meta.DeviceID, nil
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
