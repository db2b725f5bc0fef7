package device

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

type tokenMeta struct {
	DeviceID  string    `json:"deviceId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (m tokenMeta) expired(now time.Time) bool {
	return now.After(m.ExpiresAt)
}

// tokenCache keeps recently seen tokens so lookups skip the backing store.
type tokenCache struct {
	mu     sync.RWMutex
	tokens map[string]tokenMeta
}

func newTokenCache() *tokenCache {
	return &tokenCache{
		tokens: make(map[string]tokenMeta),
	}
}

func (c *tokenCache) put(token string, meta tokenMeta) {
	c.mu.Lock()
	c.tokens[token] = meta
	c.mu.Unlock()
}

func (c *tokenCache) get(token string) (tokenMeta, bool) {
	c.mu.RLock()
	meta, ok := c.tokens[token]
	c.mu.RUnlock()
	return meta, ok
}

func (c *tokenCache) drop(token string) {
	c.mu.Lock()
	delete(c.tokens, token)
	c.mu.Unlock()
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
