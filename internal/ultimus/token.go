// Package ultimus provides a client for the in-house fund administrator's
// data API, the NAV source for the firm's own ETFs.
package ultimus

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// expirySkew is subtracted from a token's expiry when deciding whether it
// is still usable, so a token never expires mid-request.
const expirySkew = 30 * time.Second

// Token is one issued access token with its expiry.
type Token struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenSource issues fresh access tokens.
type TokenSource interface {
	FetchToken(ctx context.Context) (Token, error)
}

// TokenStore optionally persists tokens across process restarts.
type TokenStore interface {
	LoadToken() (Token, bool, error)
	SaveToken(Token) error
}

// TokenCache hands out a valid access token, fetching a new one only
// when the cached token is missing or expired. Invalidate discards the
// cached token, forcing a refetch on next use; callers invoke it after
// an upstream 401.
type TokenCache interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

type tokenCache struct {
	source TokenSource
	store  TokenStore
	now    func() time.Time

	mu      sync.Mutex
	current Token
	loaded  bool
}

// CacheOption configures a token cache.
type CacheOption func(*tokenCache)

// WithClock substitutes the time source. Tests use a fake clock instead
// of depending on wall-clock expiry.
func WithClock(now func() time.Time) CacheOption {
	return func(c *tokenCache) { c.now = now }
}

// WithStore enables persistence: the cache seeds itself from the store on
// first use and writes every freshly fetched token back.
func WithStore(store TokenStore) CacheOption {
	return func(c *tokenCache) { c.store = store }
}

// NewTokenCache creates a TokenCache over a token source.
func NewTokenCache(source TokenSource, opts ...CacheOption) TokenCache {
	c := &tokenCache{
		source: source,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *tokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded && c.store != nil {
		if tok, ok, err := c.store.LoadToken(); err == nil && ok {
			c.current = tok
		}
		c.loaded = true
	}

	if c.usable(c.current) {
		return c.current.Value, nil
	}

	tok, err := c.source.FetchToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch access token: %w", err)
	}
	c.current = tok
	if c.store != nil {
		if err := c.store.SaveToken(tok); err != nil {
			// Persistence is an optimization; a save failure must not
			// fail the request.
			return tok.Value, nil
		}
	}
	return tok.Value, nil
}

func (c *tokenCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = Token{}
	c.loaded = true
}

func (c *tokenCache) usable(tok Token) bool {
	return tok.Value != "" && c.now().Add(expirySkew).Before(tok.ExpiresAt)
}
