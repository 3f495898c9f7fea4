package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"golang.org/x/time/rate"

	"github.com/prebunk/prebunk/internal/cache"
)

// CachedCompleter wraps a Completer with an in-memory response cache and
// a request rate limit. Identical prompts within the TTL are served from
// memory without touching the provider.
type CachedCompleter struct {
	inner   Completer
	store   *cache.Memory
	limiter *rate.Limiter
}

// NewCachedCompleter wraps inner. ttl bounds how long responses are kept;
// rps caps provider requests per second (0 means unlimited).
func NewCachedCompleter(inner Completer, ttl time.Duration, rps float64) *CachedCompleter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &CachedCompleter{
		inner:   inner,
		store:   cache.NewMemory(ttl, ttl*2),
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Name returns the wrapped provider's name
func (c *CachedCompleter) Name() string {
	return c.inner.Name()
}

// Complete serves from cache when possible, otherwise waits for rate
// clearance and delegates. Errors are never cached.
func (c *CachedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	key := promptKey(prompt)
	if resp, ok := c.store.Get(key); ok {
		return resp, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.inner.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	c.store.Set(key, resp)
	return resp, nil
}

func promptKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
