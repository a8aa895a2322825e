package secondary

import (
	"context"
	"time"
)

// VerdictCache is a best-effort TTL cache for judge responses (the language
// list and submission-status lookups). Misses and backend failures are
// indistinguishable to callers; entries are never invalidated early.
type VerdictCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
