package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedProvider memoizes embeddings in Redis. The cache is best-effort:
// Redis being down or returning garbage falls through to the inner provider
// and never surfaces as an error.
type CachedProvider struct {
	inner Provider
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedProvider(inner Provider, rdb *redis.Client) Provider {
	return &CachedProvider{
		inner: inner,
		rdb:   rdb,
		ttl:   24 * time.Hour,
	}
}

func cacheKey(text string, taskType string) string {
	sum := sha256.Sum256([]byte(taskType + "\x00" + text))
	return fmt.Sprintf("embedding:%x", sum)
}

func (p *CachedProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	key := cacheKey(text, taskType)

	if raw, err := p.rdb.Get(ctx, key).Bytes(); err == nil {
		var vec []float32
		if err := json.Unmarshal(raw, &vec); err == nil && len(vec) > 0 {
			return vec, nil
		}
	}

	vec, err := p.inner.Generate(ctx, text, taskType)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(vec); err == nil {
		p.rdb.Set(ctx, key, raw, p.ttl)
	}
	return vec, nil
}
