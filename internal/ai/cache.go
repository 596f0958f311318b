package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "roteiro:gen:"

// CachedProvider serves repeated requests from Redis. Cache failures are
// logged and fall through to the wrapped provider.
type CachedProvider struct {
	next  LLMProvider
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedProvider(next LLMProvider, rdb *redis.Client, ttl time.Duration) *CachedProvider {
	return &CachedProvider{next: next, redis: rdb, ttl: ttl}
}

func (p *CachedProvider) Model() string {
	return p.next.Model()
}

func (p *CachedProvider) PlanItinerary(ctx context.Context, userInput string) (string, error) {
	key := cacheKey(p.next.Model(), userInput)

	cached, err := p.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		return cached, nil
	case err != redis.Nil:
		log.Printf("ai cache: get %s: %v", key, err)
	}

	reply, err := p.next.PlanItinerary(ctx, userInput)
	if err != nil {
		return "", err
	}
	if err := p.redis.Set(ctx, key, reply, p.ttl).Err(); err != nil {
		log.Printf("ai cache: set %s: %v", key, err)
	}
	return reply, nil
}

// cacheKey ignores case and whitespace differences in the request.
func cacheKey(model, userInput string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(userInput), " "))
	sum := sha256.Sum256([]byte(model + "|" + normalized))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
