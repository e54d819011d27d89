package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/config"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
)

const (
	summaryKeyPrefix  = "stock:summary"
	scanBatchSize     = 100
	defaultSummaryTTL = time.Minute
)

// SummaryCache memoizes the dashboard summary per filter state. A new
// snapshot load invalidates every entry.
type SummaryCache interface {
	GetSummary(ctx context.Context, state domain.FilterState) (*domain.Summary, bool, error)
	SetSummary(ctx context.Context, state domain.FilterState, summary *domain.Summary) error
	InvalidateAll(ctx context.Context) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

func NewSummaryCache(cfg config.Cache) (SummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSummaryCache{client: client, ttl: ttl}, nil
}

func NewNoopSummaryCache() SummaryCache {
	return &noopSummaryCache{}
}

func (c *redisSummaryCache) GetSummary(ctx context.Context, state domain.FilterState) (*domain.Summary, bool, error) {
	key := buildSummaryKey(state)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.Summary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode summary cache: %w", err)
	}

	return &summary, true, nil
}

func (c *redisSummaryCache) SetSummary(ctx context.Context, state domain.FilterState, summary *domain.Summary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary cache: %w", err)
	}

	if err := c.client.Set(ctx, buildSummaryKey(state), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisSummaryCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, summaryKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopSummaryCache) GetSummary(ctx context.Context, state domain.FilterState) (*domain.Summary, bool, error) {
	return nil, false, nil
}

func (n *noopSummaryCache) SetSummary(ctx context.Context, state domain.FilterState, summary *domain.Summary) error {
	return nil
}

func (n *noopSummaryCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildSummaryKey(state domain.FilterState) string {
	var parts []string
	for _, d := range domain.Dimensions {
		if v := state.Value(d); v != "" && v != domain.FilterAll {
			parts = append(parts, string(d)+"="+v)
		}
	}
	if state.Search != "" {
		parts = append(parts, "search="+strings.ToLower(state.Search))
	}

	if len(parts) == 0 {
		return summaryKeyPrefix + ":default"
	}

	hash := sha1.Sum([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s:%s", summaryKeyPrefix, hex.EncodeToString(hash[:]))
}
