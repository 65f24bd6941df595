// Package identity 提供身份认证服务的 REST 客户端与令牌缓存
package identity

import (
	"sync"
	"time"

	"startupops-api/internal/config"
	"startupops-api/internal/domain/entity"
	"startupops-api/pkg/metrics"
)

// tokenCacheEntry 缓存条目
type tokenCacheEntry struct {
	principal  *entity.Principal
	insertedAt time.Time
}

// TokenCache 令牌校验结果的进程内缓存, 减少对认证服务的往返
// 超过容量上限时整体清空
type TokenCache struct {
	mu         sync.Mutex
	entries    map[string]tokenCacheEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewTokenCache 创建令牌缓存
func NewTokenCache(cfg *config.TokenCacheConfig) *TokenCache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &TokenCache{
		entries:    make(map[string]tokenCacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get 按令牌查询缓存, 条目存在且未超过 TTL 时命中
func (c *TokenCache) Get(token string) (*entity.Principal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[token]
	if ok && c.now().Sub(entry.insertedAt) < c.ttl {
		metrics.TokenCacheHits.Inc()
		return entry.principal, true
	}

	metrics.TokenCacheMisses.Inc()
	return nil, false
}

// Put 写入缓存, 条目数超过上限时整体清空
func (c *TokenCache) Put(token string, principal *entity.Principal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[token] = tokenCacheEntry{principal: principal, insertedAt: c.now()}
	if len(c.entries) > c.maxEntries {
		c.entries = make(map[string]tokenCacheEntry)
	}

	metrics.TokenCacheEntries.Set(float64(len(c.entries)))
}

// Len 返回当前缓存条目数
func (c *TokenCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
