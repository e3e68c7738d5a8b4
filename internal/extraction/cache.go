package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taxdesk-erp/taxdesk/internal/extract"
)

const cacheVersionKey = "extraction:version"

// Cache stores extraction results in Redis with versioned keys so a bump
// invalidates every entry at once.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get returns a cached document when present.
func (c *Cache) Get(ctx context.Context, documentID, categoryHint string) (extract.Document, bool) {
	if c == nil || c.client == nil {
		return extract.Document{}, false
	}
	key, err := c.buildKey(ctx, documentID, categoryHint)
	if err != nil {
		return extract.Document{}, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return extract.Document{}, false
	}
	var doc extract.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return extract.Document{}, false
	}
	return doc, true
}

// Put stores a document; cache failures are silent, the caller already has
// the value.
func (c *Cache) Put(ctx context.Context, documentID, categoryHint string, doc extract.Document) {
	if c == nil || c.client == nil {
		return
	}
	key, err := c.buildKey(ctx, documentID, categoryHint)
	if err != nil {
		return
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, payload, c.ttl).Err()
}

// Bump invalidates all cached extractions by incrementing the version.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}

func (c *Cache) buildKey(ctx context.Context, documentID, categoryHint string) (string, error) {
	ver, err := c.version(ctx)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256([]byte(documentID + "|" + categoryHint))
	return fmt.Sprintf("%s:%d", strings.Join([]string{"extraction", "doc", hex.EncodeToString(digest[:])}, ":"), ver), nil
}

func (c *Cache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if err == redis.Nil {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, cacheVersionKey, ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}
