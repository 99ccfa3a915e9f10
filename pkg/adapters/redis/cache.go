// Package redis provides a read-through cache in front of another
// SequenceStore. Sequences are immutable, so cached entries never need
// invalidation; an optional TTL bounds memory use on the Redis side.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
	"github.com/miriamsimone/video-generation-pipeline/pkg/ports"
)

// Cache implements ports.SequenceStore by caching manifests and frame
// payloads from a backing store in Redis.
type Cache struct {
	client *backend.Client
	next   ports.SequenceStore
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for cached entries. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached entries.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a Redis cache in front of next.
func New(address, password string, db int, next ports.SequenceStore, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, next, opts...)
}

// NewFromClient creates a cache from an existing client.
func NewFromClient(client *backend.Client, next ports.SequenceStore, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		next:   next,
		prefix: "facerig:seq:",
		ttl:    0,
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

func (c *Cache) manifestKey(pathID string) string {
	return c.prefix + "manifest:" + pathID
}

func (c *Cache) frameKey(pathID, file string) string {
	return c.prefix + "frame:" + pathID + ":" + file
}

// GetSequence implements ports.SequenceStore.
func (c *Cache) GetSequence(ctx context.Context, pathID string) (*domain.Sequence, error) {
	key := c.manifestKey(pathID)
	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var seq domain.Sequence
		if err := json.Unmarshal(data, &seq); err == nil {
			return &seq, nil
		}
		// A corrupt cache entry falls through to the backing store.
		c.client.Del(ctx, key)
	} else if !errors.Is(err, backend.Nil) {
		return nil, fmt.Errorf("redis: get manifest %q: %w", pathID, err)
	}

	seq, err := c.next.GetSequence(ctx, pathID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(seq); err == nil {
		c.client.Set(ctx, key, data, c.ttl)
	}
	return seq, nil
}

// GetFrame implements ports.SequenceStore.
func (c *Cache) GetFrame(ctx context.Context, pathID, file string) ([]byte, error) {
	key := c.frameKey(pathID, file)
	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, backend.Nil) {
		return nil, fmt.Errorf("redis: get frame %q of %q: %w", file, pathID, err)
	}

	data, err = c.next.GetFrame(ctx, pathID, file)
	if err != nil {
		return nil, err
	}
	c.client.Set(ctx, key, data, c.ttl)
	return data, nil
}

// ListSequences implements ports.SequenceStore. The index is served
// straight from the backing store so new uploads appear immediately.
func (c *Cache) ListSequences(ctx context.Context) ([]string, error) {
	return c.next.ListSequences(ctx)
}
