// Package cache stores generated question sets in Redis, keyed by a
// fingerprint of the generation parameters. The cache is a pure optimization:
// every failure mode (no configuration, connection error, malformed payload,
// true miss) is reported as an absent value and never as an error.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"dronaai/internal/models"
)

const (
	// TTL is how long a cached question set stays valid.
	TTL = 6 * time.Hour

	keyPrefix   = "dronaai:questions:"
	dialTimeout = 3 * time.Second
)

// QuestionCache wraps the Redis connection. A zero or unavailable cache is
// fully usable: Get always misses and Put reports failure.
type QuestionCache struct {
	client *redis.Client
}

// New connects to the Redis instance named by REDIS_URL. Missing
// configuration or an unreachable server yields an unavailable cache, not an
// error; callers are expected to run identically either way.
func New(ctx context.Context) *QuestionCache {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		log.Println("INFO: REDIS_URL not set, question cache disabled")
		return &QuestionCache{}
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("WARN: invalid REDIS_URL, question cache disabled: %v", err)
		return &QuestionCache{}
	}
	opts.DialTimeout = dialTimeout
	opts.ReadTimeout = dialTimeout
	opts.WriteTimeout = dialTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("WARN: Redis unreachable, question cache disabled: %v", err)
		return &QuestionCache{}
	}

	log.Println("INFO: question cache connected")
	return &QuestionCache{client: client}
}

// Available reports whether the backing store answered the initial ping.
func (c *QuestionCache) Available() bool {
	return c != nil && c.client != nil
}

// DeriveKey fingerprints the generation parameters. Topic order does not
// matter: topics are sorted before hashing, so the same tuple always maps to
// the same key.
func DeriveKey(topics []string, difficulty, role string, questionCount int) string {
	sorted := make([]string, len(topics))
	copy(sorted, topics)
	sort.Strings(sorted)

	raw := fmt.Sprintf("%s:%s:%s:%d", strings.Join(sorted, "|"), difficulty, role, questionCount)
	sum := md5.Sum([]byte(raw))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get looks up a cached question set. A connection failure, a malformed
// stored value and a true miss are indistinguishable: all return (nil, false).
func (c *QuestionCache) Get(ctx context.Context, key string) ([]models.Question, bool) {
	if !c.Available() {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("WARN: cache get failed: %v", err)
		}
		return nil, false
	}

	var questions []models.Question
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		log.Printf("WARN: cache entry for %s is malformed, treating as miss: %v", key, err)
		return nil, false
	}
	return questions, true
}

// Put stores a question set under key for the cache TTL. Best effort: a
// failed write is reported as false and swallowed, never propagated.
func (c *QuestionCache) Put(ctx context.Context, key string, questions []models.Question) bool {
	if !c.Available() {
		return false
	}

	data, err := json.Marshal(questions)
	if err != nil {
		log.Printf("WARN: cache put failed to serialize: %v", err)
		return false
	}
	if err := c.client.Set(ctx, key, data, TTL).Err(); err != nil {
		log.Printf("WARN: cache put failed: %v", err)
		return false
	}
	return true
}
