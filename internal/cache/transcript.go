// Package cache keeps a short-lived redis cache of transcription results
// keyed by audio content hash. The recorder client retries preview chunks
// aggressively on slow networks; the cache keeps those retries from being
// billed twice upstream.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 15 * time.Minute

type cachedTranscript struct {
	Text string `json:"text"`
}

// TranscriptCache is nil-safe: a nil cache always misses, so callers don't
// branch on whether redis is configured.
type TranscriptCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTranscriptCache(client *redis.Client) *TranscriptCache {
	return &TranscriptCache{client: client, ttl: defaultTTL}
}

// Key derives the cache key for an audio payload transcribed with a given
// model. Previews run with a different prompt and produce different text
// for the same bytes, so they get their own keyspace.
func Key(model string, preview bool, audio []byte) string {
	mode := "full"
	if preview {
		mode = "preview"
	}
	sum := sha256.Sum256(audio)
	return "transcript:" + model + ":" + mode + ":" + hex.EncodeToString(sum[:])
}

func (c *TranscriptCache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	var entry cachedTranscript
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return "", false
	}
	return entry.Text, true
}

func (c *TranscriptCache) Set(ctx context.Context, key, text string) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(cachedTranscript{Text: text})
	if err != nil {
		return
	}
	c.client.Set(ctx, key, data, c.ttl)
}
