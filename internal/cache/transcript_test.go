package cache

import (
	"context"
	"testing"
)

func TestKeyDeterministic(t *testing.T) {
	a := Key("gpt-4o-mini-transcribe", false, []byte("audio-bytes"))
	b := Key("gpt-4o-mini-transcribe", false, []byte("audio-bytes"))
	if a != b {
		t.Errorf("same payload produced different keys: %q vs %q", a, b)
	}

	c := Key("gpt-4o-transcribe", false, []byte("audio-bytes"))
	if a == c {
		t.Error("different models should produce different keys")
	}

	d := Key("gpt-4o-mini-transcribe", false, []byte("other-bytes"))
	if a == d {
		t.Error("different payloads should produce different keys")
	}
}

// Preview transcriptions use a terser prompt than full ones, so the same
// bytes with the same model must never share a cache entry across modes.
func TestKeySeparatesPreviewFromFull(t *testing.T) {
	full := Key("gpt-4o-mini-transcribe", false, []byte("audio-bytes"))
	preview := Key("gpt-4o-mini-transcribe", true, []byte("audio-bytes"))
	if full == preview {
		t.Errorf("preview and full share key %q", full)
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *TranscriptCache

	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Error("nil cache should always miss")
	}
	c.Set(context.Background(), "k", "v") // must not panic

	empty := &TranscriptCache{}
	if _, ok := empty.Get(context.Background(), "k"); ok {
		t.Error("cache without client should always miss")
	}
}
