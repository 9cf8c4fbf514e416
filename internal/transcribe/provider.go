package transcribe

import (
	"context"
	"io"
)

// MinAudioBytes is the smallest upload worth sending upstream. Anything
// shorter cannot contain speech and would only waste an API call.
const MinAudioBytes = 2048

// Request holds one audio payload to transcribe. Preview requests trade
// accuracy for latency: they use the preview model and a telegraphic prompt.
type Request struct {
	Audio    io.Reader
	Filename string
	Preview  bool
}

// Result is the raw transcription before any cleanup.
type Result struct {
	Text string `json:"text"`
}

// Provider is the interface for speech-to-text backends.
type Provider interface {
	Transcribe(ctx context.Context, req Request) (*Result, error)
	Name() string
}
