package transcribe

import (
	"strings"
	"testing"

	"github.com/gianlucap/transcription-wow/internal/config"
)

func TestModelSelection(t *testing.T) {
	p := NewOpenAIProvider(config.TranscribeConfig{
		Model:        "gpt-4o-transcribe",
		PreviewModel: "gpt-4o-mini-transcribe",
	})

	if got := p.model(false); got != "gpt-4o-transcribe" {
		t.Errorf("model(false) = %q", got)
	}
	if got := p.model(true); got != "gpt-4o-mini-transcribe" {
		t.Errorf("model(true) = %q", got)
	}

	p = NewOpenAIProvider(config.TranscribeConfig{Model: "whisper-1"})
	if got := p.model(true); got != "whisper-1" {
		t.Errorf("model(true) without preview model = %q", got)
	}
}

func TestPromptFor(t *testing.T) {
	full := promptFor(false)
	preview := promptFor(true)

	if !strings.HasPrefix(preview, full) {
		t.Error("preview prompt should extend the base prompt")
	}
	if !strings.Contains(preview, "telegrafico") {
		t.Error("preview prompt should ask for a telegraphic answer")
	}
}
