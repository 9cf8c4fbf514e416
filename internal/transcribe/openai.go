package transcribe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gianlucap/transcription-wow/internal/config"
)

const (
	basePrompt = "Trascrivi fedelmente in italiano. " +
		"Se l'audio è silenzioso/rumoroso o non contiene parlato, restituisci stringa vuota."
	previewPromptSuffix = " Rispondi telegrafico e non inserire punteggiatura incerta."
)

// OpenAIProvider transcribes audio through the OpenAI transcription API.
type OpenAIProvider struct {
	client *openai.Client
	cfg    config.TranscribeConfig
}

func NewOpenAIProvider(cfg config.TranscribeConfig) *OpenAIProvider {
	clientCfg := openai.DefaultConfig(cfg.OpenAIKey)
	clientCfg.HTTPClient = &http.Client{Timeout: 300 * time.Second}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Transcribe(ctx context.Context, req Request) (*Result, error) {
	filename := req.Filename
	if filename == "" {
		filename = "audio.wav"
	}

	oReq := openai.AudioRequest{
		Model:       p.model(req.Preview),
		Reader:      req.Audio,
		FilePath:    filename,
		Prompt:      promptFor(req.Preview),
		Temperature: float32(p.cfg.Temperature),
		Format:      openai.AudioResponseFormatJSON,
	}
	if p.cfg.Language != "" {
		oReq.Language = p.cfg.Language
	}

	resp, err := p.client.CreateTranscription(ctx, oReq)
	if err != nil {
		return nil, fmt.Errorf("openai transcription: %w", err)
	}

	return &Result{Text: strings.TrimSpace(resp.Text)}, nil
}

func (p *OpenAIProvider) model(preview bool) string {
	if preview && p.cfg.PreviewModel != "" {
		return p.cfg.PreviewModel
	}
	return p.cfg.Model
}

func promptFor(preview bool) string {
	if preview {
		return basePrompt + previewPromptSuffix
	}
	return basePrompt
}
