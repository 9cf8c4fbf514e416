// Package summarize turns accumulated transcript text into the "AI
// Insights" panel: a short summary plus bullet notes.
package summarize

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/gianlucap/transcription-wow/internal/llm"
	"github.com/gianlucap/transcription-wow/internal/textproc"
)

const systemPrompt = "Sei un assistente che crea un riassunto conciso e note puntate da una trascrizione italiana. " +
	"Stile chiaro e naturale. Non inventare contenuti. " +
	`Restituisci SOLO JSON con chiavi: "summary" (3-6 frasi) e "notes" (5-10 voci brevi).`

const maxNotes = 10

// Insights is the summary-and-notes payload returned to the client.
type Insights struct {
	Summary string   `json:"summary"`
	Notes   []string `json:"notes"`
}

type Service struct {
	gw    llm.Gateway
	model string
}

func NewService(gw llm.Gateway, model string) *Service {
	return &Service{gw: gw, model: model}
}

// Summarize produces insights for a transcript. LLM failures degrade to an
// extractive summary instead of surfacing an error: the panel is a
// nice-to-have and should never block the session.
func (s *Service) Summarize(ctx context.Context, text string) *Insights {
	resp, err := s.gw.Chat(ctx, llm.ChatRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		Temperature:  0.2,
		JSONResponse: true,
	})
	if err != nil {
		slog.Warn("summary LLM call failed, using extractive fallback", "error", err)
		return extractive(text)
	}

	insights, err := parseInsights(resp.Content)
	if err != nil {
		slog.Warn("summary response was not valid JSON, using extractive fallback", "error", err)
		return extractive(text)
	}
	return insights
}

func parseInsights(content string) (*Insights, error) {
	var raw struct {
		Summary string   `json:"summary"`
		Notes   []string `json:"notes"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, err
	}

	notes := make([]string, 0, len(raw.Notes))
	for _, n := range raw.Notes {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		notes = append(notes, n)
		if len(notes) == maxNotes {
			break
		}
	}

	return &Insights{
		Summary: strings.TrimSpace(raw.Summary),
		Notes:   notes,
	}, nil
}

// extractive is the no-LLM fallback: the first five sentences become the
// summary, the next five the notes.
func extractive(text string) *Insights {
	sents := textproc.Sentences(text)

	end := len(sents)
	if end > 5 {
		end = 5
	}
	summary := strings.Join(sents[:end], " ")

	notes := []string{}
	if len(sents) > 5 {
		upper := len(sents)
		if upper > 10 {
			upper = 10
		}
		notes = append(notes, sents[5:upper]...)
	}

	return &Insights{Summary: summary, Notes: notes}
}
