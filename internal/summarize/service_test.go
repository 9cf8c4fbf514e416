package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gianlucap/transcription-wow/internal/llm"
)

type fakeGateway struct {
	content string
	err     error
}

func (f *fakeGateway) Chat(_ context.Context, _ llm.ChatRequest) (*llm.ChatResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{Content: f.content}, nil
}

func (f *fakeGateway) Embed(_ context.Context, _ llm.EmbeddingRequest) (*llm.EmbeddingResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGateway) Provider(string) (llm.Provider, error) {
	return nil, errors.New("not implemented")
}

func TestSummarize(t *testing.T) {
	gw := &fakeGateway{content: `{"summary": "Un riassunto breve.", "notes": ["punto uno", " ", "punto due"]}`}
	svc := NewService(gw, "gpt-4o-mini")

	got := svc.Summarize(context.Background(), "testo della trascrizione")
	if got.Summary != "Un riassunto breve." {
		t.Errorf("Summary = %q", got.Summary)
	}
	if len(got.Notes) != 2 {
		t.Fatalf("Notes = %#v, want blank entries dropped", got.Notes)
	}
	if got.Notes[1] != "punto due" {
		t.Errorf("Notes[1] = %q", got.Notes[1])
	}
}

func TestSummarizeCapsNotes(t *testing.T) {
	var notes []string
	for i := 0; i < 15; i++ {
		notes = append(notes, `"nota"`)
	}
	gw := &fakeGateway{content: `{"summary": "s", "notes": [` + strings.Join(notes, ",") + `]}`}
	svc := NewService(gw, "gpt-4o-mini")

	got := svc.Summarize(context.Background(), "testo")
	if len(got.Notes) != 10 {
		t.Errorf("len(Notes) = %d, want 10", len(got.Notes))
	}
}

func TestSummarizeFallbackOnError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("upstream down")}
	svc := NewService(gw, "gpt-4o-mini")

	text := "Prima frase del documento completo. Seconda frase del documento completo. " +
		"Terza frase del documento completo. Quarta frase del documento completo. " +
		"Quinta frase del documento completo. Sesta frase del documento completo. " +
		"Settima frase del documento completo."

	got := svc.Summarize(context.Background(), text)
	if !strings.HasPrefix(got.Summary, "Prima frase") {
		t.Errorf("fallback summary = %q", got.Summary)
	}
	if !strings.Contains(got.Summary, "Quinta frase") {
		t.Errorf("fallback summary should hold five sentences: %q", got.Summary)
	}
	if strings.Contains(got.Summary, "Sesta frase") {
		t.Errorf("fallback summary holds too many sentences: %q", got.Summary)
	}
	if len(got.Notes) != 2 {
		t.Errorf("fallback notes = %#v", got.Notes)
	}
}

func TestSummarizeFallbackOnBadJSON(t *testing.T) {
	gw := &fakeGateway{content: "non sono JSON"}
	svc := NewService(gw, "gpt-4o-mini")

	got := svc.Summarize(context.Background(), "Una sola frase di contenuto vero.")
	if got.Summary != "Una sola frase di contenuto vero." {
		t.Errorf("fallback summary = %q", got.Summary)
	}
	if len(got.Notes) != 0 {
		t.Errorf("fallback notes = %#v, want empty", got.Notes)
	}
}
