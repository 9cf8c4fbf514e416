package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gianlucap/transcription-wow/internal/llm"
	"github.com/gianlucap/transcription-wow/internal/summarize"
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
	return &llm.EmbeddingResponse{}, nil
}

func (f *fakeGateway) Provider(string) (llm.Provider, error) { return nil, nil }

func TestSummarize(t *testing.T) {
	gw := &fakeGateway{content: `{"summary": "Riassunto della riunione.", "notes": ["Primo punto", "Secondo punto"]}`}
	h := NewSummarizeHandler(summarize.NewService(gw, "gpt-4o-mini"), nil)

	body := `{"text": "Oggi abbiamo discusso del progetto e delle scadenze previste per fine mese."}`
	req := httptest.NewRequest(http.MethodPost, "/summarize", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Summarize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out summarize.Insights
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Summary != "Riassunto della riunione." {
		t.Errorf("summary = %q", out.Summary)
	}
	if len(out.Notes) != 2 {
		t.Errorf("notes = %v", out.Notes)
	}
}

func TestSummarizeEmptyText(t *testing.T) {
	h := NewSummarizeHandler(summarize.NewService(&fakeGateway{}, "gpt-4o-mini"), nil)

	req := httptest.NewRequest(http.MethodPost, "/summarize", strings.NewReader(`{"text": "   "}`))
	rec := httptest.NewRecorder()

	h.Summarize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out summarize.Insights
	json.NewDecoder(rec.Body).Decode(&out)
	if out.Summary != "" {
		t.Errorf("summary = %q, want empty", out.Summary)
	}
	if out.Notes == nil || len(out.Notes) != 0 {
		t.Errorf("notes = %#v, want empty slice", out.Notes)
	}
}

func TestSummarizeBadBody(t *testing.T) {
	h := NewSummarizeHandler(summarize.NewService(&fakeGateway{}, "gpt-4o-mini"), nil)

	req := httptest.NewRequest(http.MethodPost, "/summarize", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	h.Summarize(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSessionsUnavailableWithoutDatabase(t *testing.T) {
	h := NewSessionsHandler(nil, &fakeGateway{}, "text-embedding-3-small")

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("List status = %d, want 503", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/sessions/search", strings.NewReader(`{"query": "scadenze"}`))
	rec = httptest.NewRecorder()
	h.Search(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Search status = %d, want 503", rec.Code)
	}
}
