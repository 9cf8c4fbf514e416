package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gianlucap/transcription-wow/internal/history"
	"github.com/gianlucap/transcription-wow/internal/llm"
)

// SessionsHandler exposes the recorded-session history and semantic search
// over transcribed parts. Everything here needs the database.
type SessionsHandler struct {
	hist     *history.Store // nil without a database
	gw       llm.Gateway
	embModel string
}

func NewSessionsHandler(hist *history.Store, gw llm.Gateway, embModel string) *SessionsHandler {
	return &SessionsHandler{hist: hist, gw: gw, embModel: embModel}
}

func (h *SessionsHandler) available(w http.ResponseWriter) bool {
	if h.hist == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "session history requires a configured database"})
		return false
	}
	return true
}

func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	sessions, err := h.hist.ListSessions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sessions == nil {
		sessions = []history.Session{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	sid := chi.URLParam(r, "sid")
	sess, parts, summary, err := h.hist.GetSession(r.Context(), sid)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if parts == nil {
		parts = []history.Part{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": sess,
		"parts":   parts,
		"summary": summary,
	})
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

// Search embeds the query and ranks stored transcript parts by cosine
// similarity.
func (h *SessionsHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query required"})
		return
	}

	emb, err := h.gw.Embed(r.Context(), llm.EmbeddingRequest{
		Model: h.embModel,
		Input: []string{req.Query},
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "embed query: " + err.Error()})
		return
	}
	if len(emb.Embeddings) == 0 {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "embedding response was empty"})
		return
	}

	results, err := h.hist.SearchParts(r.Context(), emb.Embeddings[0], req.TopK)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if results == nil {
		results = []history.SearchResult{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}
