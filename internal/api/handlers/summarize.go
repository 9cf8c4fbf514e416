package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gianlucap/transcription-wow/internal/history"
	"github.com/gianlucap/transcription-wow/internal/summarize"
)

type SummarizeHandler struct {
	svc  *summarize.Service
	hist *history.Store // nil without a database
}

func NewSummarizeHandler(svc *summarize.Service, hist *history.Store) *SummarizeHandler {
	return &SummarizeHandler{svc: svc, hist: hist}
}

type summarizeRequest struct {
	Text string `json:"text"`
	SID  string `json:"sid,omitempty"`
}

// Summarize produces the AI Insights payload for the accumulated
// transcript. The service itself never fails (it falls back to an
// extractive summary), so the only error paths here are bad input.
func (h *SummarizeHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusOK, &summarize.Insights{Notes: []string{}})
		return
	}

	insights := h.svc.Summarize(r.Context(), req.Text)

	if h.hist != nil && req.SID != "" {
		if sessionID, err := h.hist.UpsertSession(r.Context(), req.SID, ""); err != nil {
			slog.Warn("record session for summary failed", "sid", req.SID, "error", err)
		} else if err := h.hist.SaveSummary(r.Context(), sessionID, insights.Summary, insights.Notes); err != nil {
			slog.Warn("save summary failed", "sid", req.SID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, insights)
}
