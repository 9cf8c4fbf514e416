package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gianlucap/transcription-wow/internal/cache"
	"github.com/gianlucap/transcription-wow/internal/config"
	"github.com/gianlucap/transcription-wow/internal/document"
	"github.com/gianlucap/transcription-wow/internal/history"
	"github.com/gianlucap/transcription-wow/internal/queue"
	"github.com/gianlucap/transcription-wow/internal/session"
	"github.com/gianlucap/transcription-wow/internal/textproc"
	"github.com/gianlucap/transcription-wow/internal/transcribe"
)

const (
	maxUploadBytes   = 64 << 20
	defaultTitle     = "Trascrizione"
	defaultFullTitle = "Trascrizione completa"
	previewMaxRunes  = 200
)

// TranscriptionHandler owns the audio endpoints: incremental uploads, live
// previews and the full-file saves at session stop.
type TranscriptionHandler struct {
	stt      transcribe.Provider
	store    *session.Store
	cache    *cache.TranscriptCache
	hist     *history.Store // nil without a database
	queue    *queue.Client  // nil without redis
	cfg      config.TranscribeConfig
	logoName string
}

func NewTranscriptionHandler(
	stt transcribe.Provider,
	store *session.Store,
	tc *cache.TranscriptCache,
	hist *history.Store,
	qc *queue.Client,
	cfg config.TranscribeConfig,
	logoName string,
) *TranscriptionHandler {
	return &TranscriptionHandler{
		stt:      stt,
		store:    store,
		cache:    tc,
		hist:     hist,
		queue:    qc,
		cfg:      cfg,
		logoName: logoName,
	}
}

type uploadResponse struct {
	Text      string `json:"text"`
	Formatted string `json:"formatted"`
}

// Upload transcribes one audio block, persists both the audio and its
// formatted HTML transcript, and returns the cleaned text.
func (h *TranscriptionHandler) Upload(w http.ResponseWriter, r *http.Request) {
	content, filename, ok := readUpload(w, r)
	if !ok {
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = defaultTitle
	}
	sid := r.FormValue("sid")
	part := -1
	if v := r.FormValue("part"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "part must be an integer"})
			return
		}
		part = n
	}

	if len(content) < transcribe.MinAudioBytes {
		writeJSON(w, http.StatusOK, uploadResponse{})
		return
	}

	ext := session.NormalizeExt(filename)
	audioName := h.store.PartName(sid, part, ext)
	audioPath, err := h.store.Save(sid, audioName, content)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save audio: " + err.Error()})
		return
	}

	raw, err := h.transcribeCached(r, content, filename, false)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "transcription failed: " + err.Error()})
		return
	}

	clean, formatted := textproc.Format(raw)
	if clean == "" {
		writeJSON(w, http.StatusOK, uploadResponse{})
		return
	}

	// The HTML transcript sits next to the audio and shares its base name.
	htmlPath := ""
	htmlName := strings.TrimSuffix(audioName, ext) + ".html"
	if doc, err := document.Build(title, h.logoName, formatted); err != nil {
		slog.Warn("render part document failed", "error", err)
	} else if htmlPath, err = h.store.Save(sid, htmlName, []byte(doc)); err != nil {
		slog.Warn("save part document failed", "error", err)
	}

	h.recordPart(r, sid, title, part, audioPath, htmlPath, clean)

	writeJSON(w, http.StatusOK, uploadResponse{Text: clean, Formatted: formatted})
}

// UploadPreview is the low-latency live draft: it degrades to an empty
// answer on any failure rather than interrupting the recording.
func (h *TranscriptionHandler) UploadPreview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"text": ""})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil || len(content) < transcribe.MinAudioBytes {
		writeJSON(w, http.StatusOK, map[string]string{"text": ""})
		return
	}

	raw, err := h.transcribeCached(r, content, header.Filename, true)
	if err != nil {
		slog.Warn("preview transcription failed", "error", err)
		writeJSON(w, http.StatusOK, map[string]string{"text": ""})
		return
	}

	clean := textproc.Sanitize(raw)
	if runes := []rune(clean); len(runes) > previewMaxRunes {
		clean = string(runes[:previewMaxRunes])
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": clean})
}

// SaveAudio persists a complete recording as-is.
func (h *TranscriptionHandler) SaveAudio(w http.ResponseWriter, r *http.Request) {
	content, filename, ok := readUpload(w, r)
	if !ok {
		return
	}
	sid := r.FormValue("sid")

	name := h.store.FullName(sid, session.NormalizeExt(filename))
	path, err := h.store.Save(sid, name, content)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save audio: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"saved": true, "path": path})
}

type saveTextRequest struct {
	Text  string `json:"text"`
	SID   string `json:"sid"`
	Title string `json:"title"`
}

// SaveText writes the full-session transcript as a formatted HTML
// document. An empty transcript still produces a file, for symmetry with
// the full audio saved at the same moment.
func (h *TranscriptionHandler) SaveText(w http.ResponseWriter, r *http.Request) {
	var req saveTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultFullTitle
	}

	clean, formatted := textproc.Format(req.Text)
	if formatted == "" {
		formatted = clean
	}
	if formatted == "" {
		formatted = "(documento vuoto)"
	}

	doc, err := document.Build(title, h.logoName, formatted)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"saved": false, "error": err.Error()})
		return
	}

	name := h.store.FullName(req.SID, ".html")
	path, err := h.store.Save(req.SID, name, []byte(doc))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"saved": false, "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"saved": true, "path": path})
}

// transcribeCached consults the content-hash cache before calling the STT
// provider, so client retries of the same bytes cost one API call.
func (h *TranscriptionHandler) transcribeCached(r *http.Request, content []byte, filename string, preview bool) (string, error) {
	model := h.cfg.Model
	if preview && h.cfg.PreviewModel != "" {
		model = h.cfg.PreviewModel
	}
	key := cache.Key(model, preview, content)

	if text, ok := h.cache.Get(r.Context(), key); ok {
		return text, nil
	}

	result, err := h.stt.Transcribe(r.Context(), transcribe.Request{
		Audio:    bytes.NewReader(content),
		Filename: filename,
		Preview:  preview,
	})
	if err != nil {
		return "", err
	}

	h.cache.Set(r.Context(), key, result.Text)
	return result.Text, nil
}

// recordPart writes the part into the history store and schedules its
// embedding. Both are best-effort: the transcript was already delivered.
func (h *TranscriptionHandler) recordPart(r *http.Request, sid, title string, part int, audioPath, htmlPath, transcript string) {
	if h.hist == nil || sid == "" {
		return
	}

	sessionID, err := h.hist.UpsertSession(r.Context(), sid, title)
	if err != nil {
		slog.Warn("record session failed", "sid", sid, "error", err)
		return
	}

	partID, err := h.hist.RecordPart(r.Context(), sessionID, part, audioPath, htmlPath, transcript)
	if err != nil {
		slog.Warn("record part failed", "sid", sid, "part", part, "error", err)
		return
	}

	if h.queue != nil {
		if err := h.queue.EnqueueTranscriptEmbed(queue.TranscriptEmbedPayload{PartID: partID.String()}); err != nil {
			slog.Warn("enqueue embed failed", "part_id", partID, "error", err)
		}
	}
}

// readUpload pulls the multipart file out of the request, rejecting
// missing or empty payloads with a 400.
func readUpload(w http.ResponseWriter, r *http.Request) (content []byte, filename string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file required"})
		return nil, "", false
	}
	defer file.Close()

	content, err = io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read file: " + err.Error()})
		return nil, "", false
	}
	if len(content) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty file"})
		return nil, "", false
	}
	return content, header.Filename, true
}
