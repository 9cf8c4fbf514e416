package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/gianlucap/transcription-wow/internal/api/handlers"
	"github.com/gianlucap/transcription-wow/internal/api/middleware"
	"github.com/gianlucap/transcription-wow/internal/cache"
	"github.com/gianlucap/transcription-wow/internal/config"
	"github.com/gianlucap/transcription-wow/internal/history"
	"github.com/gianlucap/transcription-wow/internal/llm"
	"github.com/gianlucap/transcription-wow/internal/queue"
	"github.com/gianlucap/transcription-wow/internal/session"
	"github.com/gianlucap/transcription-wow/internal/summarize"
	"github.com/gianlucap/transcription-wow/internal/transcribe"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
	}
}

func (rt *Router) Setup() (http.Handler, error) {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(middleware.SecurityHeaders)

	// Live previews fire every few seconds per recording tab.
	rl := middleware.NewRateLimiter(10, 60)
	r.Use(rl.Limit)

	// Health endpoints
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Services
	store, err := session.NewStore(rt.cfg.Storage.SaveRoot)
	if err != nil {
		return nil, fmt.Errorf("init session store: %w", err)
	}

	stt := transcribe.NewOpenAIProvider(rt.cfg.Transcribe)
	gw := llm.NewGateway(rt.cfg.Summary)
	summarySvc := summarize.NewService(gw, rt.cfg.Summary.TextModel)
	transcriptCache := cache.NewTranscriptCache(rt.redis)

	var hist *history.Store
	if rt.db != nil {
		hist = history.NewStore(rt.db)
	}

	var qc *queue.Client
	if rt.redis != nil {
		qc = queue.NewClient(rt.cfg.Redis)
	}

	pages, err := handlers.NewPagesHandler(rt.cfg.App)
	if err != nil {
		return nil, err
	}
	r.Get("/", pages.Index)

	// Recorder endpoints
	transcriptionH := handlers.NewTranscriptionHandler(
		stt, store, transcriptCache, hist, qc, rt.cfg.Transcribe, rt.cfg.App.LogoName,
	)
	r.Post("/upload", transcriptionH.Upload)
	r.Post("/upload_preview", transcriptionH.UploadPreview)
	r.Post("/save_audio", transcriptionH.SaveAudio)
	r.Post("/save_text", transcriptionH.SaveText)

	summarizeH := handlers.NewSummarizeHandler(summarySvc, hist)
	r.Post("/summarize", summarizeH.Summarize)

	// Session history
	sessionsH := handlers.NewSessionsHandler(hist, gw, rt.cfg.Summary.EmbeddingModel)
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", sessionsH.List)
		r.Post("/search", sessionsH.Search)
		r.Get("/{sid}", sessionsH.Get)
	})

	return r, nil
}
