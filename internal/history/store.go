// Package history records sessions, their transcribed parts and summaries
// in postgres. The files on disk stay the source of truth for audio and
// HTML; history exists so past sessions can be listed and searched.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

type Session struct {
	ID        uuid.UUID `json:"id"`
	SID       string    `json:"sid"`
	Title     string    `json:"title"`
	PartCount int       `json:"part_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Part struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"session_id"`
	PartIndex  int       `json:"part_index"`
	AudioPath  string    `json:"audio_path"`
	HTMLPath   string    `json:"html_path"`
	Transcript string    `json:"transcript"`
	CreatedAt  time.Time `json:"created_at"`
}

type Summary struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Summary   string    `json:"summary"`
	Notes     []string  `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type SearchResult struct {
	PartID     uuid.UUID `json:"part_id"`
	SID        string    `json:"sid"`
	Title      string    `json:"title"`
	PartIndex  int       `json:"part_index"`
	Transcript string    `json:"transcript"`
	Score      float64   `json:"score"`
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UpsertSession returns the session row for sid, creating it on first use.
// The title is only overwritten when the caller supplies a non-empty one.
func (s *Store) UpsertSession(ctx context.Context, sid, title string) (uuid.UUID, error) {
	id := uuid.New()
	err := s.db.QueryRow(ctx,
		`INSERT INTO sessions (id, sid, title)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (sid) DO UPDATE SET
		   title = CASE WHEN EXCLUDED.title <> '' THEN EXCLUDED.title ELSE sessions.title END,
		   updated_at = now()
		 RETURNING id`,
		id, sid, title,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("upsert session %s: %w", sid, err)
	}
	return id, nil
}

func (s *Store) RecordPart(ctx context.Context, sessionID uuid.UUID, partIndex int, audioPath, htmlPath, transcript string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.Exec(ctx,
		`INSERT INTO parts (id, session_id, part_index, audio_path, html_path, transcript)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, sessionID, partIndex, audioPath, htmlPath, transcript,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("record part %d: %w", partIndex, err)
	}
	return id, nil
}

func (s *Store) SaveSummary(ctx context.Context, sessionID uuid.UUID, summary string, notes []string) error {
	if notes == nil {
		notes = []string{}
	}
	// Explicit JSON encoding: pgx would otherwise infer text[] for []string.
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("marshal notes: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO summaries (id, session_id, summary, notes) VALUES ($1, $2, $3, $4::jsonb)`,
		uuid.New(), sessionID, summary, string(data),
	)
	if err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	return nil
}

func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.Query(ctx,
		`SELECT s.id, s.sid, s.title, count(p.id), s.created_at, s.updated_at
		 FROM sessions s
		 LEFT JOIN parts p ON p.session_id = s.id
		 GROUP BY s.id
		 ORDER BY s.updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.SID, &sess.Title, &sess.PartCount, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// GetSession loads one session with its parts and most recent summary.
// The summary is nil when none was ever generated.
func (s *Store) GetSession(ctx context.Context, sid string) (*Session, []Part, *Summary, error) {
	var sess Session
	err := s.db.QueryRow(ctx,
		`SELECT s.id, s.sid, s.title, count(p.id), s.created_at, s.updated_at
		 FROM sessions s
		 LEFT JOIN parts p ON p.session_id = s.id
		 WHERE s.sid = $1
		 GROUP BY s.id`,
		sid,
	).Scan(&sess.ID, &sess.SID, &sess.Title, &sess.PartCount, &sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, nil, ErrNotFound
		}
		return nil, nil, nil, fmt.Errorf("get session %s: %w", sid, err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, session_id, part_index, audio_path, html_path, transcript, created_at
		 FROM parts WHERE session_id = $1 ORDER BY part_index`,
		sess.ID,
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()

	var parts []Part
	for rows.Next() {
		var p Part
		if err := rows.Scan(&p.ID, &p.SessionID, &p.PartIndex, &p.AudioPath, &p.HTMLPath, &p.Transcript, &p.CreatedAt); err != nil {
			return nil, nil, nil, fmt.Errorf("scan part: %w", err)
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, err
	}

	var sum Summary
	err = s.db.QueryRow(ctx,
		`SELECT id, session_id, summary, notes, created_at
		 FROM summaries WHERE session_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		sess.ID,
	).Scan(&sum.ID, &sum.SessionID, &sum.Summary, &sum.Notes, &sum.CreatedAt)
	switch {
	case err == pgx.ErrNoRows:
		return &sess, parts, nil, nil
	case err != nil:
		return nil, nil, nil, fmt.Errorf("get summary: %w", err)
	}
	return &sess, parts, &sum, nil
}

// PartTranscript fetches the stored transcript of a single part, used by
// the embedding worker.
func (s *Store) PartTranscript(ctx context.Context, partID uuid.UUID) (string, error) {
	var transcript string
	err := s.db.QueryRow(ctx, `SELECT transcript FROM parts WHERE id = $1`, partID).Scan(&transcript)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get part transcript: %w", err)
	}
	return transcript, nil
}

func (s *Store) SetPartEmbedding(ctx context.Context, partID uuid.UUID, embedding []float32) error {
	_, err := s.db.Exec(ctx,
		`UPDATE parts SET embedding = $2 WHERE id = $1`,
		partID, pgvector.NewVector(embedding),
	)
	if err != nil {
		return fmt.Errorf("set part embedding: %w", err)
	}
	return nil
}

// SearchParts runs cosine similarity over embedded transcript parts.
func (s *Store) SearchParts(ctx context.Context, queryVec []float32, topK int) ([]SearchResult, error) {
	if topK <= 0 {
		topK = 10
	}

	embedding := pgvector.NewVector(queryVec)

	rows, err := s.db.Query(ctx,
		`SELECT p.id, s.sid, s.title, p.part_index, p.transcript,
		        1 - (p.embedding <=> $1) AS score
		 FROM parts p
		 JOIN sessions s ON s.id = p.session_id
		 WHERE p.embedding IS NOT NULL
		 ORDER BY p.embedding <=> $1
		 LIMIT $2`,
		embedding, topK,
	)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.PartID, &r.SID, &r.Title, &r.PartIndex, &r.Transcript, &r.Score); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
