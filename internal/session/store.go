// Package session owns the on-disk layout of recording sessions. Every
// session maps to one directory under the save root; incremental audio
// blocks, their HTML transcripts and the final full recording all land
// there with predictable names so users can find them without the app.
package session

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const tsLayout = "20060102_150405"

var unsafeRx = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeName maps an arbitrary session id to a filesystem-safe directory and
// file prefix: unsafe runs become "_", length is capped at 60, and an empty
// result falls back to "sessione".
func SafeName(s string) string {
	out := unsafeRx.ReplaceAllString(s, "_")
	if len(out) > 60 {
		out = out[:60]
	}
	if out == "" {
		return "sessione"
	}
	return out
}

// NormalizeExt extracts a lowercase audio extension from an uploaded
// filename, defaulting to ".wav".
func NormalizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return ".wav"
	}
	return ext
}

// Store writes session artifacts under a fixed root directory.
type Store struct {
	root string
	now  func() time.Time
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create save root: %w", err)
	}
	return &Store{root: root, now: time.Now}, nil
}

func (s *Store) Root() string { return s.root }

// Dir returns the directory artifacts for the given session id are written
// to. Requests without a session id share the save root.
func (s *Store) Dir(sid string) string {
	if sid == "" {
		return s.root
	}
	return filepath.Join(s.root, SafeName(sid))
}

// Save writes content under the session's directory and returns the full
// path.
func (s *Store) Save(sid, filename string, content []byte) (string, error) {
	dir := s.Dir(sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	slog.Info("saved file", "path", path, "bytes", len(content))
	return path, nil
}

// PartName names one incremental block. part < 0 means the block has no
// index and gets a timestamp instead; an empty sid yields the anonymous
// "rec_" prefix.
func (s *Store) PartName(sid string, part int, ext string) string {
	ts := s.now().Format(tsLayout)
	if sid == "" {
		return "rec_" + ts + ext
	}
	if part < 0 {
		return SafeName(sid) + "_" + ts + ext
	}
	return fmt.Sprintf("%s_part%03d%s", SafeName(sid), part, ext)
}

// FullName names the complete artifact saved when a session stops.
func (s *Store) FullName(sid, ext string) string {
	if sid == "" {
		return "rec_" + s.now().Format(tsLayout) + "_full" + ext
	}
	return SafeName(sid) + "_full" + ext
}
