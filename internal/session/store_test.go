package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	st.now = func() time.Time {
		return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	}
	return st
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"riunione lunedì", "riunione_luned_"},
		{"notes/2026", "notes_2026"},
		{"ok-name_1.2", "ok-name_1.2"},
		{"", "sessione"},
		{"///", "_"},
		{strings.Repeat("a", 80), strings.Repeat("a", 60)},
	}
	for _, tt := range tests {
		if got := SafeName(tt.in); got != tt.want {
			t.Errorf("SafeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeExt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"audio.WAV", ".wav"},
		{"clip.webm", ".webm"},
		{"noext", ".wav"},
		{"", ".wav"},
	}
	for _, tt := range tests {
		if got := NormalizeExt(tt.in); got != tt.want {
			t.Errorf("NormalizeExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPartName(t *testing.T) {
	st := newTestStore(t)

	if got := st.PartName("meeting", 7, ".wav"); got != "meeting_part007.wav" {
		t.Errorf("PartName with index = %q", got)
	}
	if got := st.PartName("meeting", -1, ".wav"); got != "meeting_20260314_150926.wav" {
		t.Errorf("PartName without index = %q", got)
	}
	if got := st.PartName("", 3, ".webm"); got != "rec_20260314_150926.webm" {
		t.Errorf("PartName without sid = %q", got)
	}
}

func TestFullName(t *testing.T) {
	st := newTestStore(t)

	if got := st.FullName("meeting", ".wav"); got != "meeting_full.wav" {
		t.Errorf("FullName = %q", got)
	}
	if got := st.FullName("", ".wav"); got != "rec_20260314_150926_full.wav" {
		t.Errorf("FullName without sid = %q", got)
	}
}

func TestSave(t *testing.T) {
	st := newTestStore(t)

	path, err := st.Save("my meeting", "my_meeting_part001.wav", []byte("RIFF"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	wantDir := filepath.Join(st.Root(), "my_meeting")
	if filepath.Dir(path) != wantDir {
		t.Errorf("Save() dir = %q, want %q", filepath.Dir(path), wantDir)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "RIFF" {
		t.Errorf("content = %q", data)
	}
}

func TestSaveNoSession(t *testing.T) {
	st := newTestStore(t)

	path, err := st.Save("", "rec_20260314_150926.wav", []byte("x"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Dir(path) != st.Root() {
		t.Errorf("anonymous saves should land in the root, got %q", filepath.Dir(path))
	}
}
