package config

import "testing"

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"it", "it"},
		{"IT", "it"},
		{" en-US ", "en"},
		{"fr_FR", "fr"},
		{"", ""},
		{"1", ""},
		{"x", ""},
		{"12fr", ""},
	}
	for _, tt := range tests {
		if got := NormalizeLanguage(tt.in); got != tt.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_TRANSCRIBE_MODEL", "")
	t.Setenv("PREVIEW_TRANSCRIBE_MODEL", "")
	t.Setenv("LANGUAGE", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Transcribe.Model != "gpt-4o-mini-transcribe" {
		t.Errorf("Model = %q", cfg.Transcribe.Model)
	}
	if cfg.Transcribe.PreviewModel != cfg.Transcribe.Model {
		t.Errorf("PreviewModel = %q, want transcribe model %q", cfg.Transcribe.PreviewModel, cfg.Transcribe.Model)
	}
	if cfg.Transcribe.Language != "it" {
		t.Errorf("Language = %q, want it", cfg.Transcribe.Language)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestPreviewModelOverride(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_TRANSCRIBE_MODEL", "gpt-4o-transcribe")
	t.Setenv("PREVIEW_TRANSCRIBE_MODEL", "gpt-4o-mini-transcribe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Transcribe.PreviewModel != "gpt-4o-mini-transcribe" {
		t.Errorf("PreviewModel = %q", cfg.Transcribe.PreviewModel)
	}
}

func TestValidateMissingKey(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail without OPENAI_API_KEY")
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Error("Load() should fail on non-numeric SERVER_PORT")
	}
}
