package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Transcribe TranscribeConfig
	Summary    SummaryConfig
	Storage    StorageConfig
	App        AppConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type TranscribeConfig struct {
	OpenAIKey    string
	Model        string
	PreviewModel string
	Language     string // two-letter code, empty means autodetect
	Temperature  float64
}

type SummaryConfig struct {
	OpenAIKey        string
	AnthropicKey     string
	TextModel        string
	EmbeddingModel   string
	DefaultProvider  string
	FallbackProvider string
	MaxRetries       int
}

type StorageConfig struct {
	SaveRoot string
}

type AppConfig struct {
	LogoName         string
	LiveDraftEnabled bool
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 2)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxRetries, err := getEnvInt("LLM_MAX_RETRIES", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_MAX_RETRIES: %w", err)
	}

	temperature, err := getEnvFloat("TEMPERATURE", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid TEMPERATURE: %w", err)
	}

	transcribeModel := getEnv("OPENAI_TRANSCRIBE_MODEL", "gpt-4o-mini-transcribe")

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "127.0.0.1"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Transcribe: TranscribeConfig{
			OpenAIKey:    getEnv("OPENAI_API_KEY", ""),
			Model:        transcribeModel,
			PreviewModel: getEnv("PREVIEW_TRANSCRIBE_MODEL", transcribeModel),
			Language:     NormalizeLanguage(getEnv("LANGUAGE", "it")),
			Temperature:  temperature,
		},
		Summary: SummaryConfig{
			OpenAIKey:        getEnv("OPENAI_API_KEY", ""),
			AnthropicKey:     getEnv("ANTHROPIC_API_KEY", ""),
			TextModel:        getEnv("OPENAI_TEXT_MODEL", "gpt-4o-mini"),
			EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			DefaultProvider:  getEnv("SUMMARY_PROVIDER", "openai"),
			FallbackProvider: getEnv("SUMMARY_FALLBACK_PROVIDER", ""),
			MaxRetries:       maxRetries,
		},
		Storage: StorageConfig{
			SaveRoot: getEnv("SAVE_ROOT", defaultSaveRoot()),
		},
		App: AppConfig{
			LogoName:         getEnv("LOGO_NAME", "Gianluca P."),
			LiveDraftEnabled: getEnvBool("LIVE_DRAFT_ENABLED", true),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Transcribe.OpenAIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

// NormalizeLanguage reduces a language value to a lowercase two-letter code.
// Anything that does not start with two ASCII letters maps to "" (autodetect),
// which keeps the upstream transcription API from rejecting the request.
func NormalizeLanguage(val string) string {
	val = strings.TrimSpace(val)
	if len(val) < 2 {
		return ""
	}
	a, b := val[0], val[1]
	if !isASCIILetter(a) || !isASCIILetter(b) {
		return ""
	}
	return strings.ToLower(val[:2])
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// defaultSaveRoot picks the user's Desktop when one exists, matching the
// localized folder names the app historically supported, and falls back to
// the home directory.
func defaultSaveRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	for _, name := range []string{"Desktop", "Scrivania", "Bureau", "Escritorio"} {
		dir := filepath.Join(home, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return filepath.Join(dir, "Transcription WOW")
		}
	}
	return filepath.Join(home, "Transcription WOW")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return strings.EqualFold(v, "true") || v == "1"
}
