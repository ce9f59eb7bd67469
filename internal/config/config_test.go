package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Auth:          AuthConfig{SecretKey: "secret"},
		Gemini:        GeminiConfig{APIKeys: []string{"key-1"}},
		Transcription: TranscriptionConfig{APIKey: "groq"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing secret key",
			mutate:  func(c *Config) { c.Auth.SecretKey = "" },
			wantErr: true,
		},
		{
			name:    "missing gemini keys",
			mutate:  func(c *Config) { c.Gemini.APIKeys = nil },
			wantErr: true,
		},
		{
			name:    "missing transcription key",
			mutate:  func(c *Config) { c.Transcription.APIKey = "" },
			wantErr: true,
		},
		{
			name:    "inbox without owner",
			mutate:  func(c *Config) { c.Inbox.Enabled = true },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.MaxUploadBytes() != 200*1024*1024 {
		t.Errorf("MaxUploadBytes() = %d, want 200 MiB", cfg.MaxUploadBytes())
	}
	if cfg.Transcription.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", cfg.Transcription.PollInterval)
	}
	if cfg.Transcription.TypingDelay != 40*time.Millisecond {
		t.Errorf("TypingDelay = %v, want 40ms", cfg.Transcription.TypingDelay)
	}
	if cfg.Summary.MaxInputChars != 15000 {
		t.Errorf("MaxInputChars = %d, want 15000", cfg.Summary.MaxInputChars)
	}
	if cfg.Summary.MinChars != 50 {
		t.Errorf("MinChars = %d, want 50", cfg.Summary.MinChars)
	}
	if cfg.Database.DSN != "studybot.db" {
		t.Errorf("DSN = %q, want studybot.db", cfg.Database.DSN)
	}
	if cfg.Gemini.VisionModel != cfg.Gemini.Model {
		t.Errorf("VisionModel = %q, want %q", cfg.Gemini.VisionModel, cfg.Gemini.Model)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STUDYBOT_ADDR", "")
	t.Setenv("GEMINI_API_KEYS", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":8080"
auth:
  secret_key: "from-file"
transcription:
  api_key: "groq-key"
  poll_interval: 500ms
gemini:
  api_keys: ["a", "b"]
logging:
  level: "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %v, want :8080", cfg.Server.Addr)
	}
	if cfg.Transcription.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v, want 500ms", cfg.Transcription.PollInterval)
	}
	if len(cfg.Gemini.APIKeys) != 2 {
		t.Errorf("APIKeys = %v, want 2 keys", cfg.Gemini.APIKeys)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "from-env")
	t.Setenv("GROQ_API_KEY", "groq-env")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STUDYBOT_ADDR", "")
	t.Setenv("GEMINI_API_KEYS", " k1 , ,k2")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Auth.SecretKey != "from-env" {
		t.Errorf("SecretKey = %q, want from-env", cfg.Auth.SecretKey)
	}
	if got := cfg.Gemini.APIKeys; len(got) != 2 || got[0] != "k1" || got[1] != "k2" {
		t.Errorf("APIKeys = %v, want [k1 k2]", got)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
