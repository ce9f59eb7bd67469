package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Paths         PathsConfig         `yaml:"paths"`
	Database      DatabaseConfig      `yaml:"database"`
	Auth          AuthConfig          `yaml:"auth"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Summary       SummaryConfig       `yaml:"summary"`
	Quiz          QuizConfig          `yaml:"quiz"`
	Classroom     ClassroomConfig     `yaml:"classroom"`
	Inbox         InboxConfig         `yaml:"inbox"`
	Logging       LoggingConfig       `yaml:"logging"`
}

type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	MaxUploadMB       int64         `yaml:"max_upload_mb"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

type PathsConfig struct {
	Uploads string `yaml:"uploads"`
	Output  string `yaml:"output"`
	Inbox   string `yaml:"inbox"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type AuthConfig struct {
	SecretKey  string        `yaml:"secret_key"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	CookieName string        `yaml:"cookie_name"`
}

type TranscriptionConfig struct {
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"`
	Model        string        `yaml:"model"`
	Language     string        `yaml:"language"`
	PollInterval time.Duration `yaml:"poll_interval"`
	TypingDelay  time.Duration `yaml:"typing_delay"`
	Timeout      time.Duration `yaml:"timeout"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
	Bitrate    string `yaml:"bitrate"`
}

type GeminiConfig struct {
	APIKeys     []string `yaml:"api_keys"`
	Model       string   `yaml:"model"`
	VisionModel string   `yaml:"vision_model"`
	Temperature float32  `yaml:"temperature"`
	MaxTokens   int32    `yaml:"max_tokens"`
}

type SummaryConfig struct {
	MinChars      int `yaml:"min_chars"`
	MaxInputChars int `yaml:"max_input_chars"`
	ProgressEvery int `yaml:"progress_every"`
}

type QuizConfig struct {
	SessionTTL   time.Duration `yaml:"session_ttl"`
	ContextChars int           `yaml:"context_chars"`
}

type ClassroomConfig struct {
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type InboxConfig struct {
	Enabled       bool   `yaml:"enabled"`
	OwnerEmail    string `yaml:"owner_email"`
	Format        string `yaml:"format"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MaxUploadBytes is the request body ceiling for uploads.
func (c *Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}

func (c *Config) Validate() error {
	if c.Auth.SecretKey == "" {
		return fmt.Errorf("auth.secret_key is required")
	}
	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required")
	}
	if c.Transcription.APIKey == "" {
		return fmt.Errorf("transcription.api_key is required")
	}
	if c.Inbox.Enabled && c.Inbox.OwnerEmail == "" {
		return fmt.Errorf("inbox.owner_email is required when the inbox is enabled")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 200
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if c.Paths.Uploads == "" {
		c.Paths.Uploads = "uploads"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "studybot.db"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "studybot_token"
	}
	if c.Transcription.BaseURL == "" {
		c.Transcription.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "whisper-large-v3-turbo"
	}
	if c.Transcription.PollInterval == 0 {
		c.Transcription.PollInterval = 2 * time.Second
	}
	if c.Transcription.TypingDelay == 0 {
		c.Transcription.TypingDelay = 40 * time.Millisecond
	}
	if c.Transcription.Timeout == 0 {
		c.Transcription.Timeout = 15 * time.Minute
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.FFmpeg.Channels == 0 {
		c.FFmpeg.Channels = 1
	}
	if c.FFmpeg.Bitrate == "" {
		c.FFmpeg.Bitrate = "32k"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.VisionModel == "" {
		c.Gemini.VisionModel = c.Gemini.Model
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.5
	}
	if c.Gemini.MaxTokens == 0 {
		c.Gemini.MaxTokens = 2048
	}
	if c.Summary.MinChars == 0 {
		c.Summary.MinChars = 50
	}
	if c.Summary.MaxInputChars == 0 {
		c.Summary.MaxInputChars = 15000
	}
	if c.Summary.ProgressEvery == 0 {
		c.Summary.ProgressEvery = 10
	}
	if c.Quiz.SessionTTL == 0 {
		c.Quiz.SessionTTL = 2 * time.Hour
	}
	if c.Quiz.ContextChars == 0 {
		c.Quiz.ContextChars = 6000
	}
	if c.Classroom.SessionTTL == 0 {
		c.Classroom.SessionTTL = 6 * time.Hour
	}
	if c.Inbox.Format == "" {
		c.Inbox.Format = "docx"
	}
	if c.Inbox.MaxConcurrent == 0 {
		c.Inbox.MaxConcurrent = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}

	return nil
}
