package transcriber

import (
	"net/http"
	"strings"
	"time"

	"github.com/aajetechnology/StudyBot/internal/config"
	"github.com/aajetechnology/StudyBot/internal/logger"
)

type implClient struct {
	baseURL  string
	apiKey   string
	model    string
	language string
	http     *http.Client
	logger   logger.Logger
}

// NewClient creates a Client for an OpenAI-compatible transcription endpoint (Groq by default).
func NewClient(cfg config.TranscriptionConfig, log logger.Logger) Client {
	return &implClient{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		language: cfg.Language,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   log,
	}
}

type implWorker struct {
	client       Client
	pollInterval time.Duration
	typingDelay  time.Duration
	logger       logger.Logger
}

// NewWorker wraps client with heartbeat polling and line rendering.
func NewWorker(client Client, pollInterval, typingDelay time.Duration, log logger.Logger) Worker {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &implWorker{
		client:       client,
		pollInterval: pollInterval,
		typingDelay:  typingDelay,
		logger:       log,
	}
}
