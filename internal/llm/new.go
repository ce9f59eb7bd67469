package llm

import (
	"sync"

	"github.com/aajetechnology/StudyBot/internal/config"
	"github.com/aajetechnology/StudyBot/internal/logger"
	"google.golang.org/genai"
)

type implClient struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	clients    map[string]*genai.Client

	model       string
	visionModel string
	temperature float32
	maxTokens   int32
	logger      logger.Logger
}

// New creates a Gemini-backed Client that rotates through the configured API keys.
func New(cfg config.GeminiConfig, log logger.Logger) Client {
	return &implClient{
		apiKeys:     cfg.APIKeys,
		clients:     make(map[string]*genai.Client),
		model:       cfg.Model,
		visionModel: cfg.VisionModel,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      log,
	}
}
