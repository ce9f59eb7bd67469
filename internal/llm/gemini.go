package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var errNoKeys = errors.New("no Gemini API keys configured")

func (c *implClient) Generate(ctx context.Context, req Request) (string, error) {
	var text string
	err := c.withRotation(ctx, func(client *genai.Client) error {
		result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), c.generateConfig(req))
		if err != nil {
			return err
		}
		text = responseText(result)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return text, nil
}

func (c *implClient) Stream(ctx context.Context, req Request) <-chan StreamChunk {
	out := make(chan StreamChunk)
	go func() {
		defer close(out)

		delivered := false
		err := c.withRotation(ctx, func(client *genai.Client) error {
			for result, err := range client.Models.GenerateContentStream(ctx, c.model, genai.Text(req.Prompt), c.generateConfig(req)) {
				if err != nil {
					if delivered {
						// Chunks already reached the caller; a retry would duplicate them.
						return permanent{err}
					}
					return err
				}
				text := responseText(result)
				if text == "" {
					continue
				}
				select {
				case out <- StreamChunk{Content: text}:
					delivered = true
				case <-ctx.Done():
					return permanent{ctx.Err()}
				}
			}
			return nil
		})
		if err != nil {
			select {
			case out <- StreamChunk{Err: fmt.Errorf("stream content: %w", err)}:
			case <-ctx.Done():
			}
		}
	}()
	return out
}

func (c *implClient) Extract(ctx context.Context, data []byte, mimeType, instruction string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(instruction),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}

	var text string
	err := c.withRotation(ctx, func(client *genai.Client) error {
		result, err := client.Models.GenerateContent(ctx, c.visionModel, contents, nil)
		if err != nil {
			return err
		}
		text = responseText(result)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", mimeType, err)
	}
	return text, nil
}

func (c *implClient) generateConfig(req Request) *genai.GenerateContentConfig {
	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: maxTokens,
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	return cfg
}

// permanent marks an error that must not trigger key rotation.
type permanent struct{ err error }

func (p permanent) Error() string { return p.err.Error() }
func (p permanent) Unwrap() error { return p.err }

// withRotation runs fn with each key in turn, moving on only when the current
// key is rate limited.
func (c *implClient) withRotation(ctx context.Context, fn func(*genai.Client) error) error {
	attempts := len(c.apiKeys)
	if attempts == 0 {
		return errNoKeys
	}

	var lastErr error
	for range attempts {
		idx, key := c.key()
		client, err := c.clientFor(ctx, key)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.rotateFrom(idx)
			continue
		}

		err = fn(client)
		if err == nil {
			return nil
		}
		var p permanent
		if errors.As(err, &p) {
			return p.err
		}
		if isRateLimited(err) {
			c.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
			c.rotateFrom(idx)
			lastErr = err
			continue
		}
		return err
	}

	return fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (c *implClient) key() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentKey, c.apiKeys[c.currentKey]
}

// rotateFrom advances past idx unless another request already did.
func (c *implClient) rotateFrom(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentKey == idx {
		c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
	}
}

func (c *implClient) clientFor(ctx context.Context, key string) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if client, ok := c.clients[key]; ok {
		return client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	c.clients[key] = client
	return client, nil
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
