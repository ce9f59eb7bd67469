package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// GenerateJSON asks client for a JSON answer and decodes it into v.
// Code fences and prose around the object are tolerated.
func GenerateJSON(ctx context.Context, client Client, req Request, v any) error {
	req.JSON = true
	text, err := client.Generate(ctx, req)
	if err != nil {
		return err
	}
	raw := extractJSON(text)
	if raw == "" {
		return fmt.Errorf("no JSON object in model response")
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode model JSON: %w", err)
	}
	return nil
}

// extractJSON returns the outermost {...} or [...] block in s.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ""
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end < start {
		return ""
	}
	return s[start : end+1]
}
