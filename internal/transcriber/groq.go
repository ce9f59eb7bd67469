package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const maxResponseBytes = 32 << 20

// Transcribe uploads the audio file as multipart form data and decodes the
// verbose_json response.
func (c *implClient) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(c.writeForm(mw, f, filepath.Ext(audioPath)))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Info(ctx, "Uploading %s to transcription service (model %s)", filepath.Base(audioPath), c.model)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read transcription response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("transcription service returned %d: %s", resp.StatusCode, snippet(body))
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode transcription response: %w", err)
	}
	return &result, nil
}

func (c *implClient) writeForm(mw *multipart.Writer, audio io.Reader, ext string) error {
	if ext == "" {
		ext = ".mp3"
	}
	// A neutral file name avoids provider errors on odd upload names.
	part, err := mw.CreateFormFile("file", "lecture_audio"+strings.ToLower(ext))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return err
	}

	fields := map[string]string{
		"model":           c.model,
		"response_format": "verbose_json",
	}
	if c.language != "" {
		fields["language"] = c.language
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	return mw.Close()
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 512 {
		s = s[:512] + "..."
	}
	return s
}
