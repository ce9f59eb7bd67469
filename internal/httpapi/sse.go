package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aajetechnology/StudyBot/internal/pipeline"
)

// streamEvents writes every event as an SSE data frame until the channel
// closes. Write errors are ignored; the producer stops once the request
// context is cancelled.
func (h *Handler) streamEvents(c *gin.Context, events <-chan pipeline.Event) {
	ctx := c.Request.Context()

	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	// Jobs outlive any server write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debug(ctx, "Could not clear write deadline for SSE: %v", err)
	}
	w.Flush()

	sent := 0
	for ev := range events {
		data, err := encodeEvent(ev)
		if err != nil {
			h.logger.Error(ctx, "Encode SSE event: %v", err)
			continue
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			continue
		}
		w.Flush()
		sent++
	}
	h.logger.Debug(ctx, "SSE stream closed after %d events", sent)
}

// encodeEvent renders ev as one line of JSON without HTML escaping, so
// status lines such as ">>> STARTING" reach the browser verbatim.
func encodeEvent(ev pipeline.Event) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ev); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
