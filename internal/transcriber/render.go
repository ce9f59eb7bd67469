package transcriber

import (
	"fmt"
	"math"
	"strings"
)

// FormatTimestamp renders an offset in seconds as [MM:SS]. Minutes are not
// wrapped into hours.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	minutes := int(math.Floor(seconds / 60))
	secs := int(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("[%02d:%02d]", minutes, secs)
}

// Render turns segments into transcript lines, dropping blank ones.
func Render(segments []Segment) []string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		lines = append(lines, FormatTimestamp(seg.Start)+" "+text)
	}
	return lines
}
