package transcriber

import (
	"strings"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "[00:00]"},
		{65.5, "[01:05]"},
		{130.0, "[02:10]"},
		{59.999, "[00:59]"},
		{3725, "[62:05]"},
		{-3, "[00:00]"},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		want     []string
	}{
		{
			name: "blank segment dropped",
			segments: []Segment{
				{Start: 0.0, Text: "Hello"},
				{Start: 65.5, Text: ""},
				{Start: 130.0, Text: "World"},
			},
			want: []string{"[00:00] Hello", "[02:10] World"},
		},
		{
			name: "whitespace trimmed and dropped",
			segments: []Segment{
				{Start: 1, Text: "  padded  "},
				{Start: 2, Text: " \t\n "},
			},
			want: []string{"[00:01] padded"},
		},
		{
			name:     "no segments",
			segments: nil,
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.segments)
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") || len(got) != len(tt.want) {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
			for _, line := range got {
				if strings.TrimSpace(strings.SplitN(line, "] ", 2)[1]) == "" {
					t.Errorf("blank text leaked into %q", line)
				}
			}
		})
	}
}
