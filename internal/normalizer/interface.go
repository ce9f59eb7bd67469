package normalizer

import "context"

// Normalizer converts uploaded audio into a small mono file for the
// transcription service.
type Normalizer interface {
	// Normalize returns the path of the converted file, or the original
	// path when conversion is not possible.
	Normalize(ctx context.Context, path string) string
	// Cleanup removes the converted file if it differs from the original.
	Cleanup(ctx context.Context, original, normalized string)
}
