package normalizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const suffix = "_normalized.mp3"

// Normalize converts path to mono, 16 kHz, low-bitrate MP3.
// Every failure falls back to the original path.
func (n *implNormalizer) Normalize(ctx context.Context, path string) string {
	out, err := n.convert(ctx, path)
	if err != nil {
		n.logger.Warn(ctx, "Audio normalization failed, using original upload %s: %v", path, err)
		return path
	}
	return out
}

func (n *implNormalizer) convert(ctx context.Context, path string) (string, error) {
	if !n.executor.Available(n.cfg.BinaryPath) {
		return "", fmt.Errorf("%s not found in PATH", n.cfg.BinaryPath)
	}

	outPath := OutputPath(path)

	// -vn drops any video stream; -ac/-ar/-b:a shrink the upload.
	args := []string{
		"-i", path,
		"-vn",
		"-ac", strconv.Itoa(n.cfg.Channels),
		"-ar", strconv.Itoa(n.cfg.SampleRate),
		"-c:a", "libmp3lame",
		"-b:a", n.cfg.Bitrate,
		"-y",
		outPath,
	}

	n.logger.Info(ctx, "Normalizing audio: %s", path)
	if _, err := n.executor.Execute(ctx, n.cfg.BinaryPath, args...); err != nil {
		n.removeQuietly(ctx, outPath)
		return "", fmt.Errorf("ffmpeg normalize: %w", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return "", fmt.Errorf("stat normalized output: %w", err)
	}
	if info.Size() == 0 {
		n.removeQuietly(ctx, outPath)
		return "", fmt.Errorf("normalized output is empty")
	}

	n.logger.Info(ctx, "Audio normalized: %s (%d bytes)", outPath, info.Size())
	return outPath, nil
}

// Cleanup removes the derivative file; the original upload is never touched.
func (n *implNormalizer) Cleanup(ctx context.Context, original, normalized string) {
	if normalized == "" || normalized == original {
		return
	}
	n.removeQuietly(ctx, normalized)
}

func (n *implNormalizer) removeQuietly(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		n.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
		return
	}
	n.logger.Debug(ctx, "Cleaned up temp file: %s", path)
}

// OutputPath is the derivative path written next to the original.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}
