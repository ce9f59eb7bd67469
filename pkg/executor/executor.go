package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("command '%s' failed: %w%s", name, err, stderrSuffix(stderr.String()))
	}

	return stdout.String(), nil
}

func (e *implExecutor) Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// stderrSuffix keeps the tail of stderr; ffmpeg prints its banner first.
func stderrSuffix(stderr string) string {
	const maxTail = 2048
	s := strings.TrimSpace(stderr)
	if s == "" {
		return ""
	}
	if len(s) > maxTail {
		s = "..." + s[len(s)-maxTail:]
	}
	return "\nstderr: " + s
}
