package executor

import (
	"context"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	exec := New()
	if !exec.Available("sh") {
		t.Skip("sh not available")
	}

	out, err := exec.Execute(context.Background(), "sh", "-c", "printf hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello" {
		t.Errorf("Execute() = %q, want hello", out)
	}

	_, err = exec.Execute(context.Background(), "sh", "-c", "echo broken >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail on non-zero exit")
	}
	if !strings.Contains(err.Error(), "stderr: broken") {
		t.Errorf("error should carry stderr, got %v", err)
	}
}

func TestAvailable(t *testing.T) {
	if New().Available("definitely-not-a-real-binary-7f3a") {
		t.Error("Available() should be false for unknown binaries")
	}
}

func TestStderrSuffix(t *testing.T) {
	if got := stderrSuffix("   "); got != "" {
		t.Errorf("stderrSuffix(blank) = %q, want empty", got)
	}
	long := strings.Repeat("x", 5000) + "tail"
	got := stderrSuffix(long)
	if !strings.HasSuffix(got, "tail") || !strings.HasPrefix(got, "\nstderr: ...") {
		t.Errorf("stderrSuffix should keep the tail, got prefix %q", got[:20])
	}
}
