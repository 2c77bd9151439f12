package testutil

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// AssertGolden compares output with testdata/<goldenName> at the repository
// root. Setting UPDATE_GOLDEN rewrites the file first.
func AssertGolden(t *testing.T, goldenName, output string) {
	t.Helper()
	path := filepath.Join(RepoRoot(t), "testdata", goldenName)
	if os.Getenv("UPDATE_GOLDEN") != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
			t.Fatalf("failed to update golden: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden %s: %v", goldenName, err)
	}
	if string(data) != output {
		t.Fatalf("output mismatch for %s\nexpected:\n%s\nactual:\n%s", goldenName, string(data), output)
	}
}

// RepoRoot walks up from the working directory to the directory holding go.mod.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

func buildBinary(t *testing.T) string {
	t.Helper()
	RequireTmux(t)
	tdir := t.TempDir()
	bin := filepath.Join(tdir, "action-picker")
	cmd := exec.Command("go", "build", "-o", bin, "./")
	cmd.Dir = RepoRoot(t)
	cmd.Env = append(os.Environ(), "GOCACHE="+filepath.Join(tdir, ".gocache"))
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to build binary: %v", err)
	}
	return bin
}

// waitForText polls the pane until want shows up or the picker exits early.
func waitForText(t *testing.T, ctx context.Context, socket, target, exitPath, want string) string {
	t.Helper()
	loggedPaneMissing := false
	for {
		select {
		case <-ctx.Done():
			t.Fatalf("timeout waiting for %q: %v", want, ctx.Err())
		case <-time.After(50 * time.Millisecond):
			if exitPath != "" {
				if data, err := os.ReadFile(exitPath); err == nil {
					code := strings.TrimSpace(string(data))
					if code != "" && code != "0" {
						t.Fatalf("action-picker exited early with code %s", code)
					}
				}
			}
			out, err := CapturePane(t, socket, target)
			if err != nil {
				if errors.Is(err, ErrPaneUnavailable) {
					if !loggedPaneMissing {
						t.Logf("waiting for pane %s to become available", target)
						loggedPaneMissing = true
					}
					continue
				}
				t.Fatalf("capture-pane error: %v", err)
			}
			if strings.Contains(out, want) {
				return out
			}
		}
	}
}
