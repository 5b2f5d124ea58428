package e2e

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	buildOnce  sync.Once
	binaryPath string
	buildErr   error
)

// buildPydocscanBinary builds the CLI once per test run and returns its path.
func buildPydocscanBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "pydocscan-e2e")
		if err != nil {
			buildErr = err
			return
		}
		binaryPath = filepath.Join(dir, "pydocscan")

		// Build from the project root, one level up from the e2e directory
		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/pydocscan")
		cmd.Dir, buildErr = filepath.Abs("..")
		if buildErr != nil {
			return
		}
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			buildErr = errors.New(err.Error() + ": " + stderr.String())
		}
	})

	if buildErr != nil {
		t.Fatalf("Failed to build pydocscan binary: %v", buildErr)
	}
	return binaryPath
}

// runPydocscan runs the binary and returns stdout, stderr and exit code.
func runPydocscan(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()

	cmd := exec.Command(buildPydocscanBinary(t), args...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Env = append(os.Environ(), "CI=1")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("Failed to run pydocscan: %v", err)
		}
		code = exitErr.ExitCode()
	}
	return stdout.String(), stderr.String(), code
}

// createDocstringFile writes a docstring body under dir, creating parents.
func createDocstringFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", filename, err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}
	return filePath
}
