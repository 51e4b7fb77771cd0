//go:build e2e

// cli_harness_test.go builds the context-engine binary and runs it against
// a throwaway project directory.
package integration

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thruflo/context-engine/internal/testutil"
)

// CLIHarness runs a freshly built context-engine binary with --project
// pointing at WorkDir.
type CLIHarness struct {
	BinaryPath string

	// WorkDir is the project root commands operate on.
	WorkDir string

	// EnvVars are added to the inherited environment.
	EnvVars map[string]string

	t *testing.T
}

// CLIResult contains the output from a CLI command execution.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Success returns true if the command completed with exit code 0.
func (r *CLIResult) Success() bool {
	return r.ExitCode == 0 && r.Err == nil
}

// NewCLIHarness builds the binary into a temp directory and creates an
// empty project beside it.
func NewCLIHarness(t *testing.T) *CLIHarness {
	t.Helper()

	moduleRoot := findModuleRoot(t)
	require.NotEmpty(t, moduleRoot, "could not find module root (directory containing go.mod)")

	tmpDir := t.TempDir()
	binaryPath := filepath.Join(tmpDir, "context-engine")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/context-engine")
	cmd.Dir = moduleRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build context-engine binary: %s", output)

	workDir := filepath.Join(tmpDir, "project")
	require.NoError(t, os.MkdirAll(workDir, 0o755))

	return &CLIHarness{
		BinaryPath: binaryPath,
		WorkDir:    workDir,
		EnvVars:    make(map[string]string),
		t:          t,
	}
}

// WriteFile writes a project file.
func (h *CLIHarness) WriteFile(relativePath, content string) {
	h.t.Helper()
	testutil.WriteTestFile(h.t, h.WorkDir, relativePath, content)
}

// ReadFile reads a project file.
func (h *CLIHarness) ReadFile(relativePath string) string {
	h.t.Helper()
	return testutil.ReadTestFile(h.t, h.WorkDir, relativePath)
}

// Run executes a command, giving up at the test deadline or after 30
// seconds.
func (h *CLIHarness) Run(args ...string) *CLIResult {
	h.t.Helper()

	ctx, cancel := testutil.ContextWithTestDeadline(h.t, 30*time.Second)
	defer cancel()

	return h.RunWithContext(ctx, args...)
}

// RunWithContext executes a command with the given context. --project is
// always passed.
func (h *CLIHarness) RunWithContext(ctx context.Context, args ...string) *CLIResult {
	h.t.Helper()

	cmd := exec.CommandContext(ctx, h.BinaryPath, append([]string{"--project", h.WorkDir}, args...)...)
	cmd.Env = h.buildEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &CLIResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		result.Err = err
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}

	return result
}

func (h *CLIHarness) buildEnv() []string {
	env := os.Environ()
	for k, v := range h.EnvVars {
		env = append(env, k+"="+v)
	}
	return env
}

// findModuleRoot walks up from the working directory to the nearest go.mod.
func findModuleRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// RequireSuccess fails the test if the command result indicates failure.
func (h *CLIHarness) RequireSuccess(result *CLIResult, msg string) {
	h.t.Helper()
	if !result.Success() {
		h.t.Fatalf("%s: exit=%d err=%v\nstdout: %s\nstderr: %s",
			msg, result.ExitCode, result.Err, result.Stdout, result.Stderr)
	}
}

// RequireFailure fails the test if the command result indicates success.
func (h *CLIHarness) RequireFailure(result *CLIResult, msg string) {
	h.t.Helper()
	if result.Success() {
		h.t.Fatalf("%s: command succeeded unexpectedly\nstdout: %s\nstderr: %s",
			msg, result.Stdout, result.Stderr)
	}
}
