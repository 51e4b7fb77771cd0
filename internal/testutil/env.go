package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupProject creates a temporary project root containing files, keyed by
// project-relative path. The directory is removed when the test completes.
func SetupProject(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for path, content := range files {
		WriteTestFile(t, root, path, content)
	}
	return root
}

// SetupSampleProject creates a project with SampleConfigYAML and the
// documents it points at. The log document is left absent.
func SetupSampleProject(t *testing.T) string {
	t.Helper()

	return SetupProject(t, map[string]string{
		".context-engine.yaml": SampleConfigYAML,
		"docs/RULES.md":        SampleRules,
		"INDEX.md":             SampleIndex,
		"README.md":            "# Sample\n",
		"WORK_PLAN.md":         SampleWorkPlan,
	})
}

// WriteTestFile writes content under root, creating parent directories.
func WriteTestFile(t *testing.T, root, relativePath, content string) {
	t.Helper()

	fullPath := filepath.Join(root, relativePath)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
}

// ReadTestFile returns the content of a file under root.
func ReadTestFile(t *testing.T, root, relativePath string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(root, relativePath))
	require.NoError(t, err)
	return string(data)
}

// FileExists reports whether a file exists under root.
func FileExists(root, relativePath string) bool {
	_, err := os.Stat(filepath.Join(root, relativePath))
	return err == nil
}
