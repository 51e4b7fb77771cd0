// Package docs resolves logical document keys ("rules", "tasks", ...) to
// file content under a project root. Nothing is cached: every read sees the
// current state of the file.
package docs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thruflo/context-engine/internal/config"
	"github.com/thruflo/context-engine/internal/logging"
)

// DocumentNotFoundError reports a configured document that does not exist.
type DocumentNotFoundError struct {
	Path string
	Key  string
}

func (e DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s (%s)", e.Path, e.Key)
}

// IsDocumentNotFound checks if an error is a DocumentNotFoundError.
func IsDocumentNotFound(err error) bool {
	var de DocumentNotFoundError
	return errors.As(err, &de)
}

// UnknownDocumentError reports a key that is not configured at all.
type UnknownDocumentError struct {
	Key string
}

func (e UnknownDocumentError) Error() string {
	return fmt.Sprintf("unknown document key: %s", e.Key)
}

// Path returns the absolute path of the document configured for key.
func Path(projectRoot string, cfg *config.ProjectConfig, key string) (string, error) {
	rel, ok := cfg.DocPath(key)
	if !ok {
		return "", UnknownDocumentError{Key: key}
	}
	return join(projectRoot, rel), nil
}

// Read returns the content of the document configured for key.
func Read(projectRoot string, cfg *config.ProjectConfig, key string) (string, error) {
	rel, ok := cfg.DocPath(key)
	if !ok {
		return "", UnknownDocumentError{Key: key}
	}
	return ReadPath(projectRoot, rel, key)
}

// ReadPath reads a project-relative path. key labels the path in errors.
func ReadPath(projectRoot, relPath, key string) (string, error) {
	data, err := os.ReadFile(join(projectRoot, relPath))
	if err != nil {
		if os.IsNotExist(err) {
			return "", DocumentNotFoundError{Path: relPath, Key: key}
		}
		return "", fmt.Errorf("failed to read %s (%s): %w", relPath, key, err)
	}

	logging.Debug("document read", "key", key, "path", relPath, "bytes", len(data))
	return string(data), nil
}

// Exists reports whether the document configured for key is present.
func Exists(projectRoot string, cfg *config.ProjectConfig, key string) bool {
	p, err := Path(projectRoot, cfg, key)
	if err != nil {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func join(projectRoot, relPath string) string {
	if filepath.IsAbs(relPath) {
		return relPath
	}
	return filepath.Join(projectRoot, relPath)
}
